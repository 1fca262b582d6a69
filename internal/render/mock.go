package render

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"gocv.io/x/gocv"
)

// Op is one recorded drawing call.
type Op struct {
	Kind   string
	Rect   image.Rectangle
	Point  image.Point
	Radius int
	Text   string
	Color  color.RGBA
	Alpha  float64
}

// MockSink is a Sink that records drawing calls and replays scripted
// keys. Present returns queued keys in order, then KeyNone.
type MockSink struct {
	mu       sync.Mutex
	size     image.Point
	ops      []Op
	keys     []Key
	presents int
	encodes  int
	err      error
	closed   bool
}

// NewMockSink creates a MockSink of the given size.
func NewMockSink(width, height int) *MockSink {
	return &MockSink{size: image.Pt(width, height)}
}

// PushKeys queues keys for Present.
func (m *MockSink) PushKeys(keys ...Key) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys = append(m.keys, keys...)
}

// SetPresentError makes Present fail with err.
func (m *MockSink) SetPresentError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockSink) record(op Op) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, op)
}

func (m *MockSink) Size() image.Point { return m.size }

func (m *MockSink) Clear(c color.RGBA) {
	m.mu.Lock()
	m.ops = m.ops[:0]
	m.mu.Unlock()
	m.record(Op{Kind: "clear", Color: c})
}

func (m *MockSink) FillRect(r image.Rectangle, c color.RGBA) {
	m.record(Op{Kind: "rect", Rect: r, Color: c})
}

func (m *MockSink) StrokeRect(r image.Rectangle, c color.RGBA, thickness int) {
	m.record(Op{Kind: "stroke", Rect: r, Color: c})
}

func (m *MockSink) FillCircle(center image.Point, radius int, c color.RGBA) {
	m.record(Op{Kind: "circle", Point: center, Radius: radius, Color: c})
}

func (m *MockSink) Text(text string, org image.Point, scale float64, c color.RGBA) {
	m.record(Op{Kind: "text", Text: text, Point: org, Color: c})
}

func (m *MockSink) TextCentered(text string, center image.Point, scale float64, c color.RGBA) {
	m.record(Op{Kind: "text", Text: text, Point: center, Color: c})
}

func (m *MockSink) Blit(s Sprite, at image.Point) {
	m.record(Op{Kind: "blit", Point: at, Rect: image.Rectangle{Min: at, Max: at.Add(s.Size())}})
}

func (m *MockSink) Preview(frame *gocv.Mat, r image.Rectangle) {
	m.record(Op{Kind: "preview", Rect: r})
}

func (m *MockSink) Dim(alpha float64) {
	m.record(Op{Kind: "dim", Alpha: alpha})
}

func (m *MockSink) Present() (Key, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.presents++
	if m.err != nil {
		return KeyNone, m.err
	}
	if len(m.keys) == 0 {
		return KeyNone, nil
	}
	k := m.keys[0]
	m.keys = m.keys[1:]
	return k, nil
}

// EncodeJPEG returns a placeholder payload numbered by call.
func (m *MockSink) EncodeJPEG() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.encodes++
	return []byte(fmt.Sprintf("frame-%d", m.encodes)), nil
}

// Encodes returns how many times EncodeJPEG was called.
func (m *MockSink) Encodes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.encodes
}

func (m *MockSink) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Ops returns the calls recorded since the last Clear.
func (m *MockSink) Ops() []Op {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Op(nil), m.ops...)
}

// Texts returns the strings drawn since the last Clear.
func (m *MockSink) Texts() []string {
	var out []string
	for _, op := range m.Ops() {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

// Presents returns how many frames were presented.
func (m *MockSink) Presents() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.presents
}

// Closed reports whether Close was called.
func (m *MockSink) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// MockSprite is a Sprite of fixed size.
type MockSprite struct {
	W, H   int
	closed bool
}

func (s *MockSprite) Size() image.Point { return image.Pt(s.W, s.H) }

func (s *MockSprite) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close was called.
func (s *MockSprite) Closed() bool { return s.closed }
