package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It returns a fixed frame, or plays back a queued sequence of frames.
type MockDetector struct {
	mu     sync.Mutex
	frame  Frame
	queue  []Frame
	err    error
	calls  int
	closed bool
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frame = Frame{Hands: hands}
}

// SetFrames queues frames returned one per Detect call. Once the queue is
// drained Detect falls back to the fixed frame.
func (m *MockDetector) SetFrames(frames []Frame) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append([]Frame(nil), frames...)
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Detect returns the next queued frame, the fixed frame, or the configured error.
func (m *MockDetector) Detect(frame *gocv.Mat) (Frame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.err != nil {
		return Frame{}, m.err
	}
	if len(m.queue) > 0 {
		f := m.queue[0]
		m.queue = m.queue[1:]
		return f, nil
	}
	return m.frame, nil
}

// Calls returns how many times Detect was called.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Close marks the detector closed.
func (m *MockDetector) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockDetector) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// OpenPalmLandmarks returns a right hand with all fingers extended and
// the palm facing the camera: finger bases above the wrist.
func OpenPalmLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: HandRight,
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	landmarks.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	landmarks.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}

	landmarks.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.55, Z: 0.0}
	landmarks.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.45, Z: 0.0}
	landmarks.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	landmarks.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52, Z: 0.0}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40, Z: 0.0}
	landmarks.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.28, Z: 0.0}

	landmarks.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68, Z: 0.0}
	landmarks.Points[RingPIP] = Point3D{X: 0.43, Y: 0.55, Z: 0.0}
	landmarks.Points[RingDIP] = Point3D{X: 0.42, Y: 0.45, Z: 0.0}
	landmarks.Points[RingTip] = Point3D{X: 0.42, Y: 0.35, Z: 0.0}

	landmarks.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: 0.0}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.60, Z: 0.0}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.35, Y: 0.50, Z: 0.0}
	landmarks.Points[PinkyTip] = Point3D{X: 0.34, Y: 0.42, Z: 0.0}

	return landmarks
}

// PalmDownLandmarks returns OpenPalmLandmarks mirrored vertically about
// the wrist, so every finger joint sits below it.
func PalmDownLandmarks() HandLandmarks {
	h := OpenPalmLandmarks()
	wristY := h.Points[Wrist].Y
	for i := range h.Points {
		h.Points[i].Y = 2*wristY - h.Points[i].Y
	}
	return h
}

// HandAt returns a hand with the given label whose middle MCP sits at
// (x, y) and whose palm-centre Y is exactly y. palmUp selects the pose.
func HandAt(side string, x, y float64, palmUp bool) HandLandmarks {
	h := OpenPalmLandmarks()
	if !palmUp {
		h = PalmDownLandmarks()
	}
	h.Handedness = side

	dx := x - h.Points[MiddleMCP].X
	dy := y - h.CenterY()
	for i := range h.Points {
		h.Points[i].X += dx
		h.Points[i].Y += dy
	}
	return h
}

// WithWristX returns a copy of h translated horizontally so the wrist sits at x.
func WithWristX(h HandLandmarks, x float64) HandLandmarks {
	dx := x - h.Points[Wrist].X
	for i := range h.Points {
		h.Points[i].X += dx
	}
	return h
}
