package capture

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// MockCamera plays back pre-recorded frames for testing.
// Without a frame list it produces blank frames of the configured size.
type MockCamera struct {
	frames  []*gocv.Mat
	index   int
	loop    bool
	limit   int // blank frames to produce, <0 for unlimited
	width   int
	height  int
	opens   int
	mu      sync.Mutex
	running bool
}

// NewMockCamera creates a camera that replays frames, optionally looping.
func NewMockCamera(frames []*gocv.Mat, loop bool) *MockCamera {
	return &MockCamera{
		frames: frames,
		loop:   loop,
	}
}

// NewBlankCamera creates a camera producing n blank frames before failing
// the way an unplugged device does. Pass n < 0 for an endless supply.
func NewBlankCamera(n, width, height int) *MockCamera {
	return &MockCamera{
		limit:  n,
		width:  width,
		height: height,
	}
}

func (c *MockCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = true
	c.index = 0
	c.opens++
	return nil
}

func (c *MockCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	return nil
}

func (c *MockCamera) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil, ErrCameraNotOpen
	}

	if len(c.frames) == 0 {
		return c.blank()
	}

	if c.index >= len(c.frames) {
		if c.loop {
			c.index = 0
		} else {
			return nil, fmt.Errorf("no more frames: %w", ErrReadFailed)
		}
	}

	// Clone the frame so the original isn't modified
	frame := c.frames[c.index].Clone()
	c.index++

	return &frame, nil
}

func (c *MockCamera) blank() (*gocv.Mat, error) {
	if c.limit == 0 || (c.limit > 0 && c.index >= c.limit) {
		return nil, fmt.Errorf("no more frames: %w", ErrReadFailed)
	}
	c.index++
	frame := gocv.NewMatWithSize(c.height, c.width, gocv.MatTypeCV8UC3)
	return &frame, nil
}

func (c *MockCamera) SetFPS(fps int) {}
func (c *MockCamera) FPS() int       { return DefaultFPS }
func (c *MockCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Opens returns how many times Open was called.
func (c *MockCamera) Opens() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opens
}

// SetFrames replaces the frame sequence
func (c *MockCamera) SetFrames(frames []*gocv.Mat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = frames
	c.index = 0
}

// Reset restarts playback from the beginning
func (c *MockCamera) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = 0
}
