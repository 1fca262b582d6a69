// Package render draws the game onto a Sink. The production Sink is a
// gocv HighGUI window; scenes only use the Sink's primitives so they can
// be exercised against a recording mock.
package render

import (
	"errors"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// ErrWindowClosed is returned by Present once the user has closed the window.
var ErrWindowClosed = errors.New("window closed")

// Key is a key code reported by Present.
type Key int

const (
	KeyNone  Key = -1
	KeyEnter Key = 13
	KeyEsc   Key = 27
	KeySpace Key = ' '
	KeyLeft  Key = 'a'
	KeyRight Key = 'd'
	KeyUp    Key = 'w'
	KeyDown  Key = 's'
	KeyTab   Key = '\t'
)

// Arrow key codes as reported by HighGUI's WaitKey on GTK and Qt backends.
const (
	rawLeft  = 81
	rawUp    = 82
	rawRight = 83
	rawDown  = 84
)

// NormalizeKey folds raw WaitKey codes into Key values: arrows become
// their WASD equivalents, letters are lower-cased and a carriage return
// or line feed both become KeyEnter.
func NormalizeKey(raw int) Key {
	if raw < 0 {
		return KeyNone
	}
	k := raw & 0xff
	switch k {
	case rawLeft:
		return KeyLeft
	case rawRight:
		return KeyRight
	case rawUp:
		return KeyUp
	case rawDown:
		return KeyDown
	case '\n', '\r':
		return KeyEnter
	}
	if k >= 'A' && k <= 'Z' {
		k += 'a' - 'A'
	}
	return Key(k)
}

// Sprite is an image that can be blitted onto a Sink.
type Sprite interface {
	Size() image.Point
	Close() error
}

// Sink is a drawable surface with input.
type Sink interface {
	// Size returns the drawable area in pixels.
	Size() image.Point
	Clear(c color.RGBA)
	FillRect(r image.Rectangle, c color.RGBA)
	StrokeRect(r image.Rectangle, c color.RGBA, thickness int)
	FillCircle(center image.Point, radius int, c color.RGBA)
	// Text draws text with its baseline starting at org.
	Text(text string, org image.Point, scale float64, c color.RGBA)
	// TextCentered draws text centred on center.
	TextCentered(text string, center image.Point, scale float64, c color.RGBA)
	Blit(s Sprite, at image.Point)
	// Preview draws a camera frame scaled into r.
	Preview(frame *gocv.Mat, r image.Rectangle)
	// Dim darkens everything drawn so far by alpha in [0, 1].
	Dim(alpha float64)
	// Present shows the frame and returns the key pressed while it was
	// on screen, or KeyNone.
	Present() (Key, error)
	Close() error
}

// Encoder is implemented by sinks that can export the current frame.
type Encoder interface {
	EncodeJPEG() ([]byte, error)
}
