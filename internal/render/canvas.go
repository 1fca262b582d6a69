package render

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

const (
	font          = gocv.FontHersheySimplex
	textThickness = 2
)

// Canvas is a Sink backed by an off-screen Mat shown in a HighGUI window.
// It must be used from the goroutine that created it.
type Canvas struct {
	window *gocv.Window
	frame  gocv.Mat
	size   image.Point
	// delay is the WaitKey delay in milliseconds.
	delay int
}

// NewCanvas opens a window of the given size. delay is how long Present
// waits for a key, at least 1ms.
func NewCanvas(title string, width, height, delay int) *Canvas {
	if delay < 1 {
		delay = 1
	}
	w := gocv.NewWindow(title)
	w.ResizeWindow(width, height)

	return &Canvas{
		window: w,
		frame:  gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3),
		size:   image.Pt(width, height),
		delay:  delay,
	}
}

func (c *Canvas) Size() image.Point {
	return c.size
}

func (c *Canvas) Clear(col color.RGBA) {
	c.frame.SetTo(gocv.NewScalar(float64(col.B), float64(col.G), float64(col.R), 0))
}

func (c *Canvas) FillRect(r image.Rectangle, col color.RGBA) {
	gocv.Rectangle(&c.frame, r, col, -1)
}

func (c *Canvas) StrokeRect(r image.Rectangle, col color.RGBA, thickness int) {
	gocv.Rectangle(&c.frame, r, col, thickness)
}

func (c *Canvas) FillCircle(center image.Point, radius int, col color.RGBA) {
	gocv.Circle(&c.frame, center, radius, col, -1)
}

func (c *Canvas) Text(text string, org image.Point, scale float64, col color.RGBA) {
	gocv.PutText(&c.frame, text, org, font, scale, col, textThickness)
}

func (c *Canvas) TextCentered(text string, center image.Point, scale float64, col color.RGBA) {
	sz := gocv.GetTextSize(text, font, scale, textThickness)
	org := image.Pt(center.X-sz.X/2, center.Y+sz.Y/2)
	gocv.PutText(&c.frame, text, org, font, scale, col, textThickness)
}

// Blit copies a sprite loaded by LoadSprite, clipped to the canvas.
func (c *Canvas) Blit(s Sprite, at image.Point) {
	ms, ok := s.(*MatSprite)
	if !ok || ms.mat.Empty() {
		return
	}
	c.paste(ms.mat, at)
}

// Preview scales a camera frame into r.
func (c *Canvas) Preview(frame *gocv.Mat, r image.Rectangle) {
	if frame == nil || frame.Empty() || r.Empty() {
		return
	}
	scaled := gocv.NewMat()
	defer scaled.Close()
	gocv.Resize(*frame, &scaled, r.Size(), 0, 0, gocv.InterpolationLinear)
	c.paste(scaled, r.Min)
}

// paste copies src with its top-left corner at at, clipped to the canvas.
func (c *Canvas) paste(src gocv.Mat, at image.Point) {
	dst := image.Rectangle{Min: at, Max: at.Add(image.Pt(src.Cols(), src.Rows()))}
	clip := dst.Intersect(image.Rectangle{Max: c.size})
	if clip.Empty() {
		return
	}

	from := src.Region(clip.Sub(at))
	defer from.Close()
	to := c.frame.Region(clip)
	defer to.Close()
	from.CopyTo(&to)
}

func (c *Canvas) Dim(alpha float64) {
	if alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	c.frame.MultiplyFloat(float32(1 - alpha))
}

// Present shows the frame and polls the keyboard.
func (c *Canvas) Present() (Key, error) {
	c.window.IMShow(c.frame)
	key := c.window.WaitKey(c.delay)
	if c.window.GetWindowProperty(gocv.WindowPropertyVisible) < 1 {
		return KeyNone, ErrWindowClosed
	}
	return NormalizeKey(key), nil
}

// EncodeJPEG returns the frame drawn so far as JPEG.
func (c *Canvas) EncodeJPEG() ([]byte, error) {
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, c.frame)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}

func (c *Canvas) Close() error {
	c.frame.Close()
	return c.window.Close()
}

// MatSprite is a Sprite held in a BGR Mat.
type MatSprite struct {
	mat gocv.Mat
}

// LoadSprite reads an image file, scales it to size and optionally
// mirrors it horizontally.
func LoadSprite(path string, size image.Point, mirror bool) (*MatSprite, error) {
	img := gocv.IMRead(path, gocv.IMReadColor)
	if img.Empty() {
		img.Close()
		return nil, fmt.Errorf("load sprite %s: unreadable image", path)
	}
	defer img.Close()

	scaled := gocv.NewMat()
	gocv.Resize(img, &scaled, size, 0, 0, gocv.InterpolationArea)
	if scaled.Empty() {
		scaled.Close()
		return nil, fmt.Errorf("resize sprite %s: empty result", path)
	}
	if mirror {
		gocv.Flip(scaled, &scaled, 1)
	}
	return &MatSprite{mat: scaled}, nil
}

func (s *MatSprite) Size() image.Point {
	return image.Pt(s.mat.Cols(), s.mat.Rows())
}

func (s *MatSprite) Close() error {
	return s.mat.Close()
}
