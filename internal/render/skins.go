package render

import (
	"image"
	"image/color"
	"log/slog"
	"path/filepath"

	"github.com/ayusman/handpong/internal/log"
)

// BallSkin is a named ball colour.
type BallSkin struct {
	Name  string
	Color color.RGBA
}

// BallSkins is the ball palette in menu order.
var BallSkins = []BallSkin{
	{"Neon Yellow", color.RGBA{R: 255, G: 240, B: 100, A: 255}},
	{"Gold", color.RGBA{R: 255, G: 215, A: 255}},
	{"Ice Blue", color.RGBA{R: 180, G: 230, B: 255, A: 255}},
	{"Hot Pink", color.RGBA{R: 255, G: 100, B: 180, A: 255}},
	{"Retro Orange", color.RGBA{R: 255, G: 160, B: 60, A: 255}},
}

// PaddleSkin is a named paddle image.
type PaddleSkin struct {
	Name string
	File string
	// Fallback is the glow colour used when the image is unavailable.
	Fallback color.RGBA
}

// PaddleSkins lists the paddle images in menu order.
var PaddleSkins = []PaddleSkin{
	{"Ice Platform", "ice_platform.png", color.RGBA{G: 200, B: 255, A: 255}},
	{"Lava Platform", "lava_platform.png", color.RGBA{R: 255, G: 100, A: 255}},
}

// SpriteLoader loads an image scaled to size, optionally mirrored.
type SpriteLoader func(path string, size image.Point, mirror bool) (Sprite, error)

// CanvasLoader loads sprites for a Canvas.
func CanvasLoader(path string, size image.Point, mirror bool) (Sprite, error) {
	s, err := LoadSprite(path, size, mirror)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// paddleImage is one paddle skin in both orientations.
type paddleImage struct {
	normal   Sprite
	mirrored Sprite
}

// Wardrobe holds the selected skins and the loaded paddle images. The
// left paddle wears the selected paddle skin and the right paddle wears
// the next one, mirrored.
type Wardrobe struct {
	ball   int
	paddle int
	images []paddleImage
}

// LoadWardrobe loads every paddle skin from dir at the given size.
// Images that fail to load are logged and drawn procedurally instead.
func LoadWardrobe(load SpriteLoader, dir string, size image.Point, logger *slog.Logger) *Wardrobe {
	logger = log.Or(logger)
	w := &Wardrobe{images: make([]paddleImage, len(PaddleSkins))}
	if load == nil {
		return w
	}

	for i, skin := range PaddleSkins {
		path := filepath.Join(dir, skin.File)
		normal, err := load(path, size, false)
		if err != nil {
			logger.Warn("paddle skin unavailable, using glow fallback", "skin", skin.Name, "error", err)
			continue
		}
		mirrored, err := load(path, size, true)
		if err != nil {
			normal.Close()
			logger.Warn("paddle skin unavailable, using glow fallback", "skin", skin.Name, "error", err)
			continue
		}
		w.images[i] = paddleImage{normal: normal, mirrored: mirrored}
	}
	return w
}

// Ball returns the selected ball skin.
func (w *Wardrobe) Ball() BallSkin {
	return BallSkins[w.ball]
}

// BallIndex returns the selected ball skin's index.
func (w *Wardrobe) BallIndex() int {
	return w.ball
}

// Paddle returns the selected paddle skin.
func (w *Wardrobe) Paddle() PaddleSkin {
	return PaddleSkins[w.paddle]
}

// PaddleIndex returns the selected paddle skin's index.
func (w *Wardrobe) PaddleIndex() int {
	return w.paddle
}

// CycleBall moves the ball selection by delta, wrapping around.
func (w *Wardrobe) CycleBall(delta int) {
	w.ball = wrap(w.ball+delta, len(BallSkins))
}

// CyclePaddle moves the paddle selection by delta, wrapping around.
func (w *Wardrobe) CyclePaddle(delta int) {
	w.paddle = wrap(w.paddle+delta, len(PaddleSkins))
}

// paddleLook returns the sprite (nil when unavailable) and fallback
// colour for one side.
func (w *Wardrobe) paddleLook(right bool) (Sprite, color.RGBA) {
	idx := w.paddle
	if right {
		idx = wrap(idx+1, len(PaddleSkins))
	}
	skin := PaddleSkins[idx]
	if idx >= len(w.images) {
		return nil, skin.Fallback
	}
	img := w.images[idx]
	if right {
		return img.mirrored, skin.Fallback
	}
	return img.normal, skin.Fallback
}

// Close releases the loaded images.
func (w *Wardrobe) Close() error {
	for _, img := range w.images {
		if img.normal != nil {
			img.normal.Close()
		}
		if img.mirrored != nil {
			img.mirrored.Close()
		}
	}
	w.images = nil
	return nil
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
