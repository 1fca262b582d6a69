package render

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/handpong/internal/pong"
	"github.com/ayusman/handpong/internal/score"
)

var (
	colorBackground = color.RGBA{R: 10, G: 10, B: 30, A: 255}
	colorScore      = color.RGBA{R: 230, G: 230, B: 255, A: 255}
	colorHint       = color.RGBA{R: 150, G: 150, B: 180, A: 255}
	colorWhite      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorButton     = color.RGBA{R: 50, G: 50, B: 60, A: 255}
	colorButtonHot  = color.RGBA{R: 70, G: 70, B: 80, A: 255}
	colorPanel      = color.RGBA{R: 40, G: 40, B: 50, A: 255}
	colorBarTrack   = color.RGBA{R: 50, G: 50, B: 50, A: 255}
	colorBarBorder  = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	colorPrize      = color.RGBA{R: 255, G: 215, A: 255}

	colorCrossing = color.RGBA{R: 255, G: 80, B: 80, A: 255}
	colorVoice    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorLateral  = color.RGBA{G: 255, A: 255}
)

// previewRect is where the camera feed is shown during play.
var previewRect = image.Rect(10, 10, 170, 130)

// rewardDim is how much the reward overlay darkens the table.
const rewardDim = 0.6

// Table draws the playfield: paddles, ball and match score. shake
// offsets everything on hit frames.
func Table(s Sink, t *pong.Table, w *Wardrobe, shake image.Point) {
	s.Clear(colorBackground)
	size := s.Size()

	drawPaddle(s, &t.Left, w, false, shake)
	drawPaddle(s, &t.Right, w, true, shake)

	ball := image.Pt(int(t.Ball.X), int(t.Ball.Y)).Add(shake)
	GlowCircle(s, ball, int(t.Ball.Radius), w.Ball().Color)

	s.TextCentered(fmt.Sprintf("%d   -   %d", t.ScoreLeft, t.ScoreRight), image.Pt(size.X/2, 36), 1.2, colorScore)
	s.Text("ESC to return to menu", image.Pt(size.X-260, size.Y-14), 0.6, colorHint)
}

func drawPaddle(s Sink, p *pong.Paddle, w *Wardrobe, right bool, shake image.Point) {
	r := image.Rect(int(p.X), int(p.Y), int(p.X+p.Width), int(p.Y+p.Height)).Add(shake)

	sprite, fallback := w.paddleLook(right)
	if sprite == nil {
		GlowRect(s, r, fallback)
		return
	}

	// Sprites may be wider than the paddle; keep them centred on it.
	sz := sprite.Size()
	at := image.Pt(r.Min.X-(sz.X-r.Dx())/2, r.Min.Y)
	s.Blit(sprite, at)
}

// Preview draws the camera frame in the corner of the table.
func Preview(s Sink, frame *gocv.Mat) {
	if frame == nil || frame.Empty() {
		return
	}
	s.Preview(frame, previewRect)
	s.StrokeRect(previewRect, colorHint, 1)
}

// HUD draws the goal progress bar and the per-source counters.
func HUD(s Sink, st score.Status) {
	size := s.Size()

	barW, barH := size.X*6/10, 28
	bar := image.Rect((size.X-barW)/2, 60, (size.X+barW)/2, 60+barH)
	s.FillRect(bar, colorBarTrack)

	filled := bar
	filled.Max.X = bar.Min.X + int(float64(barW)*st.Progress)
	if filled.Dx() > 0 {
		s.FillRect(filled, score.ProgressColor(st.Progress))
	}
	s.StrokeRect(bar, colorBarBorder, 2)
	s.Text(fmt.Sprintf("Goal: %d/%d", st.Total, st.Goal), image.Pt(bar.Min.X+10, bar.Max.Y-6), 0.7, colorWhite)

	s.Text(fmt.Sprintf("Crossing: %d", st.Gesture), image.Pt(10, size.Y-80), 0.7, colorCrossing)
	s.Text(fmt.Sprintf("Voice: %d", st.Voice), image.Pt(10, size.Y-50), 0.7, colorVoice)
	s.Text(fmt.Sprintf("Lateral: %d", st.Combined), image.Pt(10, size.Y-20), 0.7, colorLateral)
}

// Reward draws the unlock overlay with n confetti particles. It draws
// nothing while the reward is locked.
func Reward(s Sink, st score.Status, n int) {
	if !st.Unlocked {
		return
	}
	size := s.Size()

	s.Dim(rewardDim)
	s.TextCentered("PRIZE UNLOCKED!", image.Pt(size.X/2, size.Y*4/10), 2.2, colorPrize)
	s.TextCentered(fmt.Sprintf("You reached %d!", st.Goal), image.Pt(size.X/2, size.Y/2), 1.2, colorWhite)

	for _, p := range score.Confetti(st.Elapsed, size.X, size.Y, n) {
		s.FillCircle(image.Pt(p.X, p.Y), p.Radius, p.Color)
	}
}

// menuButton returns the rectangle of the i-th menu button.
func menuButton(size image.Point, i int) image.Rectangle {
	top := 220 + 100*i
	return image.Rect(size.X/2-150, top, size.X/2+150, top+70)
}

// Menu draws the main menu with items stacked vertically and selected
// highlighted. The ball skin preview sits above the buttons.
func Menu(s Sink, items []string, selected int, ball color.RGBA) {
	s.Clear(colorBackground)
	size := s.Size()

	s.TextCentered("HAND PONG", image.Pt(size.X/2, 80), 1.6, colorScore)
	GlowCircle(s, image.Pt(size.X/2, 160), 28, ball)

	for i, item := range items {
		r := menuButton(size, i)
		fill := colorButton
		if i == selected {
			fill = colorButtonHot
		}
		s.FillRect(r, fill)
		s.TextCentered(item, image.Pt(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2), 1, colorWhite)
	}

	s.TextCentered("W/S to move, ENTER to select", image.Pt(size.X/2, size.Y-30), 0.6, colorHint)
}

// SkinTab selects which skin the skins screen edits.
type SkinTab int

const (
	TabBall SkinTab = iota
	TabPaddle
)

func (t SkinTab) String() string {
	if t == TabPaddle {
		return "Paddle"
	}
	return "Ball"
}

// Skins draws the skin picker for the given tab.
func Skins(s Sink, w *Wardrobe, tab SkinTab) {
	s.Clear(colorBackground)
	size := s.Size()
	cx := size.X / 2

	s.TextCentered("SKINS - "+tab.String(), image.Pt(cx, 80), 1.4, colorScore)

	panel := image.Rect(cx-140, 140, cx+140, 360)
	s.FillRect(panel, colorPanel)
	centre := image.Pt(cx, 250)

	var name string
	switch tab {
	case TabPaddle:
		skin := w.Paddle()
		name = skin.Name
		sprite, fallback := w.paddleLook(false)
		if sprite != nil {
			sz := sprite.Size()
			s.Blit(sprite, centre.Sub(sz.Div(2)))
		} else {
			GlowRect(s, image.Rect(cx-10, 180, cx+10, 320), fallback)
		}
	default:
		skin := w.Ball()
		name = skin.Name
		GlowCircle(s, centre, 50, skin.Color)
	}
	s.TextCentered(name, image.Pt(cx, 400), 1, colorWhite)

	left := image.Rect(cx-240, 230, cx-190, 280)
	right := image.Rect(cx+190, 230, cx+240, 280)
	s.FillRect(left, colorButtonHot)
	s.FillRect(right, colorButtonHot)
	s.TextCentered("<", image.Pt(left.Min.X+25, left.Min.Y+25), 1, colorWhite)
	s.TextCentered(">", image.Pt(right.Min.X+25, right.Min.Y+25), 1, colorWhite)

	s.TextCentered("A/D to change, TAB to switch, ESC to go back", image.Pt(cx, size.Y-30), 0.6, colorHint)
}
