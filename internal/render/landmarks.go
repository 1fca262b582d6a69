package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/handpong/internal/detector"
)

// handConnections are the MediaPipe hand skeleton edges.
var handConnections = [][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 4},
	{0, 5}, {5, 6}, {6, 7}, {7, 8},
	{5, 9}, {9, 10}, {10, 11}, {11, 12},
	{9, 13}, {13, 14}, {14, 15}, {15, 16},
	{13, 17}, {0, 17}, {17, 18}, {18, 19}, {19, 20},
}

var (
	colorBone  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorJoint = color.RGBA{R: 255, G: 40, B: 40, A: 255}
)

// DrawLandmarks overlays each detected hand's skeleton on a camera frame.
func DrawLandmarks(frame *gocv.Mat, f detector.Frame) {
	if frame == nil || frame.Empty() {
		return
	}
	w, h := float64(frame.Cols()), float64(frame.Rows())

	for i := range f.Hands {
		pts := f.Hands[i].Points
		px := func(j int) image.Point {
			return image.Pt(int(pts[j].X*w), int(pts[j].Y*h))
		}
		for _, c := range handConnections {
			gocv.Line(frame, px(c[0]), px(c[1]), colorBone, 2)
		}
		for j := range pts {
			gocv.Circle(frame, px(j), 3, colorJoint, -1)
		}
	}
}
