// Package testdata holds landmark sequences for gesture and game tests.
package testdata

import "github.com/ayusman/handpong/internal/detector"

// Crossing moves the left hand up and the right hand down for five
// frames, then reverses for three. Played at a steady rate it completes
// exactly one crossing gesture.
func Crossing() []detector.Frame {
	left := []float64{0.60, 0.57, 0.54, 0.51, 0.48, 0.51, 0.54, 0.57}
	frames := make([]detector.Frame, len(left))
	for i, y := range left {
		frames[i] = TwoHands(y, 1-y)
	}
	return frames
}

// Lateral spreads two upturned palms apart, completing one lateral
// gesture.
func Lateral() []detector.Frame {
	left := []float64{0.40, 0.39, 0.38, 0.37, 0.36, 0.35}
	right := []float64{0.60, 0.61, 0.62, 0.63, 0.64, 0.65}
	frames := make([]detector.Frame, len(left))
	for i := range left {
		frames[i] = Spread(left[i], right[i], true)
	}
	return frames
}

// TwoHands places palm-down hands at the given heights.
func TwoHands(leftY, rightY float64) detector.Frame {
	return detector.Frame{Hands: []detector.HandLandmarks{
		detector.HandAt(detector.HandLeft, 0.3, leftY, false),
		detector.HandAt(detector.HandRight, 0.7, rightY, false),
	}}
}

// Spread places both wrists at the given x positions, mid-height.
func Spread(leftX, rightX float64, palmUp bool) detector.Frame {
	return detector.Frame{Hands: []detector.HandLandmarks{
		detector.WithWristX(detector.HandAt(detector.HandLeft, 0.3, 0.5, palmUp), leftX),
		detector.WithWristX(detector.HandAt(detector.HandRight, 0.7, 0.5, palmUp), rightX),
	}}
}
