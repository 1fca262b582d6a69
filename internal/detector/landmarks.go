// Package detector provides hand landmark detection interfaces and geometry helpers.
package detector

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Handedness labels reported by MediaPipe.
const (
	HandLeft  = "Left"
	HandRight = "Right"
)

// palmIndices are the landmarks averaged for the hand centre: wrist,
// thumb base and the four finger-base joints.
var palmIndices = []int{Wrist, ThumbCMC, ThumbMCP, IndexMCP, MiddleMCP, RingMCP, PinkyMCP}

// Point3D represents a normalized landmark. X and Y are in [0,1] image
// coordinates with Y growing downward.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// CenterY returns the mean Y of the palm landmarks.
func (h *HandLandmarks) CenterY() float64 {
	ys := make([]float64, len(palmIndices))
	for i, idx := range palmIndices {
		ys[i] = h.Points[idx].Y
	}
	return stat.Mean(ys, nil)
}

// PalmUp reports whether the index and pinky base joints sit above the
// wrist in the image, i.e. the palm faces up toward the camera.
func (h *HandLandmarks) PalmUp() bool {
	wrist := h.Points[Wrist].Y
	return h.Points[IndexMCP].Y < wrist && h.Points[PinkyMCP].Y < wrist
}

// Frame is the detector output for one video frame.
type Frame struct {
	Hands []HandLandmarks `json:"hands"`
	Pose  []Point3D       `json:"pose,omitempty"`
}

// Left returns the hand labelled left, or nil.
func (f *Frame) Left() *HandLandmarks {
	return f.labelled(HandLeft)
}

// Right returns the hand labelled right, or nil.
func (f *Frame) Right() *HandLandmarks {
	return f.labelled(HandRight)
}

func (f *Frame) labelled(side string) *HandLandmarks {
	for i := range f.Hands {
		if f.Hands[i].Handedness == side {
			return &f.Hands[i]
		}
	}
	return nil
}

// ByX returns the hands ordered by middle-finger MCP X, leftmost first.
// The frame itself is not modified.
func (f *Frame) ByX() []*HandLandmarks {
	out := make([]*HandLandmarks, len(f.Hands))
	for i := range f.Hands {
		out[i] = &f.Hands[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Points[MiddleMCP].X < out[j].Points[MiddleMCP].X
	})
	return out
}

// Empty reports whether no hands were detected.
func (f *Frame) Empty() bool {
	return len(f.Hands) == 0
}
