package server

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultStreamPeriod is the MJPEG frame interval (~15 FPS).
const DefaultStreamPeriod = 66 * time.Millisecond

// Feed holds the latest JPEG-encoded game frame and serves it as an
// MJPEG stream.
type Feed struct {
	mu   sync.Mutex
	jpeg []byte
	seq  uint64

	viewers atomic.Int32
	period  time.Duration
}

// NewFeed creates a Feed that streams at most one frame per period.
func NewFeed(period time.Duration) *Feed {
	if period <= 0 {
		period = DefaultStreamPeriod
	}
	return &Feed{period: period}
}

// Wanted reports whether anyone is watching, so producers can skip encoding.
func (f *Feed) Wanted() bool {
	return f.viewers.Load() > 0
}

// Publish replaces the current frame.
func (f *Feed) Publish(jpeg []byte) {
	f.mu.Lock()
	f.jpeg = jpeg
	f.seq++
	f.mu.Unlock()
}

func (f *Feed) latest() ([]byte, uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.jpeg, f.seq
}

// ServeHTTP streams MJPEG frames until the client disconnects.
func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.viewers.Add(1)
	defer f.viewers.Add(-1)

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ticker := time.NewTicker(f.period)
	defer ticker.Stop()

	var sent uint64
	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}

		buf, seq := f.latest()
		if seq == sent || len(buf) == 0 {
			continue
		}
		sent = seq

		fmt.Fprintf(w, "--frame\r\n")
		fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
		fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(buf))
		if _, err := w.Write(buf); err != nil {
			return
		}
		fmt.Fprintf(w, "\r\n")

		if fl, ok := w.(http.Flusher); ok {
			fl.Flush()
		}
	}
}
