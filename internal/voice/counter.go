package voice

import (
	"strings"
	"sync/atomic"
)

// phraseForms are the accepted spellings of the trigger phrase.
var phraseForms = []string{"67", "sixty seven", "sixty-seven"}

// MatchPhrase reports whether a transcript contains the trigger phrase,
// ignoring case and repeated whitespace.
func MatchPhrase(text string) bool {
	t := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	for _, form := range phraseForms {
		if strings.Contains(t, form) {
			return true
		}
	}
	return false
}

// Counter counts matched phrases. It is written by the listener
// goroutine and read and reset from the frame loop.
type Counter struct {
	n atomic.Int64
}

// Inc adds one and returns the new count.
func (c *Counter) Inc() int {
	return int(c.n.Add(1))
}

// Count returns the current count.
func (c *Counter) Count() int {
	return int(c.n.Load())
}

// Reset zeroes the count.
func (c *Counter) Reset() {
	c.n.Store(0)
}
