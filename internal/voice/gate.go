package voice

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// energy returns the RMS amplitude of a PCM16 little-endian buffer.
func energy(pcm []byte) float64 {
	n := len(pcm) / 2
	if n == 0 {
		return 0
	}
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = float64(int16(binary.LittleEndian.Uint16(pcm[2*i:])))
	}
	return floats.Norm(samples, 2) / math.Sqrt(float64(n))
}

// calibrate reads ambient audio from r and returns the speech threshold:
// the mean ambient energy scaled by EnergyFactor, never below MinThreshold.
func calibrate(ctx context.Context, r io.Reader, cfg Config) (float64, error) {
	buf := make([]byte, cfg.chunkBytes())
	n := cfg.chunks(cfg.Calibration)
	levels := make([]float64, 0, n)

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if _, err := io.ReadFull(r, buf); err != nil {
			return 0, fmt.Errorf("read ambient audio: %w", err)
		}
		levels = append(levels, energy(buf))
	}

	return math.Max(cfg.MinThreshold, stat.Mean(levels, nil)*cfg.EnergyFactor), nil
}

// capture reads from r until a chunk rises above threshold, then
// collects chunks until Pause of trailing silence or maxPhrase of audio.
// If the stream ends mid-phrase, the audio collected so far is returned.
func capture(ctx context.Context, r io.Reader, cfg Config, threshold float64, maxPhrase time.Duration) (Phrase, error) {
	buf := make([]byte, cfg.chunkBytes())
	waitLimit := cfg.chunks(cfg.ListenTimeout)
	pauseLimit := cfg.chunks(cfg.Pause)
	maxChunks := cfg.chunks(maxPhrase)

	var (
		pcm     []byte
		started bool
		waited  int
		silent  int
		taken   int
	)

	for {
		if err := ctx.Err(); err != nil {
			return Phrase{}, err
		}

		if _, err := io.ReadFull(r, buf); err != nil {
			if started && (errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)) {
				break
			}
			return Phrase{}, fmt.Errorf("read audio: %w", err)
		}

		loud := energy(buf) > threshold
		if !started {
			if !loud {
				waited++
				if waited >= waitLimit {
					return Phrase{}, ErrNoSpeech
				}
				continue
			}
			started = true
		}

		pcm = append(pcm, buf...)
		taken++
		if loud {
			silent = 0
		} else {
			silent++
		}

		if silent >= pauseLimit || taken >= maxChunks {
			break
		}
	}

	return Phrase{PCM: pcm, SampleRate: cfg.SampleRate}, nil
}
