package playback

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jesstingley17/luna-ai/internal/audio"
)

// EncodeWAV renders a decoded clip as a 16-bit PCM RIFF/WAVE file so
// narration is playable outside the process.
func EncodeWAV(clip audio.Clip) []byte {
	channels := len(clip.Channels)
	frames := clip.Frames()
	dataLen := frames * channels * 2

	buf := make([]byte, 0, 44+dataLen)
	le := binary.LittleEndian

	u32 := func(v uint32) []byte { b := make([]byte, 4); le.PutUint32(b, v); return b }
	u16 := func(v uint16) []byte { b := make([]byte, 2); le.PutUint16(b, v); return b }

	buf = append(buf, "RIFF"...)
	buf = append(buf, u32(uint32(36+dataLen))...)
	buf = append(buf, "WAVE"...)

	buf = append(buf, "fmt "...)
	buf = append(buf, u32(16)...)
	buf = append(buf, u16(1)...) // PCM
	buf = append(buf, u16(uint16(channels))...)
	buf = append(buf, u32(uint32(clip.SampleRate))...)
	buf = append(buf, u32(uint32(clip.SampleRate*channels*2))...)
	buf = append(buf, u16(uint16(channels*2))...)
	buf = append(buf, u16(16)...)

	buf = append(buf, "data"...)
	buf = append(buf, u32(uint32(dataLen))...)

	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			v := clip.Channels[c][i] * 32768.0
			if v > 32767 {
				v = 32767
			}
			if v < -32768 {
				v = -32768
			}
			buf = append(buf, u16(uint16(int16(v)))...)
		}
	}

	return buf
}

// FileDriver "plays" clips by exporting them as WAV files into Dir.
// Export completes synchronously, so the handle is done immediately.
type FileDriver struct {
	Dir string
}

func (d FileDriver) Start(clip audio.Clip) (Handle, error) {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(d.Dir, fmt.Sprintf("narration-%d.wav", time.Now().UnixNano()))
	if err := os.WriteFile(path, EncodeWAV(clip), 0o644); err != nil {
		return nil, fmt.Errorf("write wav: %w", err)
	}

	done := make(chan struct{})
	close(done)
	return fileHandle{path: path, done: done}, nil
}

type fileHandle struct {
	path string
	done chan struct{}
}

func (h fileHandle) Done() <-chan struct{} { return h.done }
func (h fileHandle) Stop()                {}

// Path returns the exported file location.
func (h fileHandle) Path() string { return h.path }

// TimedDriver simulates real-time playback: the handle completes after
// the clip's wall-clock duration unless stopped first.
type TimedDriver struct{}

func (TimedDriver) Start(clip audio.Clip) (Handle, error) {
	h := &timedHandle{done: make(chan struct{})}
	h.timer = time.AfterFunc(clip.Duration(), h.finish)
	return h, nil
}

type timedHandle struct {
	timer *time.Timer
	done  chan struct{}
	mu    sync.Mutex
	ended bool
}

func (h *timedHandle) Done() <-chan struct{} { return h.done }

func (h *timedHandle) Stop() {
	h.timer.Stop()
	h.finish()
}

func (h *timedHandle) finish() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ended {
		return
	}
	h.ended = true
	close(h.done)
}
