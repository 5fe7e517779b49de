// Package audio decodes synthesized narration: base64-wrapped raw
// 16-bit little-endian PCM, headerless by contract (the narration
// service emits 24 kHz mono, but the decoder handles any rate and
// interleaved channel count).
package audio

import (
	"encoding/base64"
	"errors"
	"time"
)

// NarrationSampleRate is the fixed sample rate of service narration.
const NarrationSampleRate = 24000

// NarrationChannels is the fixed channel count of service narration.
const NarrationChannels = 1

var ErrNoChannels = errors.New("audio: channel count must be at least 1")

// Clip is a decoded sample buffer, one float slice per channel.
// Sample values lie in [-1.0, 1.0).
type Clip struct {
	SampleRate int
	Channels   [][]float64
}

// Frames returns the per-channel sample count.
func (c Clip) Frames() int {
	if len(c.Channels) == 0 {
		return 0
	}
	return len(c.Channels[0])
}

// Duration returns the playback length of the clip.
func (c Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(c.Frames()) * time.Second / time.Duration(c.SampleRate)
}

// DecodeBytes converts a base64 narration payload to raw PCM bytes.
func DecodeBytes(encoded string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(encoded)
}

// DecodeSamples interprets raw bytes as signed 16-bit little-endian
// interleaved samples and splits them per channel, scaling by 1/32768.
//
// The source format guarantees whole frames, but a byte sequence whose
// length is not a multiple of channels*2 is still handled: the trailing
// partial frame is truncated. Truncation is the one deterministic
// policy here — malformed length is never an error.
func DecodeSamples(data []byte, sampleRate, channels int) (Clip, error) {
	if channels < 1 {
		return Clip{}, ErrNoChannels
	}

	frameSize := channels * 2
	frames := len(data) / frameSize

	clip := Clip{SampleRate: sampleRate, Channels: make([][]float64, channels)}
	for c := range clip.Channels {
		clip.Channels[c] = make([]float64, frames)
	}

	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			off := (i*channels + c) * 2
			sample := int16(uint16(data[off]) | uint16(data[off+1])<<8)
			clip.Channels[c][i] = float64(sample) / 32768.0
		}
	}

	return clip, nil
}

// DecodeNarration decodes a base64 narration payload at the service's
// fixed rate and channel count.
func DecodeNarration(encoded string) (Clip, error) {
	raw, err := DecodeBytes(encoded)
	if err != nil {
		return Clip{}, err
	}
	return DecodeSamples(raw, NarrationSampleRate, NarrationChannels)
}
