// Package media generates the visual and audio assets that accompany
// generated lessons: illustration images, narration audio, and short
// teaser videos.
package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrUnavailable is returned by the disabled generator when no media
// API key is configured.
var ErrUnavailable = errors.New("media generation is not configured")

// Generator produces media assets from text prompts.
//
// GenerateImage returns a data URI suitable for embedding directly in
// lesson content. Synthesize returns base64-encoded 16-bit PCM at the
// narration sample rate. GenerateVideo returns a local file path to the
// downloaded clip.
type Generator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
	Synthesize(ctx context.Context, text string) (string, error)
	GenerateVideo(ctx context.Context, prompt string) (string, error)
}

// Config holds media generation settings.
type Config struct {
	APIKey       string
	ImageModel   string
	SpeechModel  string
	VideoModel   string
	Voice        string
	PollInterval time.Duration
	CacheDir     string
}

// DefaultConfig returns media settings with standard model choices.
func DefaultConfig() Config {
	return Config{
		ImageModel:   "imagen-3.0-generate-002",
		SpeechModel:  "gemini-2.5-flash-preview-tts",
		VideoModel:   "veo-2.0-generate-001",
		Voice:        "Kore",
		PollInterval: 5 * time.Second,
		CacheDir:     defaultCacheDir(),
	}
}

// Disabled returns a Generator whose methods all fail with
// ErrUnavailable. Used when no media API key is configured, so the
// text pipeline keeps working without assets.
func Disabled() Generator {
	return disabledGenerator{}
}

type disabledGenerator struct{}

func (disabledGenerator) GenerateImage(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

func (disabledGenerator) Synthesize(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

func (disabledGenerator) GenerateVideo(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

// defaultCacheDir resolves where downloaded video files are kept.
func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "luna", "media")
	}
	return filepath.Join(os.TempDir(), "luna-media")
}
