package media

import (
	"context"
	"fmt"
	"sync"
)

// MockGenerator is a test double that returns canned assets and records
// the prompts it receives.
type MockGenerator struct {
	mu sync.Mutex

	// Errors to return from each method. When nil, a deterministic
	// placeholder asset is returned instead.
	ImageErr error
	AudioErr error
	VideoErr error

	ImagePrompts []string
	AudioTexts   []string
	VideoPrompts []string
}

// NewMockGenerator creates a mock media generator.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

func (m *MockGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ImageErr != nil {
		return "", m.ImageErr
	}
	m.ImagePrompts = append(m.ImagePrompts, prompt)
	return fmt.Sprintf("data:image/png;base64,mock-image-%d", len(m.ImagePrompts)), nil
}

func (m *MockGenerator) Synthesize(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AudioErr != nil {
		return "", m.AudioErr
	}
	m.AudioTexts = append(m.AudioTexts, text)
	return fmt.Sprintf("mock-audio-%d", len(m.AudioTexts)), nil
}

func (m *MockGenerator) GenerateVideo(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.VideoErr != nil {
		return "", m.VideoErr
	}
	m.VideoPrompts = append(m.VideoPrompts, prompt)
	return fmt.Sprintf("/tmp/mock-clip-%d.mp4", len(m.VideoPrompts)), nil
}
