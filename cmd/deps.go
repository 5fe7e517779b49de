package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jesstingley17/luna-ai/internal/generate"
	"github.com/jesstingley17/luna-ai/internal/llm"
	"github.com/jesstingley17/luna-ai/internal/media"
	"github.com/jesstingley17/luna-ai/internal/store"
)

// newOrchestrator builds the generation stack: the text provider from
// the environment and, when a Gemini key is present, the media
// generator. Without a media key, image/audio/video assets are
// unavailable but text generation still works.
func newOrchestrator(ctx context.Context, st *store.Store) (*generate.Orchestrator, error) {
	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		return nil, fmt.Errorf("configure provider: %w", err)
	}

	gen := media.Generator(media.Disabled())
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg := media.DefaultConfig()
		cfg.APIKey = key
		g, err := media.NewGeminiGenerator(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("configure media generator: %w", err)
		}
		gen = g
	}

	return generate.New(provider, gen, generate.DefaultConfig()), nil
}
