package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"google.golang.org/genai"
)

// GeminiGenerator implements Generator using the Google Gemini SDK:
// Imagen for images, Gemini speech models for narration, and Veo for
// video clips.
type GeminiGenerator struct {
	client *genai.Client
	cfg    Config
	httpc  *http.Client
}

// NewGeminiGenerator creates a media generator backed by the Gemini API.
func NewGeminiGenerator(ctx context.Context, cfg Config) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiGenerator{
		client: client,
		cfg:    cfg,
		httpc:  &http.Client{Timeout: 5 * time.Minute},
	}, nil
}

// GenerateImage produces a single illustration and returns it as a
// data URI.
func (g *GeminiGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateImages(ctx, g.cfg.ImageModel, prompt,
		&genai.GenerateImagesConfig{NumberOfImages: 1})
	if err != nil {
		return "", fmt.Errorf("generate image: %w", err)
	}
	if len(result.GeneratedImages) == 0 || result.GeneratedImages[0].Image == nil {
		return "", fmt.Errorf("generate image: empty result")
	}

	img := result.GeneratedImages[0].Image
	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = "image/png"
	}
	encoded := base64.StdEncoding.EncodeToString(img.ImageBytes)
	return fmt.Sprintf("data:%s;base64,%s", mimeType, encoded), nil
}

// Synthesize converts text to narration audio and returns the raw
// 16-bit PCM as base64. The speech models emit 24kHz mono.
func (g *GeminiGenerator) Synthesize(ctx context.Context, text string) (string, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: g.cfg.Voice,
				},
			},
		},
	}
	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: text}},
	}}

	result, err := g.client.Models.GenerateContent(ctx, g.cfg.SpeechModel, contents, config)
	if err != nil {
		return "", fmt.Errorf("synthesize narration: %w", err)
	}

	for _, cand := range result.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return base64.StdEncoding.EncodeToString(part.InlineData.Data), nil
			}
		}
	}
	return "", fmt.Errorf("synthesize narration: no audio in response")
}

// GenerateVideo produces a short clip via Veo's long-running operation,
// downloads the result, and returns the local file path.
func (g *GeminiGenerator) GenerateVideo(ctx context.Context, prompt string) (string, error) {
	op, err := g.client.Models.GenerateVideos(ctx, g.cfg.VideoModel, prompt, nil, nil)
	if err != nil {
		return "", fmt.Errorf("start video generation: %w", err)
	}

	for !op.Done {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(g.cfg.PollInterval):
		}
		op, err = g.client.Operations.GetVideosOperation(ctx, op, nil)
		if err != nil {
			return "", fmt.Errorf("poll video generation: %w", err)
		}
	}

	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 {
		return "", fmt.Errorf("video generation returned no clips")
	}
	video := op.Response.GeneratedVideos[0].Video
	if video == nil {
		return "", fmt.Errorf("video generation returned no clips")
	}

	if len(video.VideoBytes) > 0 {
		return g.writeClip(video.VideoBytes)
	}
	if video.URI != "" {
		return g.downloadClip(ctx, video.URI)
	}
	return "", fmt.Errorf("video generation returned no clips")
}

func (g *GeminiGenerator) writeClip(data []byte) (string, error) {
	if err := os.MkdirAll(g.cfg.CacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create media cache dir: %w", err)
	}
	path := filepath.Join(g.cfg.CacheDir, fmt.Sprintf("clip-%d.mp4", time.Now().UnixNano()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write video clip: %w", err)
	}
	return path, nil
}

// downloadClip fetches a generated clip from its file URI. Veo download
// URIs require the API key as a query parameter.
func (g *GeminiGenerator) downloadClip(ctx context.Context, uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parse video URI: %w", err)
	}
	q := u.Query()
	q.Set("key", g.cfg.APIKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	resp, err := g.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("download video clip: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download video clip: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read video clip: %w", err)
	}
	return g.writeClip(data)
}
