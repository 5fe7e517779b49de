// Package speech provides optional voice input: when cloud speech
// credentials are available, topics can be dictated instead of typed.
package speech

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Recognizer transcribes short spoken audio to text.
type Recognizer interface {
	// Transcribe converts 16-bit LE PCM audio to text. Audio longer
	// than about a minute should be split by the caller.
	Transcribe(ctx context.Context, audio []byte, sampleRate, channels int) (string, error)

	Close() error
}

// Detect probes for speech recognition support. It reports false when
// no cloud credentials are configured or the client cannot be created;
// callers then fall back to typed input.
func Detect(ctx context.Context) (Recognizer, bool) {
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
		return nil, false
	}

	client, err := speech.NewClient(ctx)
	if err != nil {
		return nil, false
	}
	return &gcpRecognizer{client: client, maxRetries: 3}, true
}

type gcpRecognizer struct {
	client     *speech.Client
	maxRetries int
}

func (r *gcpRecognizer) Transcribe(ctx context.Context, audio []byte, sampleRate, channels int) (string, error) {
	if len(audio) == 0 {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:            int32(sampleRate),
			AudioChannelCount:          int32(channels),
			LanguageCode:               "en-US",
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}

	resp, err := r.recognizeWithRetry(ctx, req)
	if err != nil {
		return "", fmt.Errorf("speech recognize: %w", err)
	}

	var full strings.Builder
	for _, result := range resp.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		text := strings.TrimSpace(result.Alternatives[0].Transcript)
		if text == "" {
			continue
		}
		if full.Len() > 0 {
			full.WriteString(" ")
		}
		full.WriteString(text)
	}
	return full.String(), nil
}

func (r *gcpRecognizer) recognizeWithRetry(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
	backoff := 750 * time.Millisecond
	var last error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		resp, err := r.client.Recognize(ctx, req)
		if err == nil {
			return resp, nil
		}
		last = err

		code := status.Code(err)
		if code != codes.Unavailable && code != codes.ResourceExhausted {
			return nil, err
		}
		if attempt == r.maxRetries {
			break
		}
		time.Sleep(backoff)
		backoff *= 2
	}
	return nil, last
}

func (r *gcpRecognizer) Close() error {
	return r.client.Close()
}
