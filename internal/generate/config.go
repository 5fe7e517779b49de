package generate

// Config holds generation parameters.
type Config struct {
	// MaxTokens caps each structured generation response.
	MaxTokens int

	// Temperature for generation. Course and lesson content benefits
	// from some variety.
	Temperature float64
}

// DefaultConfig returns standard generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   8192,
		Temperature: 0.7,
	}
}
