package clients

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	openAIRequestTimeout = 30 * time.Second // Timeout for individual OpenAI API requests
)

// ErrNoAPIKey is returned when OPENAI_API_KEY is not set. Callers treat
// this as "semantic analysis disabled", not a fatal error.
var ErrNoAPIKey = errors.New("missing OPENAI_API_KEY in environment")

var (
	openAIClientInstance *OpenAIClient
	openAIErr            error
	openAIOnce           sync.Once
)

type OpenAIClient struct {
	Client *openai.Client
}

// GetOpenAIClient lazily initializes the shared OpenAI client. The
// result is memoized: a missing key keeps returning ErrNoAPIKey without
// re-logging on every call.
func GetOpenAIClient() (*OpenAIClient, error) {
	openAIOnce.Do(func() {
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			slog.Warn("[OpenAIClient] OPENAI_API_KEY not set, semantic analysis disabled")
			openAIErr = ErrNoAPIKey
			return
		}

		config := openai.DefaultConfig(apiKey)
		config.HTTPClient = &http.Client{
			Timeout: openAIRequestTimeout,
		}

		openAIClientInstance = &OpenAIClient{
			Client: openai.NewClientWithConfig(config),
		}
		slog.Info("[OpenAIClient] OpenAI client initialized with custom HTTP timeout",
			slog.Duration("timeout", openAIRequestTimeout))
	})
	return openAIClientInstance, openAIErr
}
