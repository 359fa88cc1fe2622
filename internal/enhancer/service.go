package enhancer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_model_client.go -package=mocks promptforge/internal/enhancer ModelClient
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_service.go -package=mocks -mock_names=Service=MockService promptforge/internal/enhancer Service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"promptforge/internal/contextutil"
	"promptforge/internal/llm"
)

// ModelClient is the interface to the external language model. Defined from
// this package's perspective (consumer-first); implemented by llm.Client.
type ModelClient interface {
	// Complete sends a system prompt and a user prompt to the model and
	// returns the completion text. Cancellation rides the context.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Service rewrites raw prompts for a target platform.
type Service interface {
	// Enhance validates the input, then returns the rewritten prompt, served
	// from cache when an identical (category, prompt) pair was enhanced
	// within the TTL.
	Enhance(ctx context.Context, target, prompt string) (string, error)
}

type service struct {
	model ModelClient
	cache *Cache
}

// NewService creates a new enhancement service around the given model
// client and cache. The cache is injected so its lifetime is the caller's
// decision.
func NewService(model ModelClient, cache *Cache) Service {
	return &service{
		model: model,
		cache: cache,
	}
}

// cacheKey hashes the resolved category and the trimmed prompt. Keying on
// the category rather than the raw target means two targets that resolve to
// the same category share one cache entry for identical prompt text.
func cacheKey(category Category, prompt string) string {
	h := sha256.New()
	h.Write([]byte(category))
	h.Write([]byte{0})
	h.Write([]byte(prompt))
	return hex.EncodeToString(h.Sum(nil))
}

func (s *service) Enhance(ctx context.Context, target, prompt string) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := Validate(target, prompt); err != nil {
		logger.WarnContext(ctx, "rejected enhancement request", "error", err)
		return "", err
	}

	target = strings.TrimSpace(target)
	prompt = strings.TrimSpace(prompt)

	category := ResolveCategory(target)
	key := cacheKey(category, prompt)

	if cached, ok := s.cache.Get(key); ok {
		logger.DebugContext(ctx, "enhancement cache hit", "category", string(category))
		return cached, nil
	}

	enhanced, err := s.model.Complete(ctx, SystemPrompt(category), prompt)
	if err != nil {
		logger.ErrorContext(ctx, "model call failed", "category", string(category), "error", err)
		var validationErr *ValidationError
		var apiErr *llm.APIError
		if errors.As(err, &validationErr) || errors.As(err, &apiErr) {
			// Recognized kinds pass through unchanged.
			return "", err
		}
		return "", &EnhancementError{Err: err}
	}

	s.cache.Set(key, enhanced)
	logger.InfoContext(ctx, "prompt enhanced",
		"category", string(category),
		"prompt_length", len(prompt),
		"enhanced_length", len(enhanced))
	return enhanced, nil
}
