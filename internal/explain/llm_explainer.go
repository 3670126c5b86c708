package explain

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/rideshareai/rideshare-backend-go/internal/llm"
)

//go:embed prompts/explain.md
var explainPrompt string

const (
	defaultCacheTTL = 10 * time.Minute
	cacheCapacity   = 1024
)

// LLMExplainer asks a completer to explain a result. Replies are cached by
// question and result; the least recently used reply is evicted once the
// cache holds cacheCapacity entries.
type LLMExplainer struct {
	llm   llm.Completer
	log   *slog.Logger
	cache *ttlcache.Cache[string, string]
	ttl   time.Duration
}

// NewLLMExplainer creates an explainer. A non-positive ttl uses 10 minutes.
func NewLLMExplainer(c llm.Completer, ttl time.Duration, log *slog.Logger) *LLMExplainer {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if log == nil {
		log = slog.Default()
	}
	return &LLMExplainer{
		llm:   c,
		log:   log,
		cache: ttlcache.New(
			ttlcache.WithTTL[string, string](ttl),
			ttlcache.WithCapacity[string, string](cacheCapacity),
		),
		ttl:   ttl,
	}
}

// Explain returns the explanation for result
func (e *LLMExplainer) Explain(ctx context.Context, question string, result any) (string, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}

	key := cacheKey(question, payload)
	if item := e.cache.Get(key); item != nil {
		e.log.Debug("explanation cache hit", "question", question)
		return item.Value(), nil
	}

	user := fmt.Sprintf("Question: %s\n\nResult:\n%s", question, payload)
	reply, err := e.llm.Complete(ctx, explainPrompt, user)
	if err != nil {
		return "", fmt.Errorf("explain completion: %w", err)
	}
	reply = strings.TrimSpace(reply)

	e.cache.Set(key, reply, e.ttl)
	return reply, nil
}

func cacheKey(question string, payload []byte) string {
	return strings.ToLower(strings.TrimSpace(question)) + "\x00" + string(payload)
}
