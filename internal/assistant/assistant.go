// Package assistant generates the replies served by /api/message.
//
// When an API key is configured the reply comes from an OpenRouter-compatible
// chat-completions API; otherwise (or when the remote call fails) a
// rule-based local responder answers, so the endpoint never returns an empty
// reply. A short rolling context per phone number gives the remote model
// conversational memory.
package assistant

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/chipi-ai/chipi/internal/logging"
)

const (
	// DefaultBaseURL is the OpenRouter chat-completions endpoint base.
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	// DefaultModel is a free-tier model with generous daily limits.
	DefaultModel = "google/gemini-flash-1.5"

	// DefaultMaxTokens bounds replies; long answers overwhelm the audience.
	DefaultMaxTokens = 250

	// DefaultTemperature keeps replies steady rather than creative.
	DefaultTemperature = 0.3

	// DefaultTimeout is the remote call timeout.
	DefaultTimeout = 10 * time.Second

	// contextDepth is how many previous exchanges are replayed to the model.
	contextDepth = 3
)

// Config holds assistant settings. An empty APIKey selects local-only mode.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int64
	Temperature float64
	Timeout     time.Duration
}

// withDefaults fills zero fields with the package defaults.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Temperature == 0 {
		c.Temperature = DefaultTemperature
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// exchange is one user/assistant turn kept for context.
type exchange struct {
	user      string
	assistant string
}

// Assistant produces replies for user messages.
type Assistant struct {
	cfg Config
	llm *openai.Client // nil in local-only mode

	mu      sync.Mutex
	history map[string][]exchange // phone -> recent exchanges
}

// New creates an assistant. With an API key the remote model is primary and
// the local responder is the fallback; without one every reply is local.
func New(cfg Config) *Assistant {
	cfg = cfg.withDefaults()

	a := &Assistant{
		cfg:     cfg,
		history: make(map[string][]exchange),
	}

	if cfg.APIKey != "" {
		client := openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(cfg.BaseURL),
		)
		a.llm = &client
	}

	return a
}

// RemoteEnabled reports whether a remote model is configured.
func (a *Assistant) RemoteEnabled() bool {
	return a.llm != nil
}

// Reply produces a reply for message on behalf of phone. It never returns an
// error: when the remote model is unavailable or fails, the local responder
// answers instead.
func (a *Assistant) Reply(ctx context.Context, phone, message string) string {
	message = strings.TrimSpace(message)

	// Local rules answer greetings, thanks and date/time without burning a
	// remote call, same as the commands the assistant always handled offline.
	if reply, ok := localRules(message); ok {
		a.remember(phone, message, reply)
		return reply
	}

	if a.llm != nil {
		reply, err := a.remoteReply(ctx, phone, message)
		if err == nil {
			a.remember(phone, message, reply)
			return reply
		}
		logging.Warn("remote model failed, using local responder",
			zap.String("model", a.cfg.Model),
			zap.Error(err),
		)
	}

	reply := fallbackReply(message)
	a.remember(phone, message, reply)
	return reply
}

// remoteReply calls the chat-completions API with the rolling context.
func (a *Assistant) remoteReply(ctx context.Context, phone, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
	}
	for _, ex := range a.recent(phone) {
		messages = append(messages,
			openai.UserMessage(ex.user),
			openai.AssistantMessage(ex.assistant),
		)
	}
	messages = append(messages, openai.UserMessage(message))

	completion, err := a.llm.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(a.cfg.Model),
		Messages:    messages,
		MaxTokens:   openai.Int(a.cfg.MaxTokens),
		Temperature: openai.Float(a.cfg.Temperature),
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errEmptyCompletion
	}

	reply := strings.TrimSpace(completion.Choices[0].Message.Content)
	if reply == "" {
		return "", errEmptyCompletion
	}
	return reply, nil
}

// remember appends an exchange to the rolling context for phone.
func (a *Assistant) remember(phone, user, reply string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	h := append(a.history[phone], exchange{user: user, assistant: reply})
	if len(h) > contextDepth {
		h = h[len(h)-contextDepth:]
	}
	a.history[phone] = h
}

// recent returns a copy of the rolling context for phone.
func (a *Assistant) recent(phone string) []exchange {
	a.mu.Lock()
	defer a.mu.Unlock()

	h := a.history[phone]
	out := make([]exchange, len(h))
	copy(out, h)
	return out
}

// HasContext reports whether phone has rolling context accumulated.
func (a *Assistant) HasContext(phone string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.history[phone]) > 0
}

// Forget drops the rolling context for phone. Called on each successful
// login so a fresh session starts with a clean context.
func (a *Assistant) Forget(phone string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.history, phone)
}
