package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/boutiqo/server/internal/assistant/prompts"
	"github.com/boutiqo/server/internal/assistant/session"
	"github.com/boutiqo/server/internal/assistant/snapshot"
	"github.com/boutiqo/server/internal/assistant/tools"
	errx "github.com/boutiqo/server/internal/core/error"
	"github.com/boutiqo/server/internal/gateway"
	logx "github.com/boutiqo/server/pkg/logger"
)

// Config tunes the orchestration around the model.
type Config struct {
	HistoryDepth int           `envconfig:"ASSISTANT_HISTORY_DEPTH" default:"20"`
	ModelTimeout time.Duration `envconfig:"ASSISTANT_MODEL_TIMEOUT" default:"60s"`
	Model        ModelConfig
	Prompt       prompts.Config
}

// Service drives one assistant turn end to end: session, grounding, model
// round-trip, tool dispatch and persistence.
type Service struct {
	config   Config
	model    model.ToolCallingChatModel // nil when no credential was configured
	store    gateway.Store
	sessions *session.Store
	registry *tools.Registry
}

// NewService wires the orchestrator. A nil chat model keeps the service
// constructible; every Analyze call then fails fast with 503.
func NewService(
	config Config,
	chatModel model.ToolCallingChatModel,
	store gateway.Store,
	sessions *session.Store,
	registry *tools.Registry,
) (*Service, error) {
	if chatModel != nil {
		bound, err := chatModel.WithTools(registry.Infos())
		if err != nil {
			logx.Error().Err(err).Msg("Failed to bind tools to chat model")
			return nil, err
		}
		chatModel = bound
	}

	return &Service{
		config:   config,
		model:    chatModel,
		store:    store,
		sessions: sessions,
		registry: registry,
	}, nil
}

// toolResult is the envelope fed back to the model as the tool's output.
type toolResult struct {
	Content string          `json:"content"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Analyze answers one business question for the given shop scope. Any
// unrecovered failure invalidates the cached session so the next request
// rebuilds a clean conversation from durable history.
func (s *Service) Analyze(ctx context.Context, question, shopID string) (string, error) {
	if s.model == nil {
		return "", errx.New(nil, http.StatusServiceUnavailable, errx.AssistantUnavailableMessage)
	}

	// the scope key is resolved before anything can fail so cleanup is
	// always possible
	key := session.ScopeKey(shopID)
	unlock := s.sessions.Lock(key)
	defer unlock()

	messages, err := s.sessions.GetOrCreate(ctx, key)
	if err != nil {
		return "", err
	}
	if err := s.sessions.Append(ctx, key, session.RoleUser, question); err != nil {
		return "", err
	}

	answer, messages, err := s.runTurn(ctx, messages, question, shopID)
	if err != nil {
		s.sessions.Invalidate(ctx, key)
		return "", err
	}

	if err := s.sessions.Save(ctx, key, messages); err != nil {
		logx.Warn().Err(err).Str("session_key", key).Msg("failed to cache live session")
	}
	// best effort: losing the assistant turn degrades replay, not the answer
	if err := s.sessions.Append(ctx, key, session.RoleAssistant, answer); err != nil {
		logx.Error().Err(err).Str("session_key", key).Msg("failed to persist assistant turn")
	}

	return answer, nil
}

// runTurn executes the single round-trip protocol: grounding, first model
// call, at most one tool execution, then the synthesis call.
func (s *Service) runTurn(ctx context.Context, messages []*schema.Message, question, shopID string) (string, []*schema.Message, error) {
	key := session.ScopeKey(shopID)

	snap, err := snapshot.Build(ctx, s.store, shopID)
	if err != nil {
		// no partial grounding is ever sent to the model
		return "", nil, err
	}

	grounding, err := prompts.RenderGrounding(ctx, s.config.Prompt, snap, question)
	if err != nil {
		return "", nil, err
	}
	messages = append(messages, schema.UserMessage(grounding))

	resp, err := s.generate(ctx, messages)
	if err != nil {
		return "", nil, errx.WrapModel(err)
	}
	logUsage(s.config.Model.Model, key, resp)
	messages = append(messages, resp)

	if len(resp.ToolCalls) == 0 {
		return resp.Content, messages, nil
	}

	// only the first tool call is honored; multi-tool turns are not supported
	call := resp.ToolCalls[0]
	if len(resp.ToolCalls) > 1 {
		logx.Warn().
			Str("session_key", key).
			Int("ignored", len(resp.ToolCalls)-1).
			Msg("model requested multiple tool calls, honoring the first only")
	}

	payload := s.executeTool(tools.WithShop(ctx, shopID), key, call)
	messages = append(messages, schema.ToolMessage(payload, call.ID))

	final, err := s.generate(ctx, messages)
	if err != nil {
		return "", nil, errx.WrapModel(err)
	}
	logUsage(s.config.Model.Model, key, final)
	messages = append(messages, final)

	return final.Content, messages, nil
}

// generate runs one bounded model invocation.
func (s *Service) generate(ctx context.Context, messages []*schema.Message) (*schema.Message, error) {
	timeout := s.config.ModelTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	mctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.model.Generate(mctx, messages)
}

// executeTool dispatches one tool call and wraps the outcome. Failures are
// fed back to the model as a structured payload so it can answer in natural
// language instead of aborting the turn.
func (s *Service) executeTool(ctx context.Context, key string, call schema.ToolCall) string {
	raw, err := s.registry.Dispatch(ctx, call.Function.Name, call.Function.Arguments)
	if err != nil {
		logx.Warn().
			Err(err).
			Str("session_key", key).
			Str("tool_name", call.Function.Name).
			Msg("tool execution failed, feeding failure back to the model")
		b, _ := json.Marshal(toolResult{Content: "Échec", Error: err.Error()})
		return string(b)
	}

	b, err := json.Marshal(toolResult{Content: "Succès", Data: json.RawMessage(raw)})
	if err != nil {
		b, _ = json.Marshal(toolResult{Content: "Échec", Error: "invalid tool result"})
	}
	return string(b)
}
