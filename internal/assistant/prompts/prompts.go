package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/boutiqo/server/internal/assistant/snapshot"
)

//go:embed template/system_prompt.txt
var groundingTemplate string

// Config frames the tenant for every grounding block.
type Config struct {
	BusinessName string `envconfig:"PROMPT_BUSINESS_NAME" default:"Boutiqo"`
	Currency     string `envconfig:"PROMPT_CURRENCY" default:"FCFA"`
	Locale       string `envconfig:"PROMPT_LOCALE" default:"français"`
}

// RenderGrounding renders the combined grounding-plus-question block sent to
// the model as a single message. Keeping the snapshot inside one flat string
// avoids structured context fields being reinterpreted as instructions.
func RenderGrounding(ctx context.Context, config Config, snap *snapshot.Snapshot, question string) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.UserMessage(groundingTemplate),
	)
	vars := map[string]any{
		"BusinessName": config.BusinessName,
		"Currency":     config.Currency,
		"Locale":       config.Locale,
		"Scope":        snap.Scope,
		"Snapshot":     snap.Render(),
		"Question":     question,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("grounding prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("grounding prompt render: empty result")
	}
	return msgs[0].Content, nil
}
