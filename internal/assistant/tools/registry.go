package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/boutiqo/server/internal/analytics"
	"github.com/boutiqo/server/internal/gateway"
	logx "github.com/boutiqo/server/pkg/logger"
)

// Tool names of the fixed dispatch table.
const (
	ToolCreateProduct      = "create_product"
	ToolUpdateProduct      = "update_product"
	ToolAnalyzeSales       = "analyze_sales"
	ToolGetTopProducts     = "get_top_products"
	ToolGetFinancialHealth = "get_financial_health"
	ToolAnalyzeExpenses    = "analyze_expenses"
	ToolAnalyzeConversion  = "analyze_conversion"
	ToolManageDebts        = "manage_debts"
)

type shopKey struct{}

// WithShop scopes subsequent tool executions to one shop.
func WithShop(ctx context.Context, shopID string) context.Context {
	if shopID == "" {
		return ctx
	}
	return context.WithValue(ctx, shopKey{}, shopID)
}

// ShopFrom returns the shop scope set for the current turn, if any.
func ShopFrom(ctx context.Context) string {
	shopID, _ := ctx.Value(shopKey{}).(string)
	return shopID
}

// Deps carries the collaborators the tool handlers close over.
type Deps struct {
	Store     gateway.Store
	Analytics *analytics.Service
}

// Registry is the explicit name -> handler dispatch table. Adding a tool
// means appending to the build list; the orchestrator's control flow does
// not change.
type Registry struct {
	tools map[string]tool.InvokableTool
	infos []*schema.ToolInfo
}

// NewRegistry builds all assistant tools and collects their declared infos
// for model binding.
func NewRegistry(ctx context.Context, deps Deps) (*Registry, error) {
	if deps.Store == nil || deps.Analytics == nil {
		return nil, fmt.Errorf("tool registry requires store and analytics")
	}

	all := []tool.InvokableTool{
		newCreateProductTool(deps.Store),
		newUpdateProductTool(deps.Store),
		newAnalyzeSalesTool(deps.Analytics),
		newTopProductsTool(deps.Analytics),
		newFinancialHealthTool(deps.Analytics),
		newAnalyzeExpensesTool(deps.Analytics),
		newAnalyzeConversionTool(deps.Analytics),
		newManageDebtsTool(deps.Analytics),
	}

	r := &Registry{
		tools: make(map[string]tool.InvokableTool, len(all)),
		infos: make([]*schema.ToolInfo, 0, len(all)),
	}
	for _, t := range all {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get tool info: %w", err)
		}
		r.tools[info.Name] = t
		r.infos = append(r.infos, info)
	}
	return r, nil
}

// Infos returns the declared tool schemas for model binding.
func (r *Registry) Infos() []*schema.ToolInfo {
	return r.infos
}

// Dispatch executes exactly one tool by name with the model-supplied
// arguments and returns the JSON result payload.
func (r *Registry) Dispatch(ctx context.Context, name, argsJSON string) (string, error) {
	t, ok := r.tools[name]
	if !ok {
		logx.Warn().Str("tool_name", name).Msg("unknown tool requested")
		return "", fmt.Errorf("unknown tool: %s", name)
	}

	logx.Debug().Str("tool_name", name).Str("arguments", argsJSON).Msg("executing tool")
	out, err := t.InvokableRun(ctx, argsJSON)
	if err != nil {
		return "", fmt.Errorf("tool %s: %w", name, err)
	}
	return out, nil
}
