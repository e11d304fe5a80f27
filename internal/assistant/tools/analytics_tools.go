package tools

import (
	"context"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/boutiqo/server/internal/analytics"
	"github.com/boutiqo/server/internal/gateway"
)

// WindowInput covers the read-only tools that take an optional day window.
type WindowInput struct {
	Days int `json:"days,omitempty"`
}

// daysParam is shared by all windowed analytics tools.
func daysParam() map[string]*schema.ParameterInfo {
	return map[string]*schema.ParameterInfo{
		"days": {
			Type: "number",
			Desc: "Fenêtre d'analyse en jours (défaut: 30)",
		},
	}
}

func newAnalyzeSalesTool(svc *analytics.Service) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name:        ToolAnalyzeSales,
			Desc:        "Analyse les ventes: chiffre d'affaires total, nombre de ventes, panier moyen et répartition par moyen de paiement.",
			ParamsOneOf: schema.NewParamsOneOfByParams(daysParam()),
		},
		func(ctx context.Context, in *WindowInput) (*analytics.SalesReport, error) {
			return svc.AnalyzeSales(ctx, in.Days, ShopFrom(ctx))
		},
	)
}

type TopProductsInput struct {
	Limit int `json:"limit,omitempty"`
}

func newTopProductsTool(svc *analytics.Service) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolGetTopProducts,
			Desc: "Classe les produits les plus vendus par chiffre d'affaires décroissant.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"limit": {
					Type: "number",
					Desc: "Nombre de produits à retourner (défaut: 5)",
				},
			}),
		},
		func(ctx context.Context, in *TopProductsInput) ([]analytics.ProductRevenue, error) {
			return svc.TopProducts(ctx, in.Limit, ShopFrom(ctx))
		},
	)
}

func newFinancialHealthTool(svc *analytics.Service) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name:        ToolGetFinancialHealth,
			Desc:        "Calcule la santé financière: revenus, dépenses, bénéfice et marge sur la période.",
			ParamsOneOf: schema.NewParamsOneOfByParams(daysParam()),
		},
		func(ctx context.Context, in *WindowInput) (*analytics.FinancialHealth, error) {
			return svc.FinancialHealth(ctx, in.Days, ShopFrom(ctx))
		},
	)
}

func newAnalyzeExpensesTool(svc *analytics.Service) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name:        ToolAnalyzeExpenses,
			Desc:        "Analyse les dépenses: total, répartition par catégorie, charges récurrentes et les cinq plus grosses dépenses.",
			ParamsOneOf: schema.NewParamsOneOfByParams(daysParam()),
		},
		func(ctx context.Context, in *WindowInput) (*analytics.ExpenseReport, error) {
			return svc.AnalyzeExpenses(ctx, in.Days, ShopFrom(ctx))
		},
	)
}

func newAnalyzeConversionTool(svc *analytics.Service) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name:        ToolAnalyzeConversion,
			Desc:        "Analyse la conversion vues/achats par produit et signale les produits en alerte ou star.",
			ParamsOneOf: schema.NewParamsOneOfByParams(daysParam()),
		},
		func(ctx context.Context, in *WindowInput) ([]analytics.ConversionEntry, error) {
			return svc.AnalyzeConversion(ctx, in.Days, ShopFrom(ctx))
		},
	)
}

type ManageDebtsInput struct {
	Status string `json:"status,omitempty"`
}

func newManageDebtsTool(svc *analytics.Service) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolManageDebts,
			Desc: "Liste les dettes clients, filtrables par statut.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"status": {
					Type: "string",
					Desc: "Filtre de statut: unpaid, partial ou paid (optionnel)",
				},
			}),
		},
		func(ctx context.Context, in *ManageDebtsInput) ([]gateway.Debt, error) {
			return svc.Debts(ctx, in.Status, ShopFrom(ctx))
		},
	)
}
