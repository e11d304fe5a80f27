package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/boutiqo/server/internal/gateway"
)

// ===================================
// Create Product Tool
// ===================================

type CreateProductInput struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	CostPrice   float64 `json:"cost_price,omitempty"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
	Type        string  `json:"type,omitempty"`
	IsFeatured  bool    `json:"is_featured,omitempty"`
}

func newCreateProductTool(store gateway.Store) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolCreateProduct,
			Desc: "Crée un nouveau produit dans l'inventaire de la boutique. Utilise cet outil quand le commerçant demande d'ajouter un produit.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"name": {
					Type:     "string",
					Desc:     "Nom du produit",
					Required: true,
				},
				"price": {
					Type:     "number",
					Desc:     "Prix de vente",
					Required: true,
				},
				"stock": {
					Type:     "number",
					Desc:     "Quantité en stock",
					Required: true,
				},
				"cost_price": {
					Type: "number",
					Desc: "Prix d'achat (optionnel)",
				},
				"category": {
					Type: "string",
					Desc: "Catégorie du produit (optionnel)",
				},
				"description": {
					Type: "string",
					Desc: "Description du produit (optionnel)",
				},
				"type": {
					Type: "string",
					Desc: "Type: 'product' ou 'service' (défaut: product)",
				},
				"is_featured": {
					Type: "boolean",
					Desc: "Mettre le produit en avant sur la boutique en ligne",
				},
			}),
		},
		func(ctx context.Context, in *CreateProductInput) (*gateway.Product, error) {
			if strings.TrimSpace(in.Name) == "" {
				return nil, fmt.Errorf("name is required")
			}
			productType := in.Type
			if productType == "" {
				productType = "product"
			}
			return store.CreateProduct(ctx, gateway.ProductInput{
				Name:        strings.TrimSpace(in.Name),
				Price:       in.Price,
				Stock:       in.Stock,
				ShopID:      ShopFrom(ctx),
				CostPrice:   in.CostPrice,
				Category:    in.Category,
				Description: in.Description,
				Type:        productType,
				IsFeatured:  in.IsFeatured,
			})
		},
	)
}

// ===================================
// Update Product Tool
// ===================================

type UpdateProductInput struct {
	ProductID   string   `json:"product_id"`
	Name        *string  `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	CostPrice   *float64 `json:"cost_price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Description *string  `json:"description,omitempty"`
}

func newUpdateProductTool(store gateway.Store) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolUpdateProduct,
			Desc: "Met à jour un produit existant. Seuls les champs fournis sont modifiés. L'identifiant du produit se trouve dans l'état de la boutique.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id": {
					Type:     "string",
					Desc:     "Identifiant exact du produit à modifier",
					Required: true,
				},
				"name": {
					Type: "string",
					Desc: "Nouveau nom",
				},
				"price": {
					Type: "number",
					Desc: "Nouveau prix de vente",
				},
				"stock": {
					Type: "number",
					Desc: "Nouvelle quantité en stock",
				},
				"cost_price": {
					Type: "number",
					Desc: "Nouveau prix d'achat",
				},
				"category": {
					Type: "string",
					Desc: "Nouvelle catégorie",
				},
				"description": {
					Type: "string",
					Desc: "Nouvelle description",
				},
			}),
		},
		func(ctx context.Context, in *UpdateProductInput) (*gateway.Product, error) {
			if strings.TrimSpace(in.ProductID) == "" {
				return nil, fmt.Errorf("product_id is required")
			}

			fields := make(map[string]any)
			if in.Name != nil {
				fields["name"] = *in.Name
			}
			if in.Price != nil {
				fields["price"] = *in.Price
			}
			if in.Stock != nil {
				fields["stock"] = *in.Stock
			}
			if in.CostPrice != nil {
				fields["cost_price"] = *in.CostPrice
			}
			if in.Category != nil {
				fields["category"] = *in.Category
			}
			if in.Description != nil {
				fields["description"] = *in.Description
			}
			if len(fields) == 0 {
				return nil, fmt.Errorf("no fields to update")
			}

			return store.UpdateProduct(ctx, strings.TrimSpace(in.ProductID), fields)
		},
	)
}
