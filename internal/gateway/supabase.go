package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	errx "github.com/boutiqo/server/internal/core/error"
	logx "github.com/boutiqo/server/pkg/logger"
)

const (
	tableProducts      = "products"
	tableSales         = "sales"
	tableSaleItems     = "sale_items"
	tableExpenses      = "expenses"
	tableProductViews  = "product_views"
	tableDebts         = "debts"
	tableConversations = "ai_conversations"
)

// Client implements Store and TurnStore against Supabase (PostgREST).
// Each call is an independent request; the client is safe for concurrent use.
type Client struct {
	sb *supabase.Client
}

func NewClient(sb *supabase.Client) *Client {
	return &Client{sb: sb}
}

var (
	_ Store     = (*Client)(nil)
	_ TurnStore = (*Client)(nil)
)

func (c *Client) Products(ctx context.Context, shopID string) ([]Product, error) {
	q := c.sb.From(tableProducts).Select("*", "", false)
	if shopID != "" {
		q = q.Eq("shop_id", shopID)
	}
	var rows []Product
	if _, err := q.ExecuteTo(&rows); err != nil {
		logx.Error().Err(err).Str("shop_id", shopID).Msg("failed to load products")
		return nil, errx.WrapSupabase(err)
	}
	return rows, nil
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	var rows []Product
	_, err := c.sb.From(tableProducts).
		Insert(in, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		logx.Error().Err(err).Str("name", in.Name).Msg("failed to create product")
		return nil, errx.WrapSupabase(err)
	}
	if len(rows) == 0 {
		return nil, errx.WrapSupabase(fmt.Errorf("insert returned no row"))
	}
	return &rows[0], nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, fields map[string]any) (*Product, error) {
	var rows []Product
	_, err := c.sb.From(tableProducts).
		Update(fields, "representation", "").
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		logx.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return nil, errx.WrapSupabase(err)
	}
	if len(rows) == 0 {
		return nil, errx.WrapSupabase(fmt.Errorf("product not found: %s", id))
	}
	return &rows[0], nil
}

func (c *Client) Sales(ctx context.Context, since time.Time, shopID string) ([]Sale, error) {
	q := c.sb.From(tableSales).Select("total_amount, created_at, payment_method, type, shop_id", "", false)
	if !since.IsZero() {
		q = q.Gte("created_at", since.UTC().Format(time.RFC3339))
	}
	if shopID != "" {
		q = q.Eq("shop_id", shopID)
	}
	var rows []Sale
	if _, err := q.ExecuteTo(&rows); err != nil {
		logx.Error().Err(err).Str("shop_id", shopID).Msg("failed to load sales")
		return nil, errx.WrapSupabase(err)
	}
	return rows, nil
}

// SaleItems returns line items joined to their product. Shop scoping happens
// in the aggregators via the embedded product's shop_id.
func (c *Client) SaleItems(ctx context.Context, since time.Time, shopID string) ([]SaleItem, error) {
	q := c.sb.From(tableSaleItems).
		Select("product_id, quantity, price, products(name, shop_id, price)", "", false)
	if !since.IsZero() {
		q = q.Gte("created_at", since.UTC().Format(time.RFC3339))
	}
	var rows []SaleItem
	if _, err := q.ExecuteTo(&rows); err != nil {
		logx.Error().Err(err).Msg("failed to load sale items")
		return nil, errx.WrapSupabase(err)
	}
	if shopID == "" {
		return rows, nil
	}
	scoped := make([]SaleItem, 0, len(rows))
	for _, it := range rows {
		if it.Product != nil && it.Product.ShopID == shopID {
			scoped = append(scoped, it)
		}
	}
	return scoped, nil
}

func (c *Client) Expenses(ctx context.Context, since time.Time, shopID string) ([]Expense, error) {
	q := c.sb.From(tableExpenses).Select("amount, category, description, date, is_recurring, shop_id", "", false)
	if !since.IsZero() {
		q = q.Gte("date", since.UTC().Format(time.RFC3339))
	}
	if shopID != "" {
		q = q.Eq("shop_id", shopID)
	}
	var rows []Expense
	if _, err := q.ExecuteTo(&rows); err != nil {
		logx.Error().Err(err).Str("shop_id", shopID).Msg("failed to load expenses")
		return nil, errx.WrapSupabase(err)
	}
	return rows, nil
}

func (c *Client) ProductViews(ctx context.Context, since time.Time, shopID string) ([]ProductView, error) {
	q := c.sb.From(tableProductViews).Select("product_id, products(name, shop_id)", "", false)
	if !since.IsZero() {
		q = q.Gte("created_at", since.UTC().Format(time.RFC3339))
	}
	var rows []ProductView
	if _, err := q.ExecuteTo(&rows); err != nil {
		logx.Error().Err(err).Msg("failed to load product views")
		return nil, errx.WrapSupabase(err)
	}
	if shopID == "" {
		return rows, nil
	}
	scoped := make([]ProductView, 0, len(rows))
	for _, v := range rows {
		if v.Product != nil && v.Product.ShopID == shopID {
			scoped = append(scoped, v)
		}
	}
	return scoped, nil
}

func (c *Client) Debts(ctx context.Context, status, shopID string) ([]Debt, error) {
	q := c.sb.From(tableDebts).Select("id, customer_name, customer_phone, amount, status, shop_id", "", false)
	if status != "" {
		q = q.Eq("status", status)
	}
	if shopID != "" {
		q = q.Eq("shop_id", shopID)
	}
	var rows []Debt
	if _, err := q.ExecuteTo(&rows); err != nil {
		logx.Error().Err(err).Str("status", status).Msg("failed to load debts")
		return nil, errx.WrapSupabase(err)
	}
	return rows, nil
}

// AppendTurn durably persists one conversation turn. Rows are never mutated
// or deleted by this subsystem.
func (c *Client) AppendTurn(ctx context.Context, sessionKey, role, content string) error {
	row := map[string]any{
		"session_key": sessionKey,
		"role":        role,
		"content":     content,
	}
	_, _, err := c.sb.From(tableConversations).
		Insert(row, false, "", "minimal", "").
		Execute()
	if err != nil {
		logx.Error().Err(err).Str("session_key", sessionKey).Msg("failed to append conversation turn")
		return errx.WrapSupabase(err)
	}
	return nil
}

// RecentTurns returns at most limit of the latest turns for a session key,
// ordered oldest-first for replay.
func (c *Client) RecentTurns(ctx context.Context, sessionKey string, limit int) ([]Turn, error) {
	var rows []Turn
	_, err := c.sb.From(tableConversations).
		Select("session_key, role, content, created_at", "", false).
		Eq("session_key", sessionKey).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		ExecuteTo(&rows)
	if err != nil {
		logx.Error().Err(err).Str("session_key", sessionKey).Msg("failed to load conversation history")
		return nil, errx.WrapSupabase(err)
	}
	// query is newest-first so the limit keeps the most recent rows
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}
