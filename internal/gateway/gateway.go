package gateway

import (
	"context"
	"time"
)

// Product is an inventory row as stored in the products table.
type Product struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Type        string   `json:"type,omitempty"`
	Price       float64  `json:"price"`
	CostPrice   float64  `json:"cost_price,omitempty"`
	Stock       int      `json:"stock"`
	MinStock    *int     `json:"min_stock,omitempty"`
	ShopID      string   `json:"shop_id,omitempty"`
	Images      []string `json:"images,omitempty"`
	IsFeatured  bool     `json:"is_featured,omitempty"`
}

// ProductInput carries the fields accepted on product creation.
type ProductInput struct {
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	ShopID      string   `json:"shop_id"`
	CostPrice   float64  `json:"cost_price,omitempty"`
	Category    string   `json:"category,omitempty"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
	Type        string   `json:"type,omitempty"`
	IsFeatured  bool     `json:"is_featured,omitempty"`
}

// Sale is a completed sale row. Null amounts unmarshal to 0.
type Sale struct {
	TotalAmount   float64   `json:"total_amount"`
	CreatedAt     time.Time `json:"created_at"`
	PaymentMethod string    `json:"payment_method"`
	Type          string    `json:"type"`
	ShopID        string    `json:"shop_id"`
}

// SaleItemProduct is the product embedded in a sale line item.
type SaleItemProduct struct {
	Name   string  `json:"name"`
	ShopID string  `json:"shop_id"`
	Price  float64 `json:"price"`
}

// SaleItem is a sale line item joined to its product.
type SaleItem struct {
	ProductID string           `json:"product_id"`
	Quantity  float64          `json:"quantity"`
	Price     float64          `json:"price"`
	Product   *SaleItemProduct `json:"products"`
}

// Expense is an expense row.
type Expense struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	IsRecurring bool    `json:"is_recurring"`
	ShopID      string  `json:"shop_id"`
}

// ViewProduct is the product embedded in a product view row.
type ViewProduct struct {
	Name   string `json:"name"`
	ShopID string `json:"shop_id"`
}

// ProductView records one customer view of a product page.
type ProductView struct {
	ProductID string       `json:"product_id"`
	Product   *ViewProduct `json:"products"`
}

// Debt is a customer debt row.
type Debt struct {
	ID            string  `json:"id"`
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	ShopID        string  `json:"shop_id"`
}

// Turn is one durable conversation turn of the assistant.
type Turn struct {
	SessionKey string    `json:"session_key"`
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store is the read/write facade over the business data the assistant
// consumes. A zero `since` means no window filter; an empty shopID means
// no shop scoping.
type Store interface {
	Products(ctx context.Context, shopID string) ([]Product, error)
	CreateProduct(ctx context.Context, in ProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, id string, fields map[string]any) (*Product, error)

	Sales(ctx context.Context, since time.Time, shopID string) ([]Sale, error)
	SaleItems(ctx context.Context, since time.Time, shopID string) ([]SaleItem, error)
	Expenses(ctx context.Context, since time.Time, shopID string) ([]Expense, error)
	ProductViews(ctx context.Context, since time.Time, shopID string) ([]ProductView, error)
	Debts(ctx context.Context, status, shopID string) ([]Debt, error)
}

// TurnStore persists the assistant's durable conversation history.
// Rows are append-only; replay is bounded and ordered oldest-first.
type TurnStore interface {
	AppendTurn(ctx context.Context, sessionKey, role, content string) error
	RecentTurns(ctx context.Context, sessionKey string, limit int) ([]Turn, error)
}
