package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boutiqo/server/internal/analytics"
	"github.com/boutiqo/server/internal/assistant"
	"github.com/boutiqo/server/internal/assistant/session"
	"github.com/boutiqo/server/internal/assistant/tools"
	"github.com/boutiqo/server/internal/gateway"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// nullStore satisfies the gateway interfaces for handler-level tests.
type nullStore struct{}

func (nullStore) Products(ctx context.Context, shopID string) ([]gateway.Product, error) {
	return nil, nil
}

func (nullStore) CreateProduct(ctx context.Context, in gateway.ProductInput) (*gateway.Product, error) {
	return nil, nil
}

func (nullStore) UpdateProduct(ctx context.Context, id string, fields map[string]any) (*gateway.Product, error) {
	return nil, nil
}

func (nullStore) Sales(ctx context.Context, since time.Time, shopID string) ([]gateway.Sale, error) {
	return nil, nil
}

func (nullStore) SaleItems(ctx context.Context, since time.Time, shopID string) ([]gateway.SaleItem, error) {
	return nil, nil
}

func (nullStore) Expenses(ctx context.Context, since time.Time, shopID string) ([]gateway.Expense, error) {
	return nil, nil
}

func (nullStore) ProductViews(ctx context.Context, since time.Time, shopID string) ([]gateway.ProductView, error) {
	return nil, nil
}

func (nullStore) Debts(ctx context.Context, status, shopID string) ([]gateway.Debt, error) {
	return nil, nil
}

func (nullStore) AppendTurn(ctx context.Context, sessionKey, role, content string) error {
	return nil
}

func (nullStore) RecentTurns(ctx context.Context, sessionKey string, limit int) ([]gateway.Turn, error) {
	return nil, nil
}

// newTestServer builds the HTTP surface around a service with no model
// credential configured.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := nullStore{}
	registry, err := tools.NewRegistry(context.Background(), tools.Deps{
		Store:     store,
		Analytics: analytics.NewService(store),
	})
	require.NoError(t, err)

	sessions := session.NewStore(store, session.NewMemoryCache(), session.DefaultReplayDepth)
	svc, err := assistant.NewService(assistant.Config{}, nil, store, sessions, registry)
	require.NoError(t, err)

	return New(svc)
}

func postJSON(t *testing.T, srv *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSuggestPhoto(t *testing.T) {
	srv := newTestServer(t)

	w := postJSON(t, srv, "/ai/suggest-photo", map[string]string{"name": "Red T-Shirt!!"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		URLs []string `json:"urls"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.URLs, 4)
	for _, u := range resp.URLs {
		assert.Contains(t, u, "red,shirt")
	}
}

func TestSuggestPhotoMissingName(t *testing.T) {
	srv := newTestServer(t)

	w := postJSON(t, srv, "/ai/suggest-photo", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeMissingQuestion(t *testing.T) {
	srv := newTestServer(t)

	w := postJSON(t, srv, "/ai/analyze", map[string]string{"shopId": "1"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeUnavailableWithoutCredential(t *testing.T) {
	srv := newTestServer(t)

	w := postJSON(t, srv, "/ai/analyze", map[string]string{"question": "combien de ventes ?"})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "assistant unavailable")
}
