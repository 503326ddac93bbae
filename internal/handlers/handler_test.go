package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/atharvakonge/gold-tracker/internal/db"
	"github.com/atharvakonge/gold-tracker/internal/models"
	"github.com/atharvakonge/gold-tracker/internal/notify"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockBackend is a mock implementation of Backend for testing
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Prices(ctx context.Context) (models.PricesResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.PricesResponse), args.Error(1)
}

func (m *MockBackend) Portfolio(ctx context.Context) (models.PortfolioResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.PortfolioResponse), args.Error(1)
}

func (m *MockBackend) AddHolding(ctx context.Context, req models.HoldingRequest) (models.APIResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.APIResponse), args.Error(1)
}

func (m *MockBackend) UpdateHolding(ctx context.Context, id string, req models.HoldingRequest) (models.APIResponse, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(models.APIResponse), args.Error(1)
}

func (m *MockBackend) SellHolding(ctx context.Context, id string, req models.SellRequest) (models.APIResponse, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(models.APIResponse), args.Error(1)
}

func (m *MockBackend) ImportHoldings(ctx context.Context, filename string, file io.Reader) (models.ImportResponse, error) {
	content, _ := io.ReadAll(file)
	args := m.Called(ctx, filename, string(content))
	return args.Get(0).(models.ImportResponse), args.Error(1)
}

func (m *MockBackend) ExportHoldings(ctx context.Context, w io.Writer) (int64, error) {
	args := m.Called(ctx, w)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBackend) PriceHistory(ctx context.Context, days int) (models.PriceHistoryResponse, error) {
	args := m.Called(ctx, days)
	return args.Get(0).(models.PriceHistoryResponse), args.Error(1)
}

// MockImportLog is a mock implementation of db.ImportLog for testing
type MockImportLog struct {
	mock.Mock
}

func (m *MockImportLog) Record(ctx context.Context, run db.ImportRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockImportLog) Recent(ctx context.Context, limit int) ([]db.ImportRun, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]db.ImportRun), args.Error(1)
}

var testNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func testPrices() models.PricesResponse {
	return models.PricesResponse{
		Success:    true,
		LastUpdate: "2026-10-19 09:00:00",
		Data: models.PriceTable{
			"5":   {Weight: 5, Sell: decimal.NewFromInt(4900000), Buy: decimal.NewFromInt(4500000), SpreadPct: 8.89},
			"1":   {Weight: 1, Sell: decimal.NewFromInt(1000000), Buy: decimal.NewFromInt(920000), SpreadPct: 8.7},
			"0.5": {Weight: 0.5, Sell: decimal.NewFromInt(520000), Buy: decimal.NewFromInt(460000), SpreadPct: 13.04},
		},
	}
}

func testPortfolio() models.PortfolioResponse {
	return models.PortfolioResponse{
		Success: true,
		Summary: models.Summary{
			TotalCurrentValue:  decimal.NewFromInt(1900000),
			TotalWeight:        2,
			TotalCost:          decimal.NewFromInt(1950000),
			TotalProfitLoss:    decimal.NewFromInt(-50000),
			TotalProfitLossPct: -2.56,
			HoldingsCount:      1,
		},
		Holdings: []models.Holding{{
			ID:            "h1",
			Weight:        2,
			PurchasePrice: decimal.NewFromInt(1950000),
			PurchaseDate:  "2026-10-01",
			Notes:         "Antam",
			CurrentBuy:    decimal.NewFromInt(1900000),
			ProfitLoss:    decimal.NewFromInt(-50000),
			ProfitLossPct: -2.56,
		}},
		Transactions: []models.Transaction{
			{ID: 1, Type: "BUY", HoldingID: "h0", Weight: 1, Price: decimal.NewFromInt(950000), Date: "2026-09-01"},
			{ID: 2, Type: "SELL", HoldingID: "h0", Weight: 1, Price: decimal.NewFromInt(980000), Date: "2026-09-15"},
			{ID: 3, Type: "BUY", HoldingID: "h1", Weight: 2, Price: decimal.NewFromInt(1950000), Date: "2026-10-01"},
		},
	}
}

type fixture struct {
	backend *MockBackend
	imports *MockImportLog
	cache   *models.Cache
	notes   *notify.Notifier
	handler *Handler
	router  *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		backend: new(MockBackend),
		imports: new(MockImportLog),
		cache:   models.NewCache(),
		notes:   notify.New(time.Minute),
	}
	f.handler = NewHandler(f.backend, f.cache, Options{
		Notifier:     f.notes,
		ImportLog:    f.imports,
		PushInterval: time.Hour,
		Now:          func() time.Time { return testNow },
	})
	f.router = gin.New()
	f.handler.Templates(f.router)
	f.handler.Register(f.router)
	return f
}

// primeCache loads the fixtures the way a previous page view would have
func (f *fixture) primeCache() {
	f.cache.SetPrices(testPrices(), testNow)
	f.cache.SetPortfolio(testPortfolio(), testNow)
}

func (f *fixture) expectRefresh() {
	f.backend.On("Prices", mock.Anything).Return(testPrices(), nil)
	f.backend.On("Portfolio", mock.Anything).Return(testPortfolio(), nil)
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) get(path string) *httptest.ResponseRecorder {
	return f.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func postForm(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req
}

func toastMessages(n *notify.Notifier, kind notify.Kind) []string {
	var out []string
	for _, t := range n.Active() {
		if t.Kind == kind {
			out = append(out, t.Message)
		}
	}
	return out
}
