package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/atharvakonge/gold-tracker/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/")
}

func TestClient_Prices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/prices", r.URL.Path)
		w.Write([]byte(`{"success":true,"last_update":"2026-10-19 10:00:00","data":{"1.0":{"weight":1.0,"sell":1041000.0,"buy":905000.0,"spread_pct":15.03}}}`))
	})

	resp, err := c.Prices(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2026-10-19 10:00:00", resp.LastUpdate)
	q, ok := resp.Data.Lookup(1)
	require.True(t, ok)
	assert.True(t, q.Sell.Equal(decimal.NewFromInt(1041000)))
}

func TestClient_PricesUnsuccessful(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"scrape failed"}`))
	})

	_, err := c.Prices(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "scrape failed", apiErr.Message)
	assert.Equal(t, "scrape failed", Message(err, "Failed to load prices"))
}

func TestClient_Portfolio(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/portfolio/summary", r.URL.Path)
		w.Write([]byte(`{
			"success": true,
			"summary": {"total_current_value": 1900000, "total_weight": 2, "total_cost": 1950000, "total_profit_loss": -50000, "total_profit_loss_pct": -2.56, "holdings_count": 1},
			"holdings": [{"id": "20261019", "weight": 2.0, "purchase_price": 1950000.0, "purchase_date": "2026-10-01", "notes": "Antam", "current_buy": 1900000.0, "profit_loss": -50000.0, "profit_loss_pct": -2.56}],
			"transactions": [{"id": 1, "type": "BUY", "holding_id": "20261019", "weight": 2.0, "price": 1950000.0, "date": "2026-10-01"}]
		}`))
	})

	resp, err := c.Portfolio(context.Background())
	require.NoError(t, err)

	assert.True(t, resp.Summary.TotalProfitLoss.Equal(decimal.NewFromInt(-50000)))
	require.Len(t, resp.Holdings, 1)
	assert.Equal(t, "Antam", resp.Holdings[0].Notes)
	require.Len(t, resp.Transactions, 1)
	assert.Equal(t, models.TransactionBuy, resp.Transactions[0].Type)
}

func TestClient_AddHolding(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/portfolio/holdings", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		raw, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"weight":5,"purchase_price":4900000,"purchase_date":"2026-10-19","notes":"UBS"}`, string(raw))
		w.Write([]byte(`{"success":true}`))
	})

	_, err := c.AddHolding(context.Background(), models.HoldingRequest{
		Weight: 5, PurchasePrice: 4900000, PurchaseDate: "2026-10-19", Notes: "UBS",
	})
	assert.NoError(t, err)
}

func TestClient_UpdateHoldingNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/portfolio/holdings/abc", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":"Holding not found"}`))
	})

	_, err := c.UpdateHolding(context.Background(), "abc", models.HoldingRequest{Weight: 1})

	assert.True(t, IsNotFound(err))
	assert.Equal(t, "Holding not found", Message(err, "Failed to update holding"))
}

func TestClient_SellHoldingSendsPriceInBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/portfolio/holdings/h1", r.URL.Path)

		var body models.SellRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 1900000.0, body.SellPrice)
		w.Write([]byte(`{"success":true,"message":"Holding sold successfully"}`))
	})

	resp, err := c.SellHolding(context.Background(), "h1", models.SellRequest{SellPrice: 1900000})
	require.NoError(t, err)
	assert.Equal(t, "Holding sold successfully", resp.Message)
}

func TestClient_ImportHoldingsMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/portfolio/import", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		content, _ := io.ReadAll(f)

		assert.Equal(t, "holdings.csv", hdr.Filename)
		assert.Equal(t, "weight,price\n1,1000000\n", string(content))
		w.Write([]byte(`{"success":true,"imported":7,"errors":["Row 3: Missing weight or price"]}`))
	})

	resp, err := c.ImportHoldings(context.Background(), "holdings.csv", strings.NewReader("weight,price\n1,1000000\n"))
	require.NoError(t, err)

	assert.Equal(t, 7, resp.Imported)
	assert.Equal(t, []string{"Row 3: Missing weight or price"}, resp.Errors)
}

func TestClient_ImportHoldingsRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":"Unsupported file format. Use CSV or Excel (.xlsx)"}`))
	})

	_, err := c.ImportHoldings(context.Background(), "notes.txt", strings.NewReader("x"))
	assert.Equal(t, "Unsupported file format. Use CSV or Excel (.xlsx)", Message(err, "Import failed"))
}

func TestClient_ExportHoldings(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/portfolio/export", r.URL.Path)
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("Purchase Date,Weight,Quantity,Purchase Price,Notes\n2026-10-01,1.0,1,1000000.0,\n"))
	})

	var buf bytes.Buffer
	n, err := c.ExportHoldings(context.Background(), &buf)
	require.NoError(t, err)

	assert.Equal(t, int64(buf.Len()), n)
	assert.True(t, strings.HasPrefix(buf.String(), "Purchase Date,Weight"))
}

func TestClient_PriceHistoryClampsDays(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "365", r.URL.Query().Get("days"))
		w.Write([]byte(`{"success":true,"days":365,"count":1,"data":[{"weight":1.0,"sell_price":1041000,"buy_price":905000,"recorded_at":"2026-10-19T09:00:00+07:00"}]}`))
	})

	resp, err := c.PriceHistory(context.Background(), 1000)
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.True(t, resp.Data[0].SellPrice.Equal(decimal.NewFromInt(1041000)))
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := New(srv.URL)

	_, err := c.Portfolio(context.Background())

	var transport *TransportError
	require.ErrorAs(t, err, &transport)
	assert.Equal(t, NetworkErrorMessage, Message(err, "Failed to load portfolio"))
}

func TestClient_ErrorStatusWithoutBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.AddHolding(context.Background(), models.HoldingRequest{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "Failed to save holding", Message(err, "Failed to save holding"))
}

func TestClampDays(t *testing.T) {
	assert.Equal(t, 1, ClampDays(-3))
	assert.Equal(t, 30, ClampDays(30))
	assert.Equal(t, 365, ClampDays(400))
}
