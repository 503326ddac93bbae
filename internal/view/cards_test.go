package view

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/atharvakonge/gold-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyDates(rows []HistoryRow) []string {
	dates := make([]string, len(rows))
	for i, r := range rows {
		dates[i] = r.Date
	}
	return dates
}

func TestHistoryRows_BackendOrderIsKept(t *testing.T) {
	// the backend lists transactions ORDER BY id DESC
	payload := `{"success":true,"summary":{},"holdings":[],"transactions":[
		{"id":3,"type":"SELL","weight":1,"price":1000000,"date":"2026-10-03"},
		{"id":2,"type":"BUY","weight":2,"price":1900000,"date":"2026-10-02"},
		{"id":1,"type":"BUY","weight":1,"price":950000,"date":"2026-10-01"}]}`
	var resp models.PortfolioResponse
	require.NoError(t, json.NewDecoder(strings.NewReader(payload)).Decode(&resp))

	rows := HistoryRows(resp.Transactions)

	assert.Equal(t, []string{"2026-10-03", "2026-10-02", "2026-10-01"}, historyDates(rows))
	assert.Equal(t, "sell", rows[0].Class)
}

func TestHistoryRows_SortsByID(t *testing.T) {
	rows := HistoryRows([]models.Transaction{
		{ID: 1, Type: "BUY", Date: "2026-10-01"},
		{ID: 3, Type: "DELETE", Date: "2026-10-03"},
		{ID: 2, Type: "BUY", Date: "2026-10-02"},
	})

	assert.Equal(t, []string{"2026-10-03", "2026-10-02", "2026-10-01"}, historyDates(rows))
	assert.Equal(t, "delete", rows[0].Class)
}

func TestHistoryRows_WithoutIDsReversesInput(t *testing.T) {
	rows := HistoryRows([]models.Transaction{
		{Type: "BUY", Date: "A"},
		{Type: "BUY", Date: "B"},
		{Type: "BUY", Date: "C"},
	})

	assert.Equal(t, []string{"C", "B", "A"}, historyDates(rows))
}

func TestHistoryRows_Empty(t *testing.T) {
	assert.Empty(t, HistoryRows(nil))
}
