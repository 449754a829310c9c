package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/faqdesk/internal/domain/notify"
)

func TestChannel_AppendsRow(t *testing.T) {
	var (
		gotPath  string
		gotQuery string
		gotBody  valueRange
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotQuery = r.URL.RawQuery
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"updates":{"updatedRows":1}}`))
	}))
	defer srv.Close()

	ch := New(Config{BaseURL: srv.URL, SpreadsheetID: "sheet-1", Range: "Leads!A:G"}, srv.Client())
	err := ch.Send(context.Background(), notify.Notification{Row: []string{"APP-1", "2026-01-02 03:04:05", "Иван"}})
	require.NoError(t, err)
	require.Equal(t, "/v4/spreadsheets/sheet-1/values/Leads%21A:G:append", gotPath)
	require.Contains(t, gotQuery, "valueInputOption=RAW")
	require.Equal(t, [][]string{{"APP-1", "2026-01-02 03:04:05", "Иван"}}, gotBody.Values)
}

func TestChannel_SkipsEmptyRowAndReportsErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"error":{"code":403}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	ch := New(Config{BaseURL: srv.URL, SpreadsheetID: "s"}, srv.Client())
	require.NoError(t, ch.Send(context.Background(), notify.Notification{}))
	require.Zero(t, calls)

	err := ch.Send(context.Background(), notify.Notification{Row: []string{"x"}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=403")
	require.Equal(t, 1, calls)
}
