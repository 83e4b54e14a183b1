package server_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"storj.io/delivery-metrics/pkg/delivery"
	"storj.io/delivery-metrics/pkg/server"
)

const goodCSV = `Delivery Person ID,Customer ID,Delivery Days,Monthly Billing (Estimated),Weekly Billing (Estimated),Individual Cost (Estimated)
P1,C1,Monthly,$100,,
P2,C1,Weekly,,$10,
P1,C2,"M,T,W,Th,F",,,$10
`

func newHandler(t *testing.T) http.Handler {
	return newLimitedHandler(t, 1<<20)
}

func newLimitedHandler(t *testing.T, maxUploadBytes int64) http.Handler {
	gin.SetMode(gin.TestMode)
	srv := server.New(zaptest.NewLogger(t), server.Config{
		Options:        delivery.DefaultOptions(),
		MaxUploadBytes: maxUploadBytes,
	})
	return srv.Handler()
}

func upload(t *testing.T, handler http.Handler, path, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCreateReport(t *testing.T) {
	rec := upload(t, newHandler(t), "/api/reports", "deliveries.csv", []byte(goodCSV))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		ReportID string `json:"report_id"`
		Stats    struct {
			Rows     int `json:"rows"`
			Monthly  int `json:"monthly"`
			Weekly   int `json:"weekly"`
			PerVisit int `json:"per_visit"`
		} `json:"stats"`
		Tables []struct {
			Title   string      `json:"title"`
			Columns [2]string   `json:"columns"`
			Rows    [][2]string `json:"rows"`
		} `json:"tables"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	_, err := uuid.Parse(resp.ReportID)
	require.NoError(t, err)
	assert.Equal(t, resp.ReportID, rec.Header().Get("X-Report-ID"))

	assert.Equal(t, 3, resp.Stats.Rows)
	assert.Equal(t, 1, resp.Stats.Monthly)
	assert.Equal(t, 1, resp.Stats.Weekly)
	assert.Equal(t, 1, resp.Stats.PerVisit)

	require.Len(t, resp.Tables, 5)
	assert.Equal(t, "Deliveries per Delivery Person", resp.Tables[0].Title)
	assert.Equal(t, [][2]string{{"P1", "6"}, {"P2", "1"}}, resp.Tables[0].Rows)
	assert.Equal(t, [][2]string{{"M", "1"}, {"T", "1"}, {"W", "1"}, {"Th", "1"}, {"F", "1"}}, resp.Tables[1].Rows)
	assert.Equal(t, "Cost per Customer", resp.Tables[4].Title)
	assert.Equal(t, [2]string{"Customer ID", "Total Cost ($)"}, resp.Tables[4].Columns)
	assert.Equal(t, [][2]string{{"C1", "143.30"}, {"C2", "216.50"}}, resp.Tables[4].Rows)
}

func TestExportCosts(t *testing.T) {
	rec := upload(t, newHandler(t), "/api/reports/costs.csv", "deliveries.csv", []byte(goodCSV))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "attachment; filename=customer-costs.csv", rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `Customer ID,Total Cost ($)
C1,143.30
C2,216.50
`, rec.Body.String())
}

func TestUploadErrors(t *testing.T) {
	handler := newHandler(t)

	t.Run("missing file", func(t *testing.T) {
		rec := upload(t, handler, "/api/reports", "", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unsupported type", func(t *testing.T) {
		rec := upload(t, handler, "/api/reports", "deliveries.pdf", []byte(goodCSV))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"\"deliveries.pdf\" has unsupported file type \".pdf\""}`, rec.Body.String())
	})

	t.Run("missing columns", func(t *testing.T) {
		rec := upload(t, handler, "/api/reports/costs.csv", "deliveries.csv", []byte("Delivery Person ID,Customer ID,Delivery Days\nP1,C1,M\n"))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.JSONEq(t, `{
			"error": "schema: missing required columns: \"Monthly Billing (Estimated)\", \"Weekly Billing (Estimated)\", \"Individual Cost (Estimated)\"",
			"missing_columns": ["Monthly Billing (Estimated)", "Weekly Billing (Estimated)", "Individual Cost (Estimated)"]
		}`, rec.Body.String())
	})
}

func TestUploadTooLarge(t *testing.T) {
	handler := newLimitedHandler(t, 1024)

	large := goodCSV + strings.Repeat("P3,C3,\"M,T,W\",,,$5\n", 100)
	rec := upload(t, handler, "/api/reports", "deliveries.csv", []byte(large))
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.JSONEq(t, `{"error":"upload is too large"}`, rec.Body.String())

	rec = upload(t, handler, "/api/reports", "deliveries.csv", []byte(goodCSV))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
