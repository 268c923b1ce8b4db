package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"riskassess/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestHistoryHandler_EmptyHistory(t *testing.T) {
	env := setupTestEnv(t, 0.62)
	client := env.client(t)

	for _, path := range []string{
		"/api/v1/history",
		"/api/v1/history/export/csv",
		"/api/v1/history/export/excel",
		"/api/v1/history/export/json",
	} {
		w := client.do("GET", path, "")
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json", path)
		assert.Empty(t, w.Header().Get("Content-Disposition"), path)

		var resp Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), path)
		assert.Equal(t, MessageNoHistory, resp.Message, path)
	}
}

func TestHistoryHandler_ListOrder(t *testing.T) {
	env := setupTestEnv(t, 0.62)
	client := env.client(t)

	client.do("POST", "/api/v1/evaluate", `{"name":"A","glucose":100,"blood_pressure":70,"weight":70,"height_cm":170,"age":30}`)
	client.do("POST", "/api/v1/evaluate", `{"name":"B","glucose":150,"blood_pressure":70,"weight":70,"height_cm":170,"age":30}`)

	w := client.do("GET", "/api/v1/history", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data HistoryData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Data.Total)
	assert.Equal(t, "A", resp.Data.Records[0].Name)
	assert.Equal(t, "B", resp.Data.Records[1].Name)
	assert.Equal(t, 2, resp.Data.Records[1].Seq)
}

func TestHistoryHandler_ExportCSV(t *testing.T) {
	env := setupTestEnv(t, 0.62)
	client := env.client(t)
	client.do("POST", "/api/v1/evaluate", validBody)

	w := client.do("GET", "/api/v1/history/export/csv", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, service.UTF8BOM))

	records, err := service.ParseHistoryCSV(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.InDelta(t, 62.0, records[0].ProbabilityPositive, 1e-9)
	assert.True(t, records[0].PredictedPositive)
}

func TestHistoryHandler_ExportExcel(t *testing.T) {
	env := setupTestEnv(t, 0.62)
	client := env.client(t)
	client.do("POST", "/api/v1/evaluate", validBody)

	w := client.do("GET", "/api/v1/history/export/excel", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("History")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestHistoryHandler_ExportJSON(t *testing.T) {
	env := setupTestEnv(t, 0.2)
	client := env.client(t)
	client.do("POST", "/api/v1/evaluate", validBody)

	w := client.do("GET", "/api/v1/history/export/json", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".json")

	var resp struct {
		Data HistoryData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Records, 1)
	assert.False(t, resp.Data.Records[0].PredictedPositive)
}

func TestHistoryHandler_SessionsAreIsolated(t *testing.T) {
	env := setupTestEnv(t, 0.62)
	first := env.client(t)
	second := env.client(t)

	first.do("POST", "/api/v1/evaluate", validBody)

	w := second.do("GET", "/api/v1/history", "")
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, MessageNoHistory, resp.Message)
	assert.Equal(t, 2, env.manager.Len())
}
