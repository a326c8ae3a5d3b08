package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toraif/torwar/pkg/review"
	"github.com/toraif/torwar/pkg/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s := store.New(t.TempDir(), nil)
	router := NewRouter(RouterConfig{ReportHandler: NewReportHandler(s, nil)})
	return router, s
}

func sampleTree(risk review.RiskLevel, choices ...string) *review.ReportTree {
	return &review.ReportTree{
		Workload: review.Workload{WorkloadID: "w1", WorkloadName: "Demo"},
		Pillars: map[string]review.PillarSection{
			"security": {
				Name: "Security",
				Questions: []review.QuestionAnswer{
					{
						QuestionID:      "sec_q1",
						QuestionTitle:   "How do you protect your root user?",
						SelectedChoices: choices,
						Risk:            risk,
						IsApplicable:    true,
					},
				},
			},
		},
		GeneratedAt: time.Now().UTC(),
	}
}

func saveViaAPI(t *testing.T, router *gin.Engine, tree *review.ReportTree) string {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"workload_id":   "w1",
		"workload_name": "Demo",
		"custom_name":   "Baseline",
		"user_notes":    "notes",
		"report_data":   tree,
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reports", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["report_id"])
	return resp["report_id"]
}

func TestHealthCheck(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSaveAndGetReport(t *testing.T) {
	router, _ := newTestRouter(t)
	reportID := saveViaAPI(t, router, sampleTree(review.RiskHigh, "c1"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/reports/"+reportID, nil))

	require.Equal(t, http.StatusOK, w.Code)
	var record store.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, reportID, record.Metadata.ReportID)
	assert.Equal(t, "Baseline", record.Metadata.CustomName)
	assert.Equal(t, 1, record.Metadata.Summary.HighRisks)
}

func TestSaveValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reports", bytes.NewReader([]byte(`{"workload_id":"w1"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListReports(t *testing.T) {
	router, _ := newTestRouter(t)
	saveViaAPI(t, router, sampleTree(review.RiskHigh, "c1"))
	saveViaAPI(t, router, sampleTree(review.RiskLow, "c1"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/reports?workload_id=w1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Reports []store.Metadata `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Reports, 2)

	// Unknown workload yields an empty list, not an error.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/reports?workload_id=absent", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Reports)
}

func TestGetReportNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/reports/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteReport(t *testing.T) {
	router, _ := newTestRouter(t)
	reportID := saveViaAPI(t, router, sampleTree(review.RiskHigh, "c1"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/reports/"+reportID, nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// Second delete reports not found.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/reports/"+reportID, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWorkloadVersions(t *testing.T) {
	router, _ := newTestRouter(t)
	saveViaAPI(t, router, sampleTree(review.RiskHigh, "c1"))
	saveViaAPI(t, router, sampleTree(review.RiskLow, "c1"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/workloads/w1/versions", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Versions []store.Metadata `json:"versions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Versions, 2)
	assert.Equal(t, 1, resp.Versions[0].Version)
	assert.Equal(t, 2, resp.Versions[1].Version)
}

func TestCompareReports(t *testing.T) {
	router, _ := newTestRouter(t)
	id1 := saveViaAPI(t, router, sampleTree(review.RiskHigh, "c1"))
	id2 := saveViaAPI(t, router, sampleTree(review.RiskLow, "c1", "c2"))

	w := httptest.NewRecorder()
	url := fmt.Sprintf("/api/compare?report1=%s&report2=%s", id1, id2)
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var cmp struct {
		Summary struct {
			HighRiskChange     int `json:"high_risk_change"`
			LowRiskChange      int `json:"low_risk_change"`
			OverallImprovement int `json:"overall_improvement"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cmp))
	assert.Equal(t, -1, cmp.Summary.HighRiskChange)
	assert.Equal(t, 1, cmp.Summary.LowRiskChange)
	assert.Equal(t, 1, cmp.Summary.OverallImprovement)
}

func TestCompareValidation(t *testing.T) {
	router, _ := newTestRouter(t)
	id1 := saveViaAPI(t, router, sampleTree(review.RiskHigh, "c1"))

	// Same id twice.
	w := httptest.NewRecorder()
	url := fmt.Sprintf("/api/compare?report1=%s&report2=%s", id1, id1)
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing second id.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/compare?report1="+id1, nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown second id.
	w = httptest.NewRecorder()
	url = fmt.Sprintf("/api/compare?report1=%s&report2=missing", id1)
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
