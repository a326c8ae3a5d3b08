package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/toraif/torwar/pkg/diff"
	"github.com/toraif/torwar/pkg/logger"
	"github.com/toraif/torwar/pkg/review"
	"github.com/toraif/torwar/pkg/store"
)

// ReportHandler exposes the report store and differ over HTTP.
type ReportHandler struct {
	store *store.Store
	log   *logger.Logger
}

func NewReportHandler(s *store.Store, log *logger.Logger) *ReportHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ReportHandler{store: s, log: log}
}

// saveRequest is the POST /api/reports body.
type saveRequest struct {
	WorkloadID   string             `json:"workload_id" binding:"required"`
	WorkloadName string             `json:"workload_name" binding:"required"`
	CustomName   string             `json:"custom_name"`
	UserNotes    string             `json:"user_notes"`
	ReportData   *review.ReportTree `json:"report_data" binding:"required"`
}

func (h *ReportHandler) SaveReport(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reportID, err := h.store.Save(req.WorkloadID, req.WorkloadName, req.ReportData, req.UserNotes, req.CustomName)
	if err != nil {
		h.log.Error("save report failed", "workload_id", req.WorkloadID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save report"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"report_id": reportID})
}

func (h *ReportHandler) ListReports(c *gin.Context) {
	reports, err := h.store.List(c.Query("workload_id"))
	if err != nil {
		h.log.Error("list reports failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
		return
	}
	if reports == nil {
		reports = []store.Metadata{}
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func (h *ReportHandler) GetReport(c *gin.Context) {
	record, err := h.store.Get(c.Param("id"))
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
	case err != nil:
		h.log.Error("get report failed", "report_id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load report"})
	default:
		c.JSON(http.StatusOK, record)
	}
}

func (h *ReportHandler) DeleteReport(c *gin.Context) {
	deleted, err := h.store.Delete(c.Param("id"))
	if err != nil {
		h.log.Error("delete report failed", "report_id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete report"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *ReportHandler) WorkloadVersions(c *gin.Context) {
	versions, err := h.store.WorkloadVersions(c.Param("id"))
	if err != nil {
		h.log.Error("list workload versions failed", "workload_id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list versions"})
		return
	}
	if versions == nil {
		versions = []store.Metadata{}
	}
	c.JSON(http.StatusOK, gin.H{"versions": versions})
}

func (h *ReportHandler) CompareReports(c *gin.Context) {
	id1 := c.Query("report1")
	id2 := c.Query("report2")
	if err := diff.ValidateComparePair(id1, id2); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec1 := h.getForCompare(c, id1)
	if rec1 == nil {
		return
	}
	rec2 := h.getForCompare(c, id2)
	if rec2 == nil {
		return
	}

	cmp, err := diff.CompareRecords(rec1, rec2)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cmp)
}

// getForCompare loads one side of a comparison, writing the error response
// itself. A nil result means the response is already committed.
func (h *ReportHandler) getForCompare(c *gin.Context, reportID string) *store.Record {
	record, err := h.store.Get(reportID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "report " + reportID + " not found"})
		return nil
	case err != nil:
		h.log.Error("load report for comparison failed", "report_id", reportID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load report " + reportID})
		return nil
	}
	return record
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
