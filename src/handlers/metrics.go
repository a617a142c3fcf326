package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/heart-risk-dashboard/src/reports"
	"github.com/khabaroff/heart-risk-dashboard/src/services"
)

// ReportHandler serves aggregate metrics, the chart and per-prediction PDFs
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// HandleMetrics returns the prediction counts by verdict
func (rh *ReportHandler) HandleMetrics(c *gin.Context) {
	counts, err := rh.reportService.AggregateCounts(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to count predictions")
		return
	}

	body := gin.H{
		"low_risk":  counts.LowRisk,
		"high_risk": counts.HighRisk,
		"total":     counts.Total(),
	}
	if counts.Total() == 0 {
		body["info"] = infoNoPredictions
	}
	c.JSON(http.StatusOK, body)
}

// HandleChart renders the risk distribution as PNG
func (rh *ReportHandler) HandleChart(c *gin.Context) {
	data, err := rh.reportService.RenderChart(c.Request.Context())
	if err != nil {
		if errors.Is(err, reports.ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{"info": infoNoPredictions})
			return
		}
		respondError(c, err, "failed to render chart")
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", data)
}

// HandleReport downloads the PDF summary of one prediction
func (rh *ReportHandler) HandleReport(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid prediction id"})
		return
	}

	filename, data, err := rh.reportService.PredictionReport(c.Request.Context(), id, sess.Username)
	if err != nil {
		respondError(c, err, "failed to render report")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
