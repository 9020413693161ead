package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"spendtrack/internal/services"
)

// ReportHandler handles report and chart requests.
type ReportHandler struct {
	reportService services.ReportServicer
	chartService  services.ChartServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer, chartService services.ChartServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService, chartService: chartService}
}

// GetMonthlyReport handles generating a monthly spend report.
// @Summary     Generate monthly report
// @Description Generate a downloadable CSV report for one calendar month
// @Tags        reports
// @Produce     text/csv
// @Security    BearerAuth
// @Param       year  path int true "Report year"
// @Param       month path int true "Report month (1-12)"
// @Success     200 {file} file "CSV report"
// @Failure     400 {object} ErrorResponse "Invalid month or year"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Report generation failed"
// @Router      /reports/monthly/{year}/{month} [get]
func (h *ReportHandler) GetMonthlyReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := parsePathInt(c, "year")
	if err != nil {
		respondWithError(c, err)
		return
	}
	month, err := parsePathInt(c, "month")
	if err != nil {
		respondWithError(c, err)
		return
	}

	artifact, err := h.reportService.GenerateMonthlyReport(userID, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filename := fmt.Sprintf("monthly-report-%d-%d.csv", month, year)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", artifact)
}

// GetYearlyReport handles generating a yearly spend report.
// @Summary     Generate yearly report
// @Description Generate a downloadable CSV report for one calendar year
// @Tags        reports
// @Produce     text/csv
// @Security    BearerAuth
// @Param       year path int true "Report year"
// @Success     200 {file} file "CSV report"
// @Failure     400 {object} ErrorResponse "Invalid year"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Report generation failed"
// @Router      /reports/yearly/{year} [get]
func (h *ReportHandler) GetYearlyReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := parsePathInt(c, "year")
	if err != nil {
		respondWithError(c, err)
		return
	}

	artifact, err := h.reportService.GenerateYearlyReport(userID, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filename := fmt.Sprintf("yearly-report-%d.csv", year)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", artifact)
}

// GetPieChart handles rendering a pie chart of spend by category.
// @Summary     Get expense pie chart
// @Description Render a PNG pie chart of spend by category between two dates (inclusive)
// @Tags        reports
// @Produce     image/png
// @Security    BearerAuth
// @Param       start query string true "Range start (YYYY-MM-DD)"
// @Param       end   query string true "Range end (YYYY-MM-DD)"
// @Success     200 {file} file "PNG chart"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No expenses in the period"
// @Failure     500 {object} ErrorResponse "Chart rendering failed"
// @Router      /reports/chart/pie [get]
func (h *ReportHandler) GetPieChart(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	start, end, err := parseDateRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	img, err := h.chartService.ExpensePieChart(userID, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", img)
}

// GetExpensesByCategory handles returning the raw category breakdown.
// @Summary     Get spend by category
// @Description Get the per-category spend totals between two dates (inclusive)
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       start query string true "Range start (YYYY-MM-DD)"
// @Param       end   query string true "Range end (YYYY-MM-DD)"
// @Success     200 {object} map[string]string "Breakdown"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/expenses-by-category [get]
func (h *ReportHandler) GetExpensesByCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	start, end, err := parseDateRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	breakdown, err := h.chartService.ExpensesByCategory(userID, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"breakdown": breakdown})
}
