package handler

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/Karann1101/sahyadri-guardian/internal/models"
	"github.com/Karann1101/sahyadri-guardian/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler dumps hazard reports for offline review. Admin only.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeader = []string{"ID", "Trail", "Latitude", "Longitude", "Type", "Severity", "Status", "Description", "Reported By", "Reported At"}

func (h *ExportHandler) loadReports() ([]models.HazardReport, map[uint]string, error) {
	var reports []models.HazardReport
	if err := h.DB.Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, nil, fmt.Errorf("load hazard reports: %w", err)
	}

	var trails []models.Trail
	if err := h.DB.Find(&trails).Error; err != nil {
		return nil, nil, fmt.Errorf("load trails: %w", err)
	}
	trailNames := make(map[uint]string, len(trails))
	for _, t := range trails {
		trailNames[t.ID] = t.Name
	}

	return reports, trailNames, nil
}

func exportRow(r *models.HazardReport, trailNames map[uint]string) []string {
	trailName := ""
	if r.TrailID != nil {
		trailName = trailNames[*r.TrailID]
	}
	return []string{
		strconv.FormatUint(uint64(r.ID), 10),
		trailName,
		strconv.FormatFloat(r.Lat, 'f', 6, 64),
		strconv.FormatFloat(r.Lng, 'f', 6, 64),
		r.Type,
		r.Severity,
		r.Status,
		r.Description,
		strconv.FormatUint(uint64(r.ReportedBy), 10),
		r.CreatedAt.Format(time.RFC3339),
	}
}

// ExportCSV streams all hazard reports as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	reports, trailNames, err := h.loadReports()
	if err != nil {
		util.ServerError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"hazards_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)

	if err := writer.Write(exportHeader); err != nil {
		util.ServerError(c, err)
		return
	}
	for i := range reports {
		if err := writer.Write(exportRow(&reports[i], trailNames)); err != nil {
			util.ServerError(c, err)
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		util.ServerError(c, err)
	}
}

// ExportXLSX streams all hazard reports as an Excel workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	reports, trailNames, err := h.loadReports()
	if err != nil {
		util.ServerError(c, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Hazard Reports"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		util.ServerError(c, err)
		return
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for row := range reports {
		values := exportRow(&reports[row], trailNames)
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"hazards_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.ServerError(c, err)
		return
	}
}
