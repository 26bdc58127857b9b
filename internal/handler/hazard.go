package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Karann1101/sahyadri-guardian/internal/middleware"
	"github.com/Karann1101/sahyadri-guardian/internal/models"
	"github.com/Karann1101/sahyadri-guardian/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HazardHandler serves hazard report submission, listing and moderation.
type HazardHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewHazardHandler(db *gorm.DB, pageSize int) *HazardHandler {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &HazardHandler{
		DB:       db,
		PageSize: pageSize,
	}
}

// ---------- request/response shapes ----------

type createHazardReq struct {
	TrailID     *uint   `json:"trailId"`
	Lat         float64 `json:"lat" binding:"required"`
	Lng         float64 `json:"lng" binding:"required"`
	Type        string  `json:"type" binding:"required,oneof=landslide slippery_rock fallen_tree flooding wildlife other"`
	Severity    string  `json:"severity" binding:"required,oneof=low moderate high extreme"`
	Description string  `json:"description" binding:"max=1024"`
}

type updateHazardStatusReq struct {
	Status string `json:"status" binding:"required,oneof=pending verified resolved rejected"`
}

type hazardResp struct {
	ID          uint      `json:"id"`
	TrailID     *uint     `json:"trailId,omitempty"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Type        string    `json:"type"`
	Severity    string    `json:"severity"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	ReportedBy  uint      `json:"reportedBy"`
	ReportedAt  time.Time `json:"reportedAt"`
}

func toHazardResp(h *models.HazardReport) hazardResp {
	return hazardResp{
		ID:          h.ID,
		TrailID:     h.TrailID,
		Lat:         h.Lat,
		Lng:         h.Lng,
		Type:        h.Type,
		Severity:    h.Severity,
		Description: h.Description,
		Status:      h.Status,
		ReportedBy:  h.ReportedBy,
		ReportedAt:  h.CreatedAt,
	}
}

// ---------- submission ----------

// CreateHazard stores a new report. New reports always start as pending;
// only an admin moves them further.
func (h *HazardHandler) CreateHazard(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "No token provided")
		return
	}

	var req createHazardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid hazard report")
		return
	}

	if err := util.ValidateCoordinates(req.Lat, req.Lng); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.TrailID != nil {
		var trail models.Trail
		if err := h.DB.First(&trail, *req.TrailID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				util.Error(c, http.StatusBadRequest, "Unknown trail")
			} else {
				util.ServerError(c, err)
			}
			return
		}
	}

	report := models.HazardReport{
		TrailID:     req.TrailID,
		Lat:         req.Lat,
		Lng:         req.Lng,
		Type:        req.Type,
		Severity:    req.Severity,
		Description: strings.TrimSpace(req.Description),
		Status:      models.StatusPending,
		ReportedBy:  user.ID,
	}
	if err := h.DB.Create(&report).Error; err != nil {
		util.ServerError(c, err)
		return
	}

	util.Created(c, util.Response{
		"hazard": toHazardResp(&report),
	})
}

// ---------- listing ----------

// ListHazards returns reports with optional trail/type/severity/status
// filters and pagination. Public: trekkers check hazards before signing up.
func (h *HazardHandler) ListHazards(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(h.PageSize)))
	if size <= 0 {
		size = h.PageSize
	}
	if size > 100 {
		size = 100
	}
	offset := (page - 1) * size

	q := h.DB.Model(&models.HazardReport{})

	if trailIDStr := c.Query("trail_id"); trailIDStr != "" {
		trailID, err := strconv.Atoi(trailIDStr)
		if err != nil || trailID <= 0 {
			util.Error(c, http.StatusBadRequest, "Invalid trail_id")
			return
		}
		q = q.Where("trail_id = ?", trailID)
	}
	if hazardType := c.Query("type"); hazardType != "" {
		q = q.Where("type = ?", hazardType)
	}
	if severity := c.Query("severity"); severity != "" {
		q = q.Where("severity = ?", severity)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		util.ServerError(c, err)
		return
	}

	var reports []models.HazardReport
	if err := q.Order("created_at DESC").
		Limit(size).
		Offset(offset).
		Find(&reports).Error; err != nil {
		util.ServerError(c, err)
		return
	}

	items := make([]hazardResp, 0, len(reports))
	for i := range reports {
		items = append(items, toHazardResp(&reports[i]))
	}

	util.Success(c, util.Response{
		"hazards":   items,
		"total":     total,
		"page":      page,
		"page_size": size,
	})
}

// ---------- moderation ----------

// UpdateStatus moves a report through the moderation states. Admin only
// (enforced by the route group).
func (h *HazardHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "Invalid hazard id")
		return
	}

	var req updateHazardStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid status")
		return
	}

	var report models.HazardReport
	if err := h.DB.First(&report, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "Hazard report not found")
		} else {
			util.ServerError(c, err)
		}
		return
	}

	if err := h.DB.Model(&report).Update("status", req.Status).Error; err != nil {
		util.ServerError(c, err)
		return
	}
	report.Status = req.Status

	util.Success(c, util.Response{
		"hazard": toHazardResp(&report),
	})
}

// DeleteHazard removes a report entirely. Admin only.
func (h *HazardHandler) DeleteHazard(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "Invalid hazard id")
		return
	}

	res := h.DB.Delete(&models.HazardReport{}, id)
	if res.Error != nil {
		util.ServerError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, "Hazard report not found")
		return
	}

	util.Success(c, util.Response{
		"message": "Hazard report deleted",
	})
}
