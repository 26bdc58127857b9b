package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Karann1101/sahyadri-guardian/internal/models"
	"github.com/Karann1101/sahyadri-guardian/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TrailHandler serves the read-only fort trek catalog.
type TrailHandler struct {
	DB *gorm.DB
}

func NewTrailHandler(db *gorm.DB) *TrailHandler {
	return &TrailHandler{DB: db}
}

type trailResp struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	FortName   string  `json:"fortName"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	ElevationM int     `json:"elevation"`
	DistanceKm float64 `json:"distance"`
	Difficulty string  `json:"difficulty"`
	Terrain    string  `json:"terrain"`
}

func toTrailResp(t *models.Trail) trailResp {
	return trailResp{
		ID:         t.ID,
		Name:       t.Name,
		FortName:   t.FortName,
		Lat:        t.Lat,
		Lng:        t.Lng,
		ElevationM: t.ElevationM,
		DistanceKm: t.DistanceKm,
		Difficulty: t.Difficulty,
		Terrain:    t.Terrain,
	}
}

// ListTrails returns all catalog entries.
func (h *TrailHandler) ListTrails(c *gin.Context) {
	var trails []models.Trail
	if err := h.DB.Order("name ASC").Find(&trails).Error; err != nil {
		util.ServerError(c, err)
		return
	}

	items := make([]trailResp, 0, len(trails))
	for i := range trails {
		items = append(items, toTrailResp(&trails[i]))
	}

	util.Success(c, util.Response{
		"trails": items,
	})
}

// GetTrail returns a single catalog entry.
func (h *TrailHandler) GetTrail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "Invalid trail id")
		return
	}

	var trail models.Trail
	if err := h.DB.First(&trail, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "Trail not found")
		} else {
			util.ServerError(c, err)
		}
		return
	}

	util.Success(c, util.Response{
		"trail": toTrailResp(&trail),
	})
}
