package handlers

import (
	"strings"

	"prodtrack/internal/database"
	"prodtrack/internal/models"
	"prodtrack/internal/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type createStorageLocationReq struct {
	Name         string `json:"name"`
	LocationType string `json:"location_type"`
	BasePath     string `json:"base_path"`
	IsActive     *bool  `json:"is_active"`
}

// POST /storage-locations
func (h *Handler) CreateStorageLocation(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	var req createStorageLocationReq
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	name, err := requireName("name", req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	locationType, err := requireName("location_type", req.LocationType)
	if err != nil {
		h.fail(c, err)
		return
	}

	loc := models.StorageLocation{
		Name:         name,
		LocationType: locationType,
		BasePath:     strings.TrimSpace(req.BasePath),
		IsActive:     true,
	}
	if req.IsActive != nil {
		loc.IsActive = *req.IsActive
	}
	err = h.mutate(c, func(tx *gorm.DB) error {
		if err := database.EnsureUnique(tx, &models.StorageLocation{}, "name", name, 0, "Storage location"); err != nil {
			return err
		}
		if err := database.Insert(tx, &loc, "Storage location"); err != nil {
			return err
		}
		return audit(tx, id, "storage_location", loc.ID, "create", loc.Name+" "+loc.BasePath)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondCreated(c, toStorageLocation(&loc))
}

// GET /storage-locations
// ?active=true lists only locations that accept new files.
func (h *Handler) ListStorageLocations(c *gin.Context) {
	q := h.conn(c).Order("name asc")
	if c.Query("active") == "true" {
		q = q.Where("is_active = ?", true)
	}
	var locs []models.StorageLocation
	if err := q.Find(&locs).Error; err != nil {
		h.fail(c, err)
		return
	}
	out := make([]StorageLocationResponse, 0, len(locs))
	for i := range locs {
		out = append(out, toStorageLocation(&locs[i]))
	}
	response.RespondOK(c, out)
}
