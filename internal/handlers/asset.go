package handlers

import (
	"fmt"

	"prodtrack/internal/access"
	"prodtrack/internal/database"
	"prodtrack/internal/models"
	"prodtrack/internal/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type createAssetReq struct {
	Name      string `json:"name"`
	AssetType string `json:"asset_type"`
	Status    string `json:"status"`
}

type updateAssetReq struct {
	Name      *string `json:"name"`
	AssetType *string `json:"asset_type"`
	Status    *string `json:"status"`
}

// POST /projects/:id/assets
func (h *Handler) CreateAsset(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	projectID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req createAssetReq
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	name, err := requireName("name", req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	assetType, err := requireName("asset_type", req.AssetType)
	if err != nil {
		h.fail(c, err)
		return
	}

	asset := models.Asset{Name: name, AssetType: assetType, Status: req.Status, ProjectID: projectID}
	if asset.Status == "" {
		asset.Status = models.DefaultWorkStatus
	}
	err = h.mutate(c, func(tx *gorm.DB) error {
		if err := access.Authorize(tx, id, access.OpAssetWrite, projectID); err != nil {
			return err
		}
		if err := database.Insert(tx, &asset, "Asset"); err != nil {
			return err
		}
		return audit(tx, id, "asset", asset.ID, "create", asset.Name)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondCreated(c, toAsset(&asset))
}

// GET /projects/:id/assets
func (h *Handler) ListAssets(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	projectID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	db := h.conn(c)
	if err := access.Authorize(db, id, access.OpProjectRead, projectID); err != nil {
		h.fail(c, err)
		return
	}
	q := db.Where("project_id = ?", projectID).Order("name asc")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if assetType := c.Query("asset_type"); assetType != "" {
		q = q.Where("asset_type = ?", assetType)
	}
	var assets []models.Asset
	if err := q.Find(&assets).Error; err != nil {
		h.fail(c, err)
		return
	}
	out := make([]AssetResponse, 0, len(assets))
	for i := range assets {
		out = append(out, toAsset(&assets[i]))
	}
	response.RespondOK(c, out)
}

// GET /assets/:id
func (h *Handler) GetAsset(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	assetID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	db := h.conn(c)
	asset, err := database.Find[models.Asset](db, assetID, "Asset")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := access.Authorize(db, id, access.OpProjectRead, asset.ProjectID); err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, toAsset(asset))
}

// PUT /assets/:id
func (h *Handler) UpdateAsset(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	assetID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req updateAssetReq
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	var asset *models.Asset
	err = h.mutate(c, func(tx *gorm.DB) error {
		a, err := database.Find[models.Asset](tx, assetID, "Asset")
		if err != nil {
			return err
		}
		if err := access.Authorize(tx, id, access.OpAssetWrite, a.ProjectID); err != nil {
			return err
		}
		if req.Name != nil {
			name, err := requireName("name", *req.Name)
			if err != nil {
				return err
			}
			a.Name = name
		}
		if req.AssetType != nil {
			assetType, err := requireName("asset_type", *req.AssetType)
			if err != nil {
				return err
			}
			a.AssetType = assetType
		}
		if req.Status != nil && *req.Status != "" {
			a.Status = *req.Status
		}
		if err := database.Update(tx, a, "Asset"); err != nil {
			return err
		}
		asset = a
		return audit(tx, id, "asset", a.ID, "update", fmt.Sprintf("name=%s type=%s status=%s", a.Name, a.AssetType, a.Status))
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, toAsset(asset))
}

// DELETE /assets/:id
// The asset's tasks go with it; its files stay in the project.
func (h *Handler) DeleteAsset(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	assetID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	err = h.mutate(c, func(tx *gorm.DB) error {
		asset, err := database.Find[models.Asset](tx, assetID, "Asset")
		if err != nil {
			return err
		}
		if err := access.Authorize(tx, id, access.OpAssetWrite, asset.ProjectID); err != nil {
			return err
		}
		if err := database.DeleteAsset(tx, asset.ID); err != nil {
			return err
		}
		return audit(tx, id, "asset", asset.ID, "delete", asset.Name)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondNoContent(c)
}
