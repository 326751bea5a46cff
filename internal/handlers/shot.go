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

type createShotReq struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

type updateShotReq struct {
	Name   *string `json:"name"`
	Status *string `json:"status"`
}

// POST /projects/:id/shots
func (h *Handler) CreateShot(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	projectID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req createShotReq
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	name, err := requireName("name", req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}

	shot := models.Shot{Name: name, Status: req.Status, ProjectID: projectID}
	if shot.Status == "" {
		shot.Status = models.DefaultWorkStatus
	}
	err = h.mutate(c, func(tx *gorm.DB) error {
		if err := access.Authorize(tx, id, access.OpShotWrite, projectID); err != nil {
			return err
		}
		if err := database.Insert(tx, &shot, "Shot"); err != nil {
			return err
		}
		return audit(tx, id, "shot", shot.ID, "create", shot.Name)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondCreated(c, toShot(&shot))
}

// GET /projects/:id/shots
func (h *Handler) ListShots(c *gin.Context) {
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
	var shots []models.Shot
	if err := q.Find(&shots).Error; err != nil {
		h.fail(c, err)
		return
	}
	out := make([]ShotResponse, 0, len(shots))
	for i := range shots {
		out = append(out, toShot(&shots[i]))
	}
	response.RespondOK(c, out)
}

// GET /shots/:id
func (h *Handler) GetShot(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	shotID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	db := h.conn(c)
	shot, err := database.Find[models.Shot](db, shotID, "Shot")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := access.Authorize(db, id, access.OpProjectRead, shot.ProjectID); err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, toShot(shot))
}

// PUT /shots/:id
func (h *Handler) UpdateShot(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	shotID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req updateShotReq
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	var shot *models.Shot
	err = h.mutate(c, func(tx *gorm.DB) error {
		s, err := database.Find[models.Shot](tx, shotID, "Shot")
		if err != nil {
			return err
		}
		if err := access.Authorize(tx, id, access.OpShotWrite, s.ProjectID); err != nil {
			return err
		}
		if req.Name != nil {
			name, err := requireName("name", *req.Name)
			if err != nil {
				return err
			}
			s.Name = name
		}
		if req.Status != nil && *req.Status != "" {
			s.Status = *req.Status
		}
		if err := database.Update(tx, s, "Shot"); err != nil {
			return err
		}
		shot = s
		return audit(tx, id, "shot", s.ID, "update", fmt.Sprintf("name=%s status=%s", s.Name, s.Status))
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, toShot(shot))
}

// DELETE /shots/:id
// The shot's tasks go with it; its files stay in the project.
func (h *Handler) DeleteShot(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	shotID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	err = h.mutate(c, func(tx *gorm.DB) error {
		shot, err := database.Find[models.Shot](tx, shotID, "Shot")
		if err != nil {
			return err
		}
		if err := access.Authorize(tx, id, access.OpShotWrite, shot.ProjectID); err != nil {
			return err
		}
		if err := database.DeleteShot(tx, shot.ID); err != nil {
			return err
		}
		return audit(tx, id, "shot", shot.ID, "delete", shot.Name)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondNoContent(c)
}
