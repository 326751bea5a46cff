package handlers

import (
	"prodtrack/internal/database"
	"prodtrack/internal/models"
	"prodtrack/internal/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type createOrganizationReq struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// POST /organizations
func (h *Handler) CreateOrganization(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	var req createOrganizationReq
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	name, err := requireName("name", req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}

	org := models.Organization{Name: name, Status: req.Status}
	if org.Status == "" {
		org.Status = "active"
	}
	err = h.mutate(c, func(tx *gorm.DB) error {
		if err := database.EnsureUnique(tx, &models.Organization{}, "name", name, 0, "Organization"); err != nil {
			return err
		}
		if err := database.Insert(tx, &org, "Organization"); err != nil {
			return err
		}
		return audit(tx, id, "organization", org.ID, "create", org.Name)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondCreated(c, toOrganization(&org))
}

// GET /organizations
func (h *Handler) ListOrganizations(c *gin.Context) {
	var orgs []models.Organization
	if err := h.conn(c).Order("name asc").Find(&orgs).Error; err != nil {
		h.fail(c, err)
		return
	}
	out := make([]OrganizationResponse, 0, len(orgs))
	for i := range orgs {
		out = append(out, toOrganization(&orgs[i]))
	}
	response.RespondOK(c, out)
}

// GET /organizations/:id
func (h *Handler) GetOrganization(c *gin.Context) {
	orgID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	org, err := database.Find[models.Organization](h.conn(c), orgID, "Organization")
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, toOrganization(org))
}
