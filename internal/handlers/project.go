package handlers

import (
	"fmt"
	"strconv"

	"prodtrack/internal/access"
	"prodtrack/internal/apperr"
	"prodtrack/internal/database"
	"prodtrack/internal/models"
	"prodtrack/internal/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	creatorRole       = "Manager"
	creatorDepartment = "Production"
)

type createProjectReq struct {
	Name           string `json:"name"`
	Status         string `json:"status"`
	OrganizationID uint   `json:"organization_id"`
}

// POST /projects
// A manager creates projects in their own organization only and gets a
// role slot in the new project.
func (h *Handler) CreateProject(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	var req createProjectReq
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	name, err := requireName("name", req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !id.IsAdmin() && req.OrganizationID != id.OrganizationID {
		h.fail(c, apperr.Denied("Managers may only create projects in their own organization"))
		return
	}

	project := models.Project{Name: name, Status: req.Status, OrganizationID: req.OrganizationID}
	if project.Status == "" {
		project.Status = models.DefaultProjectStatus
	}
	err = h.mutate(c, func(tx *gorm.DB) error {
		if _, err := database.Find[models.Organization](tx, req.OrganizationID, "Organization"); err != nil {
			return err
		}
		if err := database.Insert(tx, &project, "Project"); err != nil {
			return err
		}
		if !id.IsAdmin() {
			creator, err := database.Find[models.Account](tx, id.AccountID, "Account")
			if err != nil {
				return err
			}
			member := models.ProjectMember{
				DisplayName: creator.DisplayName,
				Department:  creatorDepartment,
				Role:        creatorRole,
				ProjectID:   project.ID,
				AccountID:   &creator.ID,
			}
			if err := database.Insert(tx, &member, "Project member"); err != nil {
				return err
			}
		}
		return audit(tx, id, "project", project.ID, "create", project.Name)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondCreated(c, toProject(&project))
}

// GET /projects
// Admins and managers list their organization (admins may pick another with
// ?organization_id=); everyone else lists the projects they are a member of.
func (h *Handler) ListProjects(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}

	q := h.conn(c).Order("id asc")
	switch {
	case id.SeesOrganizationProjects():
		orgID := id.OrganizationID
		if raw := c.Query("organization_id"); raw != "" && id.IsAdmin() {
			n, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				h.fail(c, apperr.Invalid(apperr.ReasonInvalidField, "invalid organization_id %q", raw))
				return
			}
			orgID = uint(n)
		}
		q = q.Where("organization_id = ?", orgID)
	default:
		ids, err := access.MemberProjectIDs(h.conn(c), id)
		if err != nil {
			h.fail(c, err)
			return
		}
		q = q.Where("id IN ?", ids)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var projects []models.Project
	if err := q.Find(&projects).Error; err != nil {
		h.fail(c, err)
		return
	}
	out := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, toProject(&projects[i]))
	}
	response.RespondOK(c, out)
}

// GET /projects/:id
func (h *Handler) GetProject(c *gin.Context) {
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

	var project models.Project
	err = db.
		Preload("Members", func(q *gorm.DB) *gorm.DB { return q.Order("id asc") }).
		Preload("Members.Account").
		Preload("Shots", func(q *gorm.DB) *gorm.DB { return q.Order("id asc") }).
		Preload("Assets", func(q *gorm.DB) *gorm.DB { return q.Order("id asc") }).
		First(&project, projectID).Error
	if err != nil {
		h.fail(c, err)
		return
	}

	details := ProjectDetails{
		ProjectResponse: toProject(&project),
		Members:         make([]MemberResponse, 0, len(project.Members)),
		Shots:           make([]ShotResponse, 0, len(project.Shots)),
		Assets:          make([]AssetResponse, 0, len(project.Assets)),
	}
	for i := range project.Members {
		details.Members = append(details.Members, toMember(&project.Members[i]))
	}
	for i := range project.Shots {
		details.Shots = append(details.Shots, toShot(&project.Shots[i]))
	}
	for i := range project.Assets {
		details.Assets = append(details.Assets, toAsset(&project.Assets[i]))
	}
	response.RespondOK(c, details)
}

type updateProjectReq struct {
	Name           *string `json:"name"`
	Status         *string `json:"status"`
	OrganizationID *uint   `json:"organization_id"`
}

// PUT /projects/:id
// organization_id is fixed at creation; sending a different value is rejected.
func (h *Handler) UpdateProject(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	projectID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req updateProjectReq
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	var project *models.Project
	err = h.mutate(c, func(tx *gorm.DB) error {
		if err := access.Authorize(tx, id, access.OpProjectUpdate, projectID); err != nil {
			return err
		}
		p, err := database.Find[models.Project](tx, projectID, "Project")
		if err != nil {
			return err
		}
		if req.OrganizationID != nil && *req.OrganizationID != p.OrganizationID {
			return apperr.Invalid(apperr.ReasonImmutableField, "organization_id cannot be changed")
		}
		if req.Name != nil {
			name, err := requireName("name", *req.Name)
			if err != nil {
				return err
			}
			p.Name = name
		}
		if req.Status != nil && *req.Status != "" {
			p.Status = *req.Status
		}
		if err := database.Update(tx, p, "Project"); err != nil {
			return err
		}
		project = p
		return audit(tx, id, "project", p.ID, "update", fmt.Sprintf("name=%s status=%s", p.Name, p.Status))
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, toProject(project))
}

// DELETE /projects/:id
func (h *Handler) DeleteProject(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	projectID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	err = h.mutate(c, func(tx *gorm.DB) error {
		if err := access.Authorize(tx, id, access.OpProjectDelete, projectID); err != nil {
			return err
		}
		if err := database.DeleteProject(tx, projectID); err != nil {
			return err
		}
		return audit(tx, id, "project", projectID, "delete", "")
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondNoContent(c)
}
