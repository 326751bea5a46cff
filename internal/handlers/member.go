package handlers

import (
	"strings"

	"prodtrack/internal/access"
	"prodtrack/internal/database"
	"prodtrack/internal/models"
	"prodtrack/internal/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type createMemberReq struct {
	DisplayName string `json:"display_name"`
	Department  string `json:"department"`
	Role        string `json:"role"`
	AccountID   *uint  `json:"account_id"`
}

// POST /projects/:id/members
func (h *Handler) CreateMember(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	projectID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req createMemberReq
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	displayName, err := requireName("display_name", req.DisplayName)
	if err != nil {
		h.fail(c, err)
		return
	}

	member := models.ProjectMember{
		DisplayName: displayName,
		Department:  strings.TrimSpace(req.Department),
		Role:        strings.TrimSpace(req.Role),
		ProjectID:   projectID,
		AccountID:   optionalID(req.AccountID),
	}
	if member.Department == "" {
		member.Department = models.DefaultMemberDepartment
	}
	if member.Role == "" {
		member.Role = models.DefaultMemberRole
	}

	err = h.mutate(c, func(tx *gorm.DB) error {
		if err := access.Authorize(tx, id, access.OpMemberWrite, projectID); err != nil {
			return err
		}
		if member.AccountID != nil {
			acc, err := database.Find[models.Account](tx, *member.AccountID, "Account")
			if err != nil {
				return err
			}
			member.Account = acc
		}
		if err := database.Insert(tx, &member, "Project member"); err != nil {
			return err
		}
		return audit(tx, id, "project_member", member.ID, "create", member.DisplayName+" as "+member.Role)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondCreated(c, toMember(&member))
}

// GET /projects/:id/members
func (h *Handler) ListMembers(c *gin.Context) {
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
	var members []models.ProjectMember
	if err := db.Preload("Account").Where("project_id = ?", projectID).Order("id asc").Find(&members).Error; err != nil {
		h.fail(c, err)
		return
	}
	out := make([]MemberResponse, 0, len(members))
	for i := range members {
		out = append(out, toMember(&members[i]))
	}
	response.RespondOK(c, out)
}

// DELETE /members/:id
// Tasks assigned to the member stay and become unassigned.
func (h *Handler) DeleteMember(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	memberID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	err = h.mutate(c, func(tx *gorm.DB) error {
		member, err := database.Find[models.ProjectMember](tx, memberID, "Project member")
		if err != nil {
			return err
		}
		if err := access.Authorize(tx, id, access.OpMemberWrite, member.ProjectID); err != nil {
			return err
		}
		if err := database.DeleteMember(tx, member.ID); err != nil {
			return err
		}
		return audit(tx, id, "project_member", member.ID, "delete", member.DisplayName)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondNoContent(c)
}
