package handlers

import (
	"strconv"

	"prodtrack/internal/apperr"
	"prodtrack/internal/models"
	"prodtrack/internal/response"

	"github.com/gin-gonic/gin"
)

const auditPageSize = 200

// GET /audit
// Newest first. Optional filters: ?entity=, ?account_id=.
func (h *Handler) ListAuditLogs(c *gin.Context) {
	q := h.conn(c).
		Preload("Account").
		Order("created_at desc").
		Order("id desc").
		Limit(auditPageSize)

	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if raw := c.Query("account_id"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			h.fail(c, apperr.Invalid(apperr.ReasonInvalidField, "invalid account_id %q", raw))
			return
		}
		q = q.Where("account_id = ?", n)
	}

	var logs []models.AuditLog
	if err := q.Find(&logs).Error; err != nil {
		h.fail(c, err)
		return
	}
	out := make([]AuditLogResponse, 0, len(logs))
	for i := range logs {
		out = append(out, toAuditLog(&logs[i]))
	}
	response.RespondOK(c, out)
}
