package handlers

import (
	"strconv"
	"strings"
	"time"

	"prodtrack/internal/access"
	"prodtrack/internal/apperr"
	"prodtrack/internal/auth"
	"prodtrack/internal/database"
	"prodtrack/internal/logger"
	"prodtrack/internal/middleware"
	"prodtrack/internal/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Handler serves every REST endpoint. Each mutation runs in one transaction
// that also carries its audit row.
type Handler struct {
	db     *gorm.DB
	tokens *auth.TokenIssuer
	log    *logger.Logger
}

func New(db *gorm.DB, tokens *auth.TokenIssuer, log *logger.Logger) *Handler {
	return &Handler{db: db, tokens: tokens, log: log.With("component", "handlers")}
}

func (h *Handler) fail(c *gin.Context, err error) {
	response.RespondError(c, h.log, err)
}

// caller returns the authenticated identity, answering 401 when there is none.
func (h *Handler) caller(c *gin.Context) (access.Identity, bool) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		h.fail(c, apperr.Credentials("Not authenticated"))
	}
	return id, ok
}

func (h *Handler) conn(c *gin.Context) *gorm.DB {
	return h.db.WithContext(c.Request.Context())
}

// mutate runs fn in a transaction; any error rolls back every write, audit included.
func (h *Handler) mutate(c *gin.Context, fn func(tx *gorm.DB) error) error {
	return h.conn(c).Transaction(fn)
}

// audit writes the audit row for a mutation inside tx.
func audit(tx *gorm.DB, id access.Identity, entity string, entityID uint, action, details string) error {
	return database.WriteAudit(tx, id.AccountID, entity, entityID, action, details)
}

func idParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, apperr.Invalid(apperr.ReasonInvalidField, "invalid %s %q", name, raw)
	}
	return uint(n), nil
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperr.Invalid(apperr.ReasonInvalidField, "invalid request body: %v", err)
	}
	return nil
}

// requireName trims v and rejects it when empty.
func requireName(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", apperr.Invalid(apperr.ReasonInvalidField, "%s must not be empty", field)
	}
	return v, nil
}

func parseDate(field string, v *string) (*time.Time, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(*v))
	if err != nil {
		return nil, apperr.Invalid(apperr.ReasonInvalidField, "%s must be a date in YYYY-MM-DD form", field)
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// optionalID maps 0 to nil so "clear the link" and "not linked" look the same.
func optionalID(v *uint) *uint {
	if v == nil || *v == 0 {
		return nil
	}
	id := *v
	return &id
}
