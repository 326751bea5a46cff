package middleware

import (
	"errors"
	"strings"

	"prodtrack/internal/access"
	"prodtrack/internal/apperr"
	"prodtrack/internal/auth"
	"prodtrack/internal/logger"
	"prodtrack/internal/models"
	"prodtrack/internal/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Authenticator struct {
	db     *gorm.DB
	tokens *auth.TokenIssuer
	log    *logger.Logger
}

func NewAuthenticator(db *gorm.DB, tokens *auth.TokenIssuer, log *logger.Logger) *Authenticator {
	return &Authenticator{db: db, tokens: tokens, log: log.With("middleware", "auth")}
}

// RequireAuth admits requests carrying a valid bearer token whose subject is
// an existing account, and stores the caller's Identity in the context.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Header("WWW-Authenticate", "Bearer")
			response.RespondError(c, a.log, apperr.Credentials("Not authenticated"))
			return
		}

		claims, err := a.tokens.Parse(token)
		if err != nil {
			a.log.Debug("rejected token", "error", err)
			c.Header("WWW-Authenticate", "Bearer")
			response.RespondError(c, a.log, apperr.Credentials("Could not validate credentials"))
			return
		}

		var account models.Account
		if err := a.db.Where("account_name = ?", claims.Subject).First(&account).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				response.RespondError(c, a.log, err)
				return
			}
			c.Header("WWW-Authenticate", "Bearer")
			response.RespondError(c, a.log, apperr.Credentials("Could not validate credentials"))
			return
		}

		SetIdentity(c, access.FromAccount(&account))
		c.Next()
	}
}

// RequireRole rejects callers whose account type may not perform op.
// It must run after RequireAuth.
func RequireRole(op access.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if !ok {
			response.RespondError(c, nil, apperr.Credentials("Not authenticated"))
			return
		}
		if err := access.CheckRole(id, op); err != nil {
			response.RespondError(c, nil, err)
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
