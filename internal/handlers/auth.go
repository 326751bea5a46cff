package handlers

import (
	"errors"
	"strings"

	"prodtrack/internal/apperr"
	"prodtrack/internal/auth"
	"prodtrack/internal/models"
	"prodtrack/internal/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type loginForm struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// POST /token
// Accepts the OAuth2 password form or the same fields as JSON.
func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		h.fail(c, apperr.Invalid(apperr.ReasonInvalidField, "invalid login request: %v", err))
		return
	}
	form.Username = strings.TrimSpace(form.Username)

	var account models.Account
	err := h.conn(c).Where("account_name = ?", form.Username).First(&account).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		h.fail(c, err)
		return
	}
	if err != nil || !auth.VerifyPassword(form.Password, account.HashedPassword) {
		h.log.Info("login failed", "account_name", form.Username)
		c.Header("WWW-Authenticate", "Bearer")
		h.fail(c, apperr.Credentials("Incorrect username or password"))
		return
	}

	token, err := h.tokens.Issue(account.ID, account.AccountName)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.log.Debug("login ok", "account_id", account.ID)
	response.RespondOK(c, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(h.tokens.TTL().Seconds()),
	})
}
