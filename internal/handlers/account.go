package handlers

import (
	"strings"

	"prodtrack/internal/apperr"
	"prodtrack/internal/auth"
	"prodtrack/internal/database"
	"prodtrack/internal/models"
	"prodtrack/internal/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	minAccountNameLen = 3
	minPasswordLen    = 6
)

type createAccountReq struct {
	AccountName    string `json:"account_name"`
	DisplayName    string `json:"display_name"`
	Password       string `json:"password"`
	AccountType    string `json:"account_type"`
	OrganizationID uint   `json:"organization_id"`
}

// POST /accounts
func (h *Handler) CreateAccount(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	var req createAccountReq
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	req.AccountName = strings.TrimSpace(req.AccountName)
	if len(req.AccountName) < minAccountNameLen || len(req.Password) < minPasswordLen {
		h.fail(c, apperr.Invalid(apperr.ReasonInvalidField,
			"account_name needs at least %d characters and password at least %d", minAccountNameLen, minPasswordLen))
		return
	}
	accountType := models.AccountType(req.AccountType)
	if accountType == "" {
		accountType = models.AccountArtist
	}
	if !accountType.Valid() {
		h.fail(c, apperr.Invalid(apperr.ReasonInvalidField, "unknown account_type %q", req.AccountType))
		return
	}
	if !id.IsAdmin() {
		if req.OrganizationID != id.OrganizationID {
			h.fail(c, apperr.Denied("Managers may only create accounts in their own organization"))
			return
		}
		if accountType == models.AccountAdmin {
			h.fail(c, apperr.Denied("Only admins may create admin accounts"))
			return
		}
	}
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = req.AccountName
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	account := models.Account{
		AccountName:    req.AccountName,
		DisplayName:    displayName,
		HashedPassword: hash,
		AccountType:    accountType,
		OrganizationID: req.OrganizationID,
	}
	err = h.mutate(c, func(tx *gorm.DB) error {
		if _, err := database.Find[models.Organization](tx, req.OrganizationID, "Organization"); err != nil {
			return err
		}
		if err := database.EnsureUnique(tx, &models.Account{}, "account_name", account.AccountName, 0, "Account name"); err != nil {
			return err
		}
		if err := database.Insert(tx, &account, "Account name"); err != nil {
			return err
		}
		return audit(tx, id, "account", account.ID, "create", account.AccountName+" ("+string(account.AccountType)+")")
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondCreated(c, toAccount(&account))
}

// GET /accounts
// Admins see every account, everyone else the accounts of their organization.
func (h *Handler) ListAccounts(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	q := h.conn(c).Order("id asc")
	if !id.IsAdmin() {
		q = q.Where("organization_id = ?", id.OrganizationID)
	}
	var accounts []models.Account
	if err := q.Find(&accounts).Error; err != nil {
		h.fail(c, err)
		return
	}
	out := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, toAccount(&accounts[i]))
	}
	response.RespondOK(c, out)
}

// GET /accounts/me
func (h *Handler) Me(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	account, err := database.Find[models.Account](h.conn(c), id.AccountID, "Account")
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, toAccount(account))
}
