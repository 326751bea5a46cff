package access

import "prodtrack/internal/models"

// Identity is the verified caller, resolved from a bearer token by the
// authentication middleware.
type Identity struct {
	AccountID      uint
	AccountName    string
	AccountType    models.AccountType
	OrganizationID uint
}

func FromAccount(a *models.Account) Identity {
	return Identity{
		AccountID:      a.ID,
		AccountName:    a.AccountName,
		AccountType:    a.AccountType,
		OrganizationID: a.OrganizationID,
	}
}

func (id Identity) IsAdmin() bool { return id.AccountType == models.AccountAdmin }

// SeesOrganizationProjects reports whether the caller lists every project of
// its organization rather than only the projects it is a member of.
func (id Identity) SeesOrganizationProjects() bool {
	return id.AccountType == models.AccountAdmin || id.AccountType == models.AccountManager
}
