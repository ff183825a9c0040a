package models

import (
	"strings"
	"time"
)

// Account rows are owned by the external auth provider; this service only
// reads them to resolve owner references and display names.
type Account struct {
	Account_ID      int       `json:"accountId" goqu:"skipinsert"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	First_Name      string    `json:"firstName"`
	Last_Name       string    `json:"lastName"`
	Datetime_Create time.Time `json:"datetimeCreate" goqu:"skipinsert"`
}

// FullName returns the account's display name, falling back to the username
// when no name parts are set.
func (a Account) FullName() string {
	full := strings.TrimSpace(strings.TrimSpace(a.First_Name) + " " + strings.TrimSpace(a.Last_Name))
	if full != "" {
		return full
	}
	return a.Username
}
