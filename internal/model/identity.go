package model

import (
	"strings"
)

// CustomerIdentity carries both keys a record may be associated by.
// A customer can be referenced by account id, by email, or both,
// inconsistently across rows.
type CustomerIdentity struct {
	AccountID string
	Email     string
}

func NewCustomerIdentity(accountID, email string) CustomerIdentity {
	return CustomerIdentity{
		AccountID: strings.TrimSpace(accountID),
		Email:     strings.TrimSpace(email),
	}
}

// IsZero reports whether neither key is present. A zero identity is the
// unauthenticated context: lookups return empty results, not errors.
func (i CustomerIdentity) IsZero() bool {
	return i.AccountID == "" && i.Email == ""
}

// EmailLower returns the email normalized for case-insensitive matching.
func (i CustomerIdentity) EmailLower() string {
	return strings.ToLower(i.Email)
}
