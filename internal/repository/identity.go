package repository

import (
	"fmt"
	"strings"

	"github.com/proofdesk/portal/internal/model"
)

// identityPredicate builds the OR predicate matching rows keyed by account
// id and/or case-insensitive email. Both keys present yields one combined
// "account_id = $n OR LOWER(email) = $m" clause so a single query replaces
// two lookups. Exact account id match takes the first position.
// Returns an empty clause for a zero identity; callers must check IsZero
// first — a zero identity means no rows, never all rows.
func identityPredicate(identity model.CustomerIdentity, argOffset int) (string, []any) {
	var conds []string
	var args []any

	n := argOffset
	if identity.AccountID != "" {
		conds = append(conds, fmt.Sprintf("account_id = $%d", n))
		args = append(args, identity.AccountID)
		n++
	}
	if identity.Email != "" {
		conds = append(conds, fmt.Sprintf("LOWER(email) = $%d", n))
		args = append(args, identity.EmailLower())
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "(" + strings.Join(conds, " OR ") + ")", args
}
