// Package access maps (caller role, operation) to an allow/deny decision.
package access

import (
	"errors"

	"trades_marketplace/internal/domain/entities"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("operation not permitted for caller")
)

type Operation string

const (
	OpCreateJobRequest   Operation = "job_request.create"
	OpListOwnJobRequests Operation = "job_request.list_own"
	OpUpdateJobRequest   Operation = "job_request.update"
	OpCancelJobRequest   Operation = "job_request.cancel"
	OpCompleteJobRequest Operation = "job_request.complete"
	OpReconcileJob       Operation = "job_request.reconcile"
	OpLinkDraftJobs      Operation = "job_request.link_drafts"

	OpCreateQuote   Operation = "quote.create"
	OpUpdateQuote   Operation = "quote.update"
	OpWithdrawQuote Operation = "quote.withdraw"
	OpAcceptQuote   Operation = "quote.accept"
	OpDeclineQuote  Operation = "quote.decline"
	OpViewQuote     Operation = "quote.view"
	OpListQuotes    Operation = "quote.list"

	OpSwitchRole Operation = "user.switch_role"
)

var anyRole = []entities.Role{entities.RoleCustomer, entities.RoleProfessional}

// rules lists the roles allowed to attempt each operation. Admin is always allowed.
//
// Job owner operations admit any role: a professional who linked drafts sent
// from their email owns those jobs, and the owner check decides.
var rules = map[Operation][]entities.Role{
	OpCreateJobRequest:   {entities.RoleCustomer},
	OpListOwnJobRequests: anyRole,
	OpUpdateJobRequest:   anyRole,
	OpCancelJobRequest:   anyRole,
	OpCompleteJobRequest: anyRole,
	OpReconcileJob:       anyRole,
	OpLinkDraftJobs:      anyRole,

	OpCreateQuote:   {entities.RoleProfessional},
	OpUpdateQuote:   {entities.RoleProfessional},
	OpWithdrawQuote: {entities.RoleProfessional},
	OpAcceptQuote:   anyRole,
	OpDeclineQuote:  anyRole,
	OpViewQuote:     {entities.RoleCustomer, entities.RoleProfessional},
	OpListQuotes:    {entities.RoleCustomer, entities.RoleProfessional},

	OpSwitchRole: {entities.RoleCustomer},
}

// Authorize checks that caller may perform op. When owners are given, a
// non-admin caller must also be one of them; an empty owner id never matches.
func Authorize(caller *entities.Caller, op Operation, owners ...string) error {
	if caller == nil || caller.UserID == "" {
		return ErrUnauthenticated
	}
	if caller.Role == entities.RoleAdmin {
		return nil
	}
	if !roleAllowed(caller.Role, rules[op]) {
		return ErrForbidden
	}
	if len(owners) == 0 {
		return nil
	}
	for _, owner := range owners {
		if owner != "" && owner == caller.UserID {
			return nil
		}
	}
	return ErrForbidden
}

// RequireAuthenticated only checks that a caller is present.
func RequireAuthenticated(caller *entities.Caller) error {
	if caller == nil || caller.UserID == "" {
		return ErrUnauthenticated
	}
	return nil
}

func roleAllowed(role entities.Role, allowed []entities.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
