package access

import (
	"testing"

	"trades_marketplace/internal/domain/entities"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	customer := &entities.Caller{UserID: "cust-1", Email: "c@x.com", Role: entities.RoleCustomer}
	pro := &entities.Caller{UserID: "pro-1", Email: "p@x.com", Role: entities.RoleProfessional}
	admin := &entities.Caller{UserID: "admin-1", Role: entities.RoleAdmin}

	cases := []struct {
		name   string
		caller *entities.Caller
		op     Operation
		owners []string
		want   error
	}{
		{name: "guest is unauthenticated", caller: nil, op: OpCreateJobRequest, want: ErrUnauthenticated},
		{name: "caller without id is unauthenticated", caller: &entities.Caller{Role: entities.RoleCustomer}, op: OpListQuotes, want: ErrUnauthenticated},
		{name: "customer creates job", caller: customer, op: OpCreateJobRequest},
		{name: "professional cannot create job", caller: pro, op: OpCreateJobRequest, want: ErrForbidden},
		{name: "professional creates quote", caller: pro, op: OpCreateQuote},
		{name: "customer cannot create quote", caller: customer, op: OpCreateQuote, want: ErrForbidden},
		{name: "owner accepts", caller: customer, op: OpAcceptQuote, owners: []string{"cust-1"}},
		{name: "other customer cannot accept", caller: customer, op: OpAcceptQuote, owners: []string{"cust-2"}, want: ErrForbidden},
		{name: "professional cannot accept on a customer's job", caller: pro, op: OpAcceptQuote, owners: []string{"cust-1"}, want: ErrForbidden},
		{name: "professional owning the job accepts", caller: pro, op: OpAcceptQuote, owners: []string{"pro-1"}},
		{name: "professional cancels own linked job", caller: pro, op: OpCancelJobRequest, owners: []string{"pro-1"}},
		{name: "empty owner never matches", caller: customer, op: OpUpdateJobRequest, owners: []string{""}, want: ErrForbidden},
		{name: "professional links own drafts", caller: pro, op: OpLinkDraftJobs},
		{name: "guest cannot link drafts", caller: nil, op: OpLinkDraftJobs, want: ErrUnauthenticated},
		{name: "admin bypasses role", caller: admin, op: OpCreateQuote},
		{name: "admin bypasses ownership", caller: admin, op: OpWithdrawQuote, owners: []string{"pro-9"}},
		{name: "participant views quote", caller: pro, op: OpViewQuote, owners: []string{"pro-1", "cust-1"}},
		{name: "unknown operation denied", caller: customer, op: Operation("nope"), want: ErrForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.caller, tc.op, tc.owners...)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRequireAuthenticated(t *testing.T) {
	assert.ErrorIs(t, RequireAuthenticated(nil), ErrUnauthenticated)
	assert.NoError(t, RequireAuthenticated(&entities.Caller{UserID: "u"}))
}
