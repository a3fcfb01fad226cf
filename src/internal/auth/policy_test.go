package auth

import (
	"testing"

	"github.com/api-sage/bank-portal/src/internal/domain"
)

func TestDefaultPolicy(t *testing.T) {
	policy := DefaultPolicy()

	cases := []struct {
		role domain.Role
		op   Operation
		want bool
	}{
		{domain.RoleCustomer, OpDeposit, true},
		{domain.RoleCustomer, OpWithdraw, true},
		{domain.RoleCustomer, OpListAccounts, false},
		{domain.RoleBanker, OpListAccounts, true},
		{domain.RoleBanker, OpDeposit, false},
		{domain.RoleBanker, OpUpdateUser, true},
		{domain.RoleCustomer, OpUpdateUser, false},
		{domain.RoleBanker, OpLogout, true},
		{domain.RoleCustomer, Operation("unknown"), false},
	}

	for _, tc := range cases {
		if got := policy.Allow(tc.role, tc.op); got != tc.want {
			t.Fatalf("Allow(%s, %s) = %v, want %v", tc.role, tc.op, got, tc.want)
		}
	}
}
