package auth

import "github.com/api-sage/bank-portal/src/internal/domain"

type Operation string

const (
	OpLogout                   Operation = "logout"
	OpViewDashboard            Operation = "view_dashboard"
	OpDeposit                  Operation = "deposit"
	OpWithdraw                 Operation = "withdraw"
	OpUpdateProfile            Operation = "update_profile"
	OpListAccounts             Operation = "list_accounts"
	OpViewCustomerTransactions Operation = "view_customer_transactions"
	OpUpdateUser               Operation = "update_user"
)

// Policy maps each protected operation to the roles allowed to perform it.
// Operations missing from the policy are denied.
type Policy map[Operation][]domain.Role

func DefaultPolicy() Policy {
	return Policy{
		OpLogout:                   {domain.RoleCustomer, domain.RoleBanker},
		OpViewDashboard:            {domain.RoleCustomer},
		OpDeposit:                  {domain.RoleCustomer},
		OpWithdraw:                 {domain.RoleCustomer},
		OpUpdateProfile:            {domain.RoleCustomer},
		OpListAccounts:             {domain.RoleBanker},
		OpViewCustomerTransactions: {domain.RoleBanker},
		OpUpdateUser:               {domain.RoleBanker},
	}
}

func (p Policy) Allow(role domain.Role, op Operation) bool {
	for _, allowed := range p[op] {
		if allowed == role {
			return true
		}
	}
	return false
}

// RequiredRoles lists the roles allowed for op, for error messages.
func (p Policy) RequiredRoles(op Operation) []domain.Role {
	return p[op]
}
