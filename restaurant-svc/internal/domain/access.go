package domain

type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
)

const StaffGroup = "Staff"

func HasRole(user *User, role Role) bool {
	if user == nil {
		return false
	}
	switch role {
	case RoleCustomer:
		return true
	case RoleStaff:
		if user.IsStaff {
			return true
		}
		for _, group := range user.Groups {
			if group == StaffGroup {
				return true
			}
		}
	}
	return false
}

// RequireRole returns ErrUnauthenticated for anonymous callers and ErrForbidden
// for users without the role.
func RequireRole(user *User, role Role) error {
	if user == nil {
		return ErrUnauthenticated
	}
	if !HasRole(user, role) {
		return ErrForbidden
	}
	return nil
}
