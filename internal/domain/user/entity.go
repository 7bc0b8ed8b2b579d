package user

type Role string

const (
	RoleAdmin Role = "ADMIN" // Manages accounts, office config, approvals
	RoleUser  Role = "USER"  // Regular employee
)

// User is an account in the directory. Passwords are stored and compared as
// plain strings: credential protection is explicitly outside this system's
// scope and the login contract is exact string equality.
type User struct {
	ID       string
	Username string
	Password string
	FullName string
	Unit     string
	Role     Role
}

// IsAdmin checks if the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
