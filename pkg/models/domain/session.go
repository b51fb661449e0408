package domain

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

type User struct {
	Email string
	Name  string
	Role  Role
}

// Session is the authentication state of one client.
// The zero value is a signed-out session.
type Session struct {
	Token         string
	Authenticated bool
	User          *User
}

type Credentials struct {
	Email    string
	Password string
}
