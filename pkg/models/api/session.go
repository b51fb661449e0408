package api

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Notification struct {
	Message  string `json:"message"`
	Severity string `json:"severity"`
}
