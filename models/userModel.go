package models

// User is the profile record held in the second session slot.
type User struct {
	ID       int    `json:"id"`
	Fullname string `json:"fullname"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the profile carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == "admin"
}

type LoginData struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type SignupData struct {
	Fullname        string `json:"fullname" validate:"required"`
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone"`
	Password        string `json:"password" validate:"required,min=8"`
	AcceptTerms     bool   `json:"acceptTerms" validate:"eq=true"`
	SubscribeToNews bool   `json:"subscribeToNews"`
}

// Session pairs the bearer token with the profile it belongs to.
// Both fields are set together or not at all.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

func (s *Session) Authenticated() bool {
	return s != nil && s.Token != "" && s.User != nil
}
