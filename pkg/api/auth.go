package api

// User is the public view of an account. Password hashes never leave the server.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	PhotoURL string `json:"photoUrl,omitempty"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// GetCurrentUserResponse is everything the home screen needs after login:
// the caller, their groups, and the events of those groups.
type GetCurrentUserResponse struct {
	User   *User    `json:"user"`
	Groups []*Group `json:"groups"`
	Events []*Event `json:"events"`
}

type UserExistsRequest struct {
	Username string `json:"username"`
}

type UserExistsResponse struct {
	Exists bool `json:"exists"`
	// Username is the stored spelling when the user exists.
	Username string `json:"username,omitempty"`
}

type ListUsersResponse struct {
	Users []*User `json:"users"`
}
