package models

// RoleAdmin is the profile allowed into the admin area.
const RoleAdmin = "ADMIN"

// Credentials is the login form payload
type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"senha"`
}

// LoginResponse is what /auth/login returns on success
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"perfil"`
}
