package model

// Usuario is a user record owned by the remote user-management API.
type Usuario struct {
	ID       int64  `json:"id"`
	UserName string `json:"userName"`
	Nombre   string `json:"nombre,omitempty"`
	Apellido string `json:"apellido,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Activo   bool   `json:"activo"`
}

// LoginUser carries the credentials of a single login attempt.
type LoginUser struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// LoginResponse is the payload of a successful authentication envelope.
type LoginResponse struct {
	Token string `json:"token"`
}

// Redacted returns a copy of u without its password, for logs and events.
func (u Usuario) Redacted() Usuario {
	u.Password = ""
	return u
}
