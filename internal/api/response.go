package api

// LoginResponse is the body returned by POST /api/v1/login.
// Exactly one of Route, FieldErrors or Alert is set.
type LoginResponse struct {
	Route       string            `json:"route,omitempty"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
	Alert       *Alert            `json:"alert,omitempty"`
}

// Alert is a modal the browser shows.
type Alert struct {
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

// LoginRequest is the login form submission.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}
