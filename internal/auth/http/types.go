package http

type sessionResponse struct {
	Success bool   `json:"success"`
	UID     string `json:"uid"`
	Email   string `json:"email"`
	Admin   bool   `json:"admin"`
}
