package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=2,max=64"`
	Persona  string `json:"persona,omitempty"`
}

type LoginResponse struct {
	UserId      string `json:"user_id"`
	Username    string `json:"username"`
	Persona     string `json:"persona"`
	AccessToken string `json:"access_token"`
}
