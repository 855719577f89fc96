package dto

type RegisterRequestDTO struct {
	Utorid   string `json:"utorid" example:"clive123"`
	Name     string `json:"name" example:"Clive Su"`
	Email    string `json:"email" example:"clive.su@mail.utoronto.ca"`
	Password string `json:"password" example:"SuperSecret123!"`
}

type LoginRequestDTO struct {
	Utorid   string `json:"utorid" example:"clive123"`
	Password string `json:"password" example:"SuperSecret123!"`
}

type TokenResponseDTO struct {
	Token string `json:"token"`
}

type ResetRequestDTO struct {
	Utorid string `json:"utorid" example:"clive123"`
}

type ResetPasswordDTO struct {
	Password string `json:"password" example:"NewSecret456!"`
}
