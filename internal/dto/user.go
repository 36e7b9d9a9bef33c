package dto

type SignUpRequest struct {
	Username string `json:"userName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=12"`
}

type SignInRequest struct {
	Username string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required,min=12"`
}

type RefreshTokenRequest struct {
	Token        string `json:"token" binding:"required"`
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type UserDeleteRequest struct {
	Username string `json:"userName" binding:"required"`
	WithData bool   `json:"withData"`
}
