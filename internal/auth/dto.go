package auth

// LoginRequest é usado em POST /api/token/
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ParTokens é a resposta do login.
type ParTokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// VerificarRequest é usado em POST /api/token/verify/
type VerificarRequest struct {
	Token string `json:"token" validate:"required"`
}

// RenovarRequest é usado em POST /api/token/refresh/
type RenovarRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// RegistroRequest é usado em POST /register/
type RegistroRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=6"`
}
