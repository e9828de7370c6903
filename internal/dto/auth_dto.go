package dto

// ─── Requests ────────────────────────────────────────────────────────────────

type RegistroRequest struct {
	Nombre   string `json:"first_name" validate:"required,max=255"`
	Apellido string `json:"last_name"  validate:"required,max=255"`
	Email    string `json:"email"      validate:"required,email,max=255"`
	Password string `json:"password"   validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type ProductorResponse struct {
	ID             string `json:"id"`
	Nombre         string `json:"first_name"`
	Apellido       string `json:"last_name"`
	Email          string `json:"email"`
	NombreCompleto string `json:"full_name"`
}

type AuthResponse struct {
	Productor ProductorResponse `json:"user"`
	Token     string            `json:"token"`
	TokenType string            `json:"token_type"`
	ExpiresIn int               `json:"expires_in"`
}
