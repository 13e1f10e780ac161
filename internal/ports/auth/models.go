package auth

// Claims representa la información extraída del token.
// TenantID es la organización (criadero) desde la que actúa el usuario.
type Claims struct {
	UserID   string
	Email    string
	TenantID string
}
