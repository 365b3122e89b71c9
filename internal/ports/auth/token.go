package auth

import "context"

// TokenIssuer emite un token de sesión firmado para un e-mail ya
// autenticado (o recién registrado) en un rol.
type TokenIssuer interface {
	Issue(email string, role Role) (string, error)
}

// TokenVerifier verifica un token y devuelve claims o error.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
