package auth

// Role distingue el espacio de identidad del token.
// Un mismo e-mail puede existir como host y como tutor; cada rol tiene
// su propia credencial y su token no habilita al otro rol.
type Role string

const (
	RoleHost  Role = "host"
	RoleTutor Role = "tutor"
)

// Claims es la identidad verificada que viaja en el contexto del request.
type Claims struct {
	Email string
	Role  Role
}
