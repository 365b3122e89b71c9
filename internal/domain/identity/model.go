package identity

import "time"

// Host es la persona que ofrece un lar temporal. Se crea implícitamente
// la primera vez que registra un lar con un e-mail nuevo; la credencial
// nace junto con el registro (un solo write).
type Host struct {
	Email string // normalizado (trim + lowercase), clave única

	Name  string
	Phone string

	PasswordHash string

	CreatedAt time.Time
}

// Tutor es la persona que pide estadía para su mascota. Mismo ciclo de
// vida que Host, en un espacio de identidad separado: el mismo e-mail
// puede existir en ambos, cada uno con su propia contraseña.
type Tutor struct {
	Email string

	Name  string
	Phone string

	PasswordHash string

	CreatedAt time.Time
}
