package homes

import "time"

const (
	MinCapacity = 1
	MaxCapacity = 20
)

// Valores de availableFor tal como los envía el cliente. Se guardan como
// texto libre; estos son los que el formulario conoce hoy.
const (
	AcceptsDogs      = "Cães"
	AcceptsCats      = "Gatos"
	AcceptsLargeDogs = "Cães de Grande Porte"
	AcceptsPuppies   = "Filhotes"
)

// Home es un lar temporal publicado por un host. El ownership es por
// e-mail de host (case-insensitive); solo ese host edita o desactiva.
type Home struct {
	ID        string
	HostEmail string
	HostName  string

	Address string
	City    string
	State   string

	Capacity int // 1..20
	HasYard  bool
	HasFence bool

	// AvailableFor no puede quedar vacío al crear; no se re-valida en
	// cada edición parcial.
	AvailableFor []string

	Experience  string
	Description string

	ImagePath string // path servido bajo /uploads

	Active bool // desactivar oculta el lar del listado, no lo borra

	CreatedAt time.Time
	UpdatedAt time.Time
}
