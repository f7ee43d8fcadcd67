package auth

// Papel é o papel do usuário autenticado. Conjunto fechado; nada fora dele
// passa pelo middleware.
type Papel string

const (
	PapelAdmin    Papel = "ADMIN"
	PapelCorretor Papel = "CORRETOR"
)

// Valido informa se o papel pertence ao conjunto conhecido.
func (p Papel) Valido() bool {
	switch p {
	case PapelAdmin, PapelCorretor:
		return true
	}
	return false
}

// EhAdmin informa se o papel é administrativo.
func (p Papel) EhAdmin() bool { return p == PapelAdmin }
