package repository

// BannedEmailRepository define el puerto de persistencia para el listado
// de exclusión. No hay Delete: el ban es permanente.
type BannedEmailRepository interface {
	Add(email string) error
	Exists(email string) (bool, error)
}
