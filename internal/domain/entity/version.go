package entity

import "time"

// Version es un snapshot inmutable de un archivo subido para un documento.
// VersionNum es monotónico por documento, empieza en 1 y se asigna como
// max actual + 1 dentro de la misma transacción que resetea el estado.
type Version struct {
	ID         string
	DocumentID string
	VersionNum int
	FileURL    string // referencia opaca al blob (ruta local en esta implementación)
	FileName   string // nombre original del archivo subido
	CreatedAt  time.Time
}
