package entity

import "time"

// BannedEmail es una entrada del listado de exclusión permanente.
// Un email presente aquí no puede registrarse ni iniciar sesión nunca más;
// no existe camino de "unban".
type BannedEmail struct {
	Email     string
	CreatedAt time.Time
}
