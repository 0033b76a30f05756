package dto

import "time"

// StatsResponse contadores globales para el panel de administración.
type StatsResponse struct {
	Users     int `json:"users"`
	Documents int `json:"documents"`
	Pending   int `json:"pending"`
}

// AuditLogResponse entrada del log de auditoría con el usuario resuelto.
type AuditLogResponse struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	UserID    *string   `json:"user_id"`
	User      *UserInfo `json:"user,omitempty"`
	IP        string    `json:"ip"`
	Device    string    `json:"device"`
	CreatedAt time.Time `json:"created_at"`
}

// UserInfo datos mínimos de un usuario para el log de auditoría.
type UserInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
