package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Cada sentinel corresponde a un resultado distinguible en la capa HTTP:
// 401 vs 403 vs 404 vs 400 vs 409 vs 500.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrDocumentNotFound   = errors.New("documento no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrEmailBanned        = errors.New("el email está permanentemente bloqueado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrIntegrity          = errors.New("fallo de integridad en operación de varios pasos")
)
