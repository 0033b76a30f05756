package dto

import "time"

// UploadDocumentRequest campos del formulario multipart de subida.
// El archivo viaja aparte (campo "file").
type UploadDocumentRequest struct {
	Title         string `form:"title" validate:"required"`
	Description   string `form:"description"`
	ApproverEmail string `form:"approver_email" validate:"required,email"`
	Priority      string `form:"priority" validate:"omitempty,oneof=NORMAL HIGH URGENT"`
	Category      string `form:"category"`
}

// FileRef referencia opaca a un archivo ya persistido por el storage.
type FileRef struct {
	URL  string
	Name string
}

// ReviewRequest veredicto del revisor con comentario opcional.
type ReviewRequest struct {
	Status  string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	Comment string `json:"comment"`
}

// VersionResponse vista de una versión de archivo.
type VersionResponse struct {
	ID         string    `json:"id"`
	VersionNum int       `json:"version_num"`
	FileURL    string    `json:"file_url"`
	FileName   string    `json:"file_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// CommentResponse vista de un comentario de revisión.
type CommentResponse struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	AuthorRole string    `json:"author_role,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ClientInfo datos mínimos del dueño del documento para listados.
type ClientInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DocumentResponse vista de un documento; Versions va ordenado por
// version_num descendente (la más nueva primero).
type DocumentResponse struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	ApproverEmail string            `json:"approver_email"`
	Category      string            `json:"category"`
	Priority      string            `json:"priority"`
	Status        string            `json:"status"`
	ClientID      string            `json:"client_id"`
	Client        *ClientInfo       `json:"client,omitempty"`
	Versions      []VersionResponse `json:"versions,omitempty"`
	Comments      []CommentResponse `json:"comments,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
