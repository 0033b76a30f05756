package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStore guarda archivos subidos en disco local y los expone bajo /uploads.
type LocalStore struct {
	dir string
}

// NewLocalStore crea el directorio de subidas si no existe.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir devuelve el directorio raíz de archivos (para servir estáticos).
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save persiste el archivo con un nombre aleatorio (conserva la extensión)
// y devuelve la URL pública junto con el nombre original.
func (s *LocalStore) Save(file *multipart.FileHeader) (url string, originalName string, err error) {
	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + filepath.Ext(file.Filename)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", "", fmt.Errorf("write file: %w", err)
	}
	return "/uploads/" + name, file.Filename, nil
}
