// Package storage guarda en disco los archivos subidos por los usuarios.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStore escribe uploads bajo un directorio raíz, un subdirectorio por usuario.
type LocalStore struct {
	dir string
}

// NewLocalStore crea el directorio raíz si no existe.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de uploads: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save escribe el contenido con un nombre interno uuid (el nombre original se
// conserva solo en la tabla user_files) y devuelve la ruta en disco.
func (s *LocalStore) Save(userID string, content []byte) (string, error) {
	userDir := filepath.Join(s.dir, userID)
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return "", fmt.Errorf("crear directorio de usuario: %w", err)
	}
	path := filepath.Join(userDir, uuid.New().String()+".csv")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("escribir upload: %w", err)
	}
	return path, nil
}
