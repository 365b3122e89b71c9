package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const publicPrefix = "/uploads"

var allowedExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".gif":  {},
}

// Store guarda imágenes de formularios multipart en disco local y
// devuelve el path público (/uploads/<uuid><ext>). El nombre original
// del archivo no se conserva.
type Store struct {
	dir string
}

func NewLocal(dir string) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("uploads: dir required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("uploads: mkdir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir es el directorio servido como estático bajo /uploads.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", errors.New("uploads: nil file header")
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := allowedExts[ext]; !ok {
		return "", fmt.Errorf("uploads: unsupported extension %q", ext)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("uploads: open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("uploads: create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("uploads: write file: %w", err)
	}

	return publicPrefix + "/" + name, nil
}

// PublicURL arma la URL absoluta de una imagen guardada, con la regla
// que los clientes existentes ya aplican y que hay que mantener tal
// cual: al base se le recorta un /api final, al path guardado se le
// recorta la barra inicial, y se concatenan con una sola barra.
func PublicURL(base, stored string) string {
	base = strings.TrimSpace(base)
	stored = strings.TrimSpace(stored)
	if stored == "" {
		return ""
	}

	base = strings.TrimSuffix(strings.TrimRight(base, "/"), "/api")
	stored = strings.TrimPrefix(stored, "/")

	if base == "" {
		return "/" + stored
	}
	return base + "/" + stored
}
