package session

import (
	"os"
	"path/filepath"
	"strings"
)

// Verificar en tiempo de compilación que FileVault implementa Vault.
var _ Vault = (*FileVault)(nil)

// FileVault persiste el token en un archivo bajo el directorio de
// configuración del usuario. Es el análogo del localStorage del navegador:
// una sola clave bien conocida, leída en el bootstrap.
type FileVault struct {
	path string
}

// NewFileVault construye el vault sobre la ruta dada.
func NewFileVault(path string) *FileVault {
	return &FileVault{path: path}
}

// Load lee el token persistido; ausencia de archivo es sesión anónima, no un
// error.
func (v *FileVault) Load() (string, error) {
	raw, err := os.ReadFile(v.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

// Save escribe el token con permisos restringidos (es una credencial).
func (v *FileVault) Save(token string) error {
	if token == "" {
		return v.Delete()
	}
	if err := os.MkdirAll(filepath.Dir(v.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(v.path, []byte(token), 0o600)
}

// Delete elimina el token; que no exista no es un error.
func (v *FileVault) Delete() error {
	err := os.Remove(v.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
