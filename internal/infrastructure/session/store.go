// Package session implementa el almacén de sesión: dueño único del bearer
// token y de la identidad derivada. Sin acceso a red; los casos de uso de
// auth son los únicos que lo mutan.
package session

import (
	"sync"

	"github.com/jhoicas/Pizzeria-client/internal/application/ports"
	"github.com/jhoicas/Pizzeria-client/internal/domain/entity"
	"github.com/jhoicas/Pizzeria-client/pkg/logger"
)

// Verificar en tiempo de compilación que Store implementa el puerto.
var _ ports.SessionStore = (*Store)(nil)

// Vault persistencia durable del token (el análogo de localStorage): se lee
// en el bootstrap y se escribe en cada mutación de auth exitosa.
type Vault interface {
	Load() (string, error)
	Save(token string) error
	Delete() error
}

// Store sesión del proceso. Cada campo se asigna de forma atómica bajo mutex;
// no hay lógica de merge: el último escritor gana.
type Store struct {
	mu    sync.Mutex
	token string
	user  *entity.User
	vault Vault
	log   *logger.Logger
}

// NewStore construye el almacén y repone el token desde el vault si existe,
// de modo que un proceso nuevo pueda re-resolver la sesión. vault puede ser
// nil (sesión solo en memoria); log nil usa un logger descartable.
func NewStore(vault Vault, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	s := &Store{vault: vault, log: log}
	if vault != nil {
		tok, err := vault.Load()
		if err != nil {
			log.Warn().Err(err).Msg("leer token persistido")
		} else {
			s.token = tok
		}
	}
	return s
}

// Get devuelve una copia de la sesión actual.
func (s *Store) Get() entity.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return entity.Session{Token: s.token, User: s.user}
}

// Token devuelve el bearer token actual; vacío en sesión anónima.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// SetToken fija el token y lo espeja al vault. Fijar un token nuevo invalida
// la identidad resuelta con el anterior.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	if token != s.token {
		s.user = nil
	}
	s.token = token
	s.mu.Unlock()

	if s.vault == nil {
		return
	}
	if err := s.vault.Save(token); err != nil {
		s.log.Warn().Err(err).Msg("persistir token")
	}
}

// SetUser fija la identidad resuelta para el token actual.
func (s *Store) SetUser(u *entity.User) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}

// Clear vacía la sesión y elimina el token persistido. Se invoca en logout y
// cuando la resolución de identidad falla (token inválido).
func (s *Store) Clear() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if s.vault == nil {
		return
	}
	if err := s.vault.Delete(); err != nil {
		s.log.Warn().Err(err).Msg("eliminar token persistido")
	}
}

// Status deriva el estado de la sesión para la UI.
func (s *Store) Status() string {
	return s.Get().Status()
}
