package usecase

import (
	"context"
	"net/http"

	"github.com/jhoicas/Pizzeria-client/internal/application/dto"
	"github.com/jhoicas/Pizzeria-client/internal/application/ports"
	"github.com/jhoicas/Pizzeria-client/internal/domain/entity"
)

// AuthUseCase adaptador de autenticación: login, registro, logout y
// resolución de identidad. Es el único caso de uso que muta la sesión.
type AuthUseCase struct {
	gw      ports.Gateway
	session ports.SessionStore
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(gw ports.Gateway, session ports.SessionStore) *AuthUseCase {
	return &AuthUseCase{gw: gw, session: session}
}

// Login autentica con email y password. En éxito guarda el token en la
// sesión y devuelve el usuario; en fallo propaga el error del gateway
// intacto.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*entity.User, error) {
	var payload dto.AuthPayload
	body := dto.LoginRequest{Email: email, Password: password}
	if err := uc.gw.Call(ctx, ports.PizzaService, http.MethodPut, "/api/auth", body, &payload); err != nil {
		return nil, err
	}
	user := payload.User.ToEntity()
	uc.session.SetToken(payload.Token)
	uc.session.SetUser(user)
	return user, nil
}

// Register registra un usuario nuevo; misma semántica de sesión que Login.
func (uc *AuthUseCase) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	var payload dto.AuthPayload
	body := dto.RegisterRequest{Name: name, Email: email, Password: password}
	if err := uc.gw.Call(ctx, ports.PizzaService, http.MethodPost, "/api/auth", body, &payload); err != nil {
		return nil, err
	}
	user := payload.User.ToEntity()
	uc.session.SetToken(payload.Token)
	uc.session.SetUser(user)
	return user, nil
}

// Logout notifica al servidor con mejor esfuerzo (el fallo se traga, nunca
// se propaga) y limpia la sesión local incondicionalmente: un logout jamás
// deja credenciales viejas aunque el servidor no responda.
func (uc *AuthUseCase) Logout(ctx context.Context) {
	_ = uc.gw.Call(ctx, ports.PizzaService, http.MethodDelete, "/api/auth", nil, nil)
	uc.session.Clear()
}

// CurrentUser resuelve la identidad del token actual. Sin token devuelve nil
// de inmediato, sin llamada de red. Cualquier fallo se degrada a "sin
// usuario" y además invalida el token guardado: un who-am-I fallido se trata
// como token muerto.
func (uc *AuthUseCase) CurrentUser(ctx context.Context) *entity.User {
	if uc.session.Token() == "" {
		return nil
	}
	var payload dto.UserDTO
	if err := uc.gw.Call(ctx, ports.PizzaService, http.MethodGet, "/api/user/me", nil, &payload); err != nil {
		uc.session.Clear()
		return nil
	}
	user := payload.ToEntity()
	uc.session.SetUser(user)
	return user
}
