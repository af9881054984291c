package usecase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/Pizzeria-client/internal/application/dto"
	"github.com/jhoicas/Pizzeria-client/internal/application/ports"
	"github.com/jhoicas/Pizzeria-client/internal/domain/entity"
)

// UserUseCase adaptador del recurso de usuarios (administración).
type UserUseCase struct {
	gw      ports.Gateway
	session ports.SessionStore
}

// NewUserUseCase construye el caso de uso de usuarios.
func NewUserUseCase(gw ports.Gateway, session ports.SessionStore) *UserUseCase {
	return &UserUseCase{gw: gw, session: session}
}

// List lista usuarios paginados. opts.Page es cero-based; el endpoint de
// usuarios espera página uno-based, así que aquí se traduce con +1. Ojo: el
// endpoint de franquicias NO traduce — la asimetría es contrato observado
// del backend y se preserva tal cual.
func (uc *UserUseCase) List(ctx context.Context, opts dto.ListOptions) (*entity.UserList, error) {
	opts.Defaults()
	q := url.Values{}
	q.Set("page", strconv.Itoa(opts.Page+1))
	q.Set("limit", strconv.Itoa(opts.Limit))
	q.Set("name", opts.Name)

	var raw dto.UserListPayload
	if err := uc.gw.Call(ctx, ports.PizzaService, http.MethodGet, "/api/user?"+q.Encode(), nil, &raw); err != nil {
		return nil, err
	}
	return dto.NormalizeUserList(raw).ToEntity(), nil
}

// Delete elimina un usuario; el backend responde 204 sin cuerpo.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/user/%s", url.PathEscape(id))
	return uc.gw.Call(ctx, ports.PizzaService, http.MethodDelete, path, nil, nil)
}

// Update actualiza el perfil de un usuario. El servidor puede rotar el token
// en cambios de perfil, así que el token devuelto se vuelve a guardar antes
// de devolver el usuario actualizado.
func (uc *UserUseCase) Update(ctx context.Context, u *entity.User, password string) (*entity.User, error) {
	body := dto.UpdateUserRequest{UserDTO: dto.UserFromEntity(u), Password: password}
	path := fmt.Sprintf("/api/user/%s", url.PathEscape(u.ID))

	var payload dto.AuthPayload
	if err := uc.gw.Call(ctx, ports.PizzaService, http.MethodPut, path, body, &payload); err != nil {
		return nil, err
	}
	if payload.Token != "" {
		uc.session.SetToken(payload.Token)
	}
	return payload.User.ToEntity(), nil
}
