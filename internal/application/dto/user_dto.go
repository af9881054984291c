package dto

import (
	"bytes"
	"encoding/json"

	"github.com/jhoicas/Pizzeria-client/internal/domain/entity"
)

// RoleRefDTO asignación de rol en el cable: {role, objectId?}.
type RoleRefDTO struct {
	Role     string `json:"role"`
	ObjectID int64  `json:"objectId,omitempty"`
}

// UserDTO usuario en el cable. Roles puede venir ausente; el normalizador
// garantiza que nunca llegue nil a los consumidores.
type UserDTO struct {
	ID    FlexID       `json:"id,omitempty"`
	Name  string       `json:"name"`
	Email string       `json:"email"`
	Roles []RoleRefDTO `json:"roles,omitempty"`
}

// ToEntity convierte el DTO al modelo de dominio.
func (u UserDTO) ToEntity() *entity.User {
	roles := make([]entity.RoleRef, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, entity.RoleRef{Role: r.Role, ObjectID: r.ObjectID})
	}
	return &entity.User{
		ID:    string(u.ID),
		Name:  u.Name,
		Email: u.Email,
		Roles: roles,
	}
}

// UserFromEntity convierte un usuario de dominio a su forma de cable
// (cuerpo de updateUser).
func UserFromEntity(u *entity.User) UserDTO {
	if u == nil {
		return UserDTO{}
	}
	roles := make([]RoleRefDTO, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, RoleRefDTO{Role: r.Role, ObjectID: r.ObjectID})
	}
	return UserDTO{
		ID:    FlexID(u.ID),
		Name:  u.Name,
		Email: u.Email,
		Roles: roles,
	}
}

// UserListPayload página de usuarios en el cable: {users, more}. Versiones
// viejas del backend devolvían el arreglo pelado; ambas formas se aceptan.
type UserListPayload struct {
	Users []UserDTO `json:"users"`
	More  bool      `json:"more"`
}

// UnmarshalJSON acepta tanto {users:[...],more:bool} como [...].
func (p *UserListPayload) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		p.More = false
		return json.Unmarshal(b, &p.Users)
	}
	type alias UserListPayload
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*p = UserListPayload(a)
	return nil
}

// ToEntity convierte la página ya normalizada al modelo de dominio.
func (p UserListPayload) ToEntity() *entity.UserList {
	users := make([]*entity.User, 0, len(p.Users))
	for _, u := range p.Users {
		users = append(users, u.ToEntity())
	}
	return &entity.UserList{Users: users, More: p.More}
}

// AuthPayload respuesta de login/registro/update: {user, token}. El token
// puede venir vacío en updateUser cuando el servidor no lo rota.
type AuthPayload struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

// LoginRequest cuerpo de PUT /api/auth.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest cuerpo de POST /api/auth.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest cuerpo de PUT /api/user/{id}. Password solo se envía si
// el usuario la está cambiando.
type UpdateUserRequest struct {
	UserDTO
	Password string `json:"password,omitempty"`
}
