package entity

// Roles válidos para User. El backend los emite en minúscula dentro de
// user.roles como objetos {role, objectId?}.
const (
	RoleDiner      = "diner"
	RoleAdmin      = "admin"
	RoleFranchisee = "franchisee"
)

// RoleRef una asignación de rol a un usuario. Para roles con alcance
// (franchisee) ObjectID referencia el recurso asociado (id de franquicia);
// para roles globales queda en cero.
type RoleRef struct {
	Role     string
	ObjectID int64
}

// User representa al usuario autenticado o listado desde el backend.
// Un usuario sin roles no tiene ninguna capacidad elevada.
type User struct {
	ID    string
	Name  string
	Email string
	Roles []RoleRef
}

// IsRole el role gate: false si el usuario es nil, true si el tag aparece en
// user.Roles. Para roles con alcance basta la presencia del tag; la
// verificación de alcance (objectId) es responsabilidad del llamador.
func IsRole(u *User, role string) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}

// UserList página de usuarios ya normalizada: Users nunca es nil y cada
// usuario tiene Roles no nil. More indica si existe una página siguiente.
type UserList struct {
	Users []*User
	More  bool
}
