package dto

// Normalizadores de modelos de vista: funciones puras y totales, sin casos de
// error. Existen porque el backend tiene permitido omitir colecciones
// opcionales; después de normalizar, todo consumidor puede asumir presencia.
// Ambas funciones son idempotentes: normalizar una página ya normalizada la
// devuelve sin cambios.

// NormalizeFranchiseList garantiza que toda franquicia tenga Admins y Stores
// no nil (vacíos si faltaban) y que More sea un booleano definido (el zero
// value false cubre la ausencia en el cable).
func NormalizeFranchiseList(raw FranchiseListPayload) FranchiseListPayload {
	franchises := raw.Franchises
	if franchises == nil {
		franchises = []FranchiseDTO{}
	}
	out := make([]FranchiseDTO, len(franchises))
	for i, f := range franchises {
		if f.Admins == nil {
			f.Admins = []FranchiseAdminDTO{}
		}
		if f.Stores == nil {
			f.Stores = []StoreDTO{}
		}
		out[i] = f
	}
	return FranchiseListPayload{Franchises: out, More: raw.More}
}

// NormalizeUserList garantiza que Users no sea nil y que cada usuario tenga
// Roles no nil.
func NormalizeUserList(raw UserListPayload) UserListPayload {
	users := raw.Users
	if users == nil {
		users = []UserDTO{}
	}
	out := make([]UserDTO, len(users))
	for i, u := range users {
		if u.Roles == nil {
			u.Roles = []RoleRefDTO{}
		}
		out[i] = u
	}
	return UserListPayload{Users: out, More: raw.More}
}
