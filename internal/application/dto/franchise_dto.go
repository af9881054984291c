package dto

import "github.com/jhoicas/Pizzeria-client/internal/domain/entity"

// FranchiseAdminDTO administrador de franquicia en el cable. En la creación
// solo se envía el email; el backend resuelve el resto.
type FranchiseAdminDTO struct {
	ID    FlexID `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// StoreDTO tienda en el cable. TotalRevenue solo viene en vistas admin.
type StoreDTO struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	TotalRevenue *Money `json:"totalRevenue,omitempty"`
}

// ToEntity convierte el DTO al modelo de dominio.
func (s StoreDTO) ToEntity() entity.Store {
	st := entity.Store{ID: s.ID, Name: s.Name}
	if s.TotalRevenue != nil {
		st.TotalRevenue = s.TotalRevenue.Decimal
	}
	return st
}

// FranchiseDTO franquicia en el cable. Admins y Stores pueden venir ausentes:
// el backend tiene permitido omitir colecciones opcionales.
type FranchiseDTO struct {
	ID     int64               `json:"id,omitempty"`
	Name   string              `json:"name"`
	Admins []FranchiseAdminDTO `json:"admins,omitempty"`
	Stores []StoreDTO          `json:"stores,omitempty"`
}

// ToEntity convierte el DTO (ya normalizado) al modelo de dominio.
func (f FranchiseDTO) ToEntity() entity.Franchise {
	admins := make([]entity.FranchiseAdmin, 0, len(f.Admins))
	for _, a := range f.Admins {
		admins = append(admins, entity.FranchiseAdmin{
			ID:    string(a.ID),
			Name:  a.Name,
			Email: a.Email,
		})
	}
	stores := make([]entity.Store, 0, len(f.Stores))
	for _, s := range f.Stores {
		stores = append(stores, s.ToEntity())
	}
	return entity.Franchise{ID: f.ID, Name: f.Name, Admins: admins, Stores: stores}
}

// FranchiseListPayload respuesta de GET /api/franchise: {franchises, more}.
type FranchiseListPayload struct {
	Franchises []FranchiseDTO `json:"franchises"`
	More       bool           `json:"more"`
}

// ToEntity convierte la página ya normalizada al modelo de dominio.
func (p FranchiseListPayload) ToEntity() *entity.FranchiseList {
	franchises := make([]entity.Franchise, 0, len(p.Franchises))
	for _, f := range p.Franchises {
		franchises = append(franchises, f.ToEntity())
	}
	return &entity.FranchiseList{Franchises: franchises, More: p.More}
}

// CreateFranchiseRequest cuerpo de POST /api/franchise.
type CreateFranchiseRequest struct {
	Name   string              `json:"name"`
	Admins []FranchiseAdminDTO `json:"admins"`
}

// CreateStoreRequest cuerpo de POST /api/franchise/{fid}/store.
type CreateStoreRequest struct {
	Name string `json:"name"`
}
