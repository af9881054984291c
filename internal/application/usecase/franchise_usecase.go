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

// FranchiseUseCase fachada CRUD sobre franquicias y tiendas.
type FranchiseUseCase struct {
	gw ports.Gateway
}

// NewFranchiseUseCase construye el caso de uso de franquicias.
func NewFranchiseUseCase(gw ports.Gateway) *FranchiseUseCase {
	return &FranchiseUseCase{gw: gw}
}

// List lista franquicias paginadas. A diferencia del endpoint de usuarios,
// aquí la página viaja cero-based SIN traducción: asimetría documentada del
// backend, preservada a propósito.
func (uc *FranchiseUseCase) List(ctx context.Context, opts dto.ListOptions) (*entity.FranchiseList, error) {
	opts.Defaults()
	q := url.Values{}
	q.Set("page", strconv.Itoa(opts.Page))
	q.Set("limit", strconv.Itoa(opts.Limit))
	q.Set("name", opts.Name)

	var raw dto.FranchiseListPayload
	if err := uc.gw.Call(ctx, ports.PizzaService, http.MethodGet, "/api/franchise?"+q.Encode(), nil, &raw); err != nil {
		return nil, err
	}
	return dto.NormalizeFranchiseList(raw).ToEntity(), nil
}

// ForUser lista las franquicias administradas por un usuario.
func (uc *FranchiseUseCase) ForUser(ctx context.Context, userID string) ([]entity.Franchise, error) {
	path := fmt.Sprintf("/api/franchise/%s", url.PathEscape(userID))
	var raw []dto.FranchiseDTO
	if err := uc.gw.Call(ctx, ports.PizzaService, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	// Las mismas garantías del normalizador aplican a esta vista.
	norm := dto.NormalizeFranchiseList(dto.FranchiseListPayload{Franchises: raw})
	return norm.ToEntity().Franchises, nil
}

// Create crea una franquicia con sus administradores (por email).
func (uc *FranchiseUseCase) Create(ctx context.Context, name string, adminEmails []string) (*entity.Franchise, error) {
	admins := make([]dto.FranchiseAdminDTO, 0, len(adminEmails))
	for _, email := range adminEmails {
		admins = append(admins, dto.FranchiseAdminDTO{Email: email})
	}
	body := dto.CreateFranchiseRequest{Name: name, Admins: admins}

	var raw dto.FranchiseDTO
	if err := uc.gw.Call(ctx, ports.PizzaService, http.MethodPost, "/api/franchise", body, &raw); err != nil {
		return nil, err
	}
	f := raw.ToEntity()
	return &f, nil
}

// Close cierra una franquicia.
func (uc *FranchiseUseCase) Close(ctx context.Context, franchiseID int64) error {
	path := fmt.Sprintf("/api/franchise/%d", franchiseID)
	return uc.gw.Call(ctx, ports.PizzaService, http.MethodDelete, path, nil, nil)
}

// CreateStore abre una tienda dentro de una franquicia.
func (uc *FranchiseUseCase) CreateStore(ctx context.Context, franchiseID int64, name string) (*entity.Store, error) {
	path := fmt.Sprintf("/api/franchise/%d/store", franchiseID)
	body := dto.CreateStoreRequest{Name: name}

	var raw dto.StoreDTO
	if err := uc.gw.Call(ctx, ports.PizzaService, http.MethodPost, path, body, &raw); err != nil {
		return nil, err
	}
	s := raw.ToEntity()
	return &s, nil
}

// CloseStore cierra una tienda de una franquicia.
func (uc *FranchiseUseCase) CloseStore(ctx context.Context, franchiseID, storeID int64) error {
	path := fmt.Sprintf("/api/franchise/%d/store/%d", franchiseID, storeID)
	return uc.gw.Call(ctx, ports.PizzaService, http.MethodDelete, path, nil, nil)
}
