package usecase

import (
	"context"
	"net/http"

	"github.com/jhoicas/Pizzeria-client/internal/application/dto"
	"github.com/jhoicas/Pizzeria-client/internal/application/ports"
	"github.com/jhoicas/Pizzeria-client/internal/domain"
	"github.com/jhoicas/Pizzeria-client/internal/domain/entity"
)

// OrderUseCase adaptador de menú y pedidos.
type OrderUseCase struct {
	gw ports.Gateway
}

// NewOrderUseCase construye el caso de uso de pedidos.
func NewOrderUseCase(gw ports.Gateway) *OrderUseCase {
	return &OrderUseCase{gw: gw}
}

// Menu obtiene el menú (endpoint público, no requiere sesión).
func (uc *OrderUseCase) Menu(ctx context.Context) ([]entity.MenuItem, error) {
	var raw []dto.MenuItemDTO
	if err := uc.gw.Call(ctx, ports.PizzaService, http.MethodGet, "/api/order/menu", nil, &raw); err != nil {
		return nil, err
	}
	items := make([]entity.MenuItem, 0, len(raw))
	for _, m := range raw {
		items = append(items, m.ToEntity())
	}
	return items, nil
}

// History obtiene el historial de pedidos del diner autenticado.
func (uc *OrderUseCase) History(ctx context.Context) (*entity.OrderHistory, error) {
	var raw dto.OrderHistoryPayload
	if err := uc.gw.Call(ctx, ports.PizzaService, http.MethodGet, "/api/order", nil, &raw); err != nil {
		return nil, err
	}
	return raw.ToEntity(), nil
}

// Submit envía un borrador de pedido. Devuelve el pedido con el id asignado
// por el servidor más el proof token firmado por la fábrica.
func (uc *OrderUseCase) Submit(ctx context.Context, draft entity.OrderDraft) (*entity.OrderReceipt, error) {
	if len(draft.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	body := dto.OrderDraftFromEntity(draft)

	var payload dto.OrderSubmitPayload
	if err := uc.gw.Call(ctx, ports.PizzaService, http.MethodPost, "/api/order", body, &payload); err != nil {
		return nil, err
	}
	return &entity.OrderReceipt{
		Order:      payload.Order.ToEntity(),
		ProofToken: payload.JWT,
	}, nil
}

// Verify valida un proof token contra el servicio de fábrica (base distinta
// del servicio principal, elegida por intención, no por URL).
func (uc *OrderUseCase) Verify(ctx context.Context, proofToken string) (*dto.VerifyResponse, error) {
	var payload dto.VerifyResponse
	body := dto.VerifyRequest{JWT: proofToken}
	if err := uc.gw.Call(ctx, ports.FactoryService, http.MethodPost, "/api/order/verify", body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
