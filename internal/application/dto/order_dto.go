package dto

import (
	"encoding/json"

	"github.com/jhoicas/Pizzeria-client/internal/domain/entity"
)

// MenuItemDTO pizza del menú en el cable.
type MenuItemDTO struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Image       string `json:"image"`
	Price       Money  `json:"price"`
	Description string `json:"description"`
}

// ToEntity convierte el DTO al modelo de dominio.
func (m MenuItemDTO) ToEntity() entity.MenuItem {
	return entity.MenuItem{
		ID:          m.ID,
		Title:       m.Title,
		Image:       m.Image,
		Price:       m.Price.Decimal,
		Description: m.Description,
	}
}

// OrderItemDTO línea de pedido en el cable: {menuId, description, price}.
type OrderItemDTO struct {
	MenuID      int64  `json:"menuId"`
	Description string `json:"description"`
	Price       Money  `json:"price"`
}

// OrderDTO pedido en el cable; ID solo está presente en pedidos aceptados.
type OrderDTO struct {
	ID          int64          `json:"id,omitempty"`
	FranchiseID int64          `json:"franchiseId"`
	StoreID     int64          `json:"storeId"`
	Date        string         `json:"date,omitempty"`
	Items       []OrderItemDTO `json:"items"`
}

// ToEntity convierte el DTO al modelo de dominio.
func (o OrderDTO) ToEntity() entity.Order {
	items := make([]entity.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, entity.OrderItem{
			MenuID:      it.MenuID,
			Description: it.Description,
			Price:       it.Price.Decimal,
		})
	}
	return entity.Order{
		ID:          o.ID,
		FranchiseID: o.FranchiseID,
		StoreID:     o.StoreID,
		Date:        o.Date,
		Items:       items,
	}
}

// OrderDraftFromEntity arma el cuerpo de POST /api/order a partir del
// borrador de dominio.
func OrderDraftFromEntity(d entity.OrderDraft) OrderDTO {
	items := make([]OrderItemDTO, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, OrderItemDTO{
			MenuID:      it.MenuID,
			Description: it.Description,
			Price:       NewMoney(it.Price),
		})
	}
	return OrderDTO{
		FranchiseID: d.FranchiseID,
		StoreID:     d.StoreID,
		Items:       items,
	}
}

// OrderSubmitPayload respuesta de POST /api/order: el pedido aceptado más el
// proof token (jwt) firmado por la fábrica.
type OrderSubmitPayload struct {
	Order OrderDTO `json:"order"`
	JWT   string   `json:"jwt"`
}

// OrderHistoryPayload respuesta de GET /api/order.
type OrderHistoryPayload struct {
	ID      FlexID     `json:"id"`
	DinerID FlexID     `json:"dinerId"`
	Orders  []OrderDTO `json:"orders"`
}

// ToEntity convierte el historial al modelo de dominio; Orders nunca nil.
func (p OrderHistoryPayload) ToEntity() *entity.OrderHistory {
	orders := make([]entity.Order, 0, len(p.Orders))
	for _, o := range p.Orders {
		orders = append(orders, o.ToEntity())
	}
	return &entity.OrderHistory{DinerID: string(p.DinerID), Orders: orders}
}

// VerifyRequest cuerpo de POST /api/order/verify (servicio de fábrica).
type VerifyRequest struct {
	JWT string `json:"jwt"`
}

// VerifyResponse respuesta de la fábrica: mensaje más el payload firmado del
// pedido. Payload se deja crudo porque su forma la define la fábrica.
type VerifyResponse struct {
	Message string          `json:"message"`
	Payload json.RawMessage `json:"payload"`
}
