package entity

import "github.com/shopspring/decimal"

// OrderItem una línea de un pedido: referencia al menú más la descripción y
// el precio congelados al momento de armar el pedido.
type OrderItem struct {
	MenuID      int64
	Description string
	Price       decimal.Decimal
}

// OrderDraft pedido armado en el cliente, todavía sin id: el servidor lo
// asigna al enviarlo.
type OrderDraft struct {
	Items       []OrderItem
	StoreID     int64
	FranchiseID int64
}

// Order pedido ya aceptado por el servidor (con id asignado).
type Order struct {
	ID          int64
	Items       []OrderItem
	StoreID     int64
	FranchiseID int64
	Date        string
}

// Total suma de los precios de las líneas del pedido.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Price)
	}
	return total
}

// OrderReceipt resultado de enviar un pedido: el pedido aceptado más el proof
// token firmado por la fábrica, usado después para verificar la entrega.
type OrderReceipt struct {
	Order      Order
	ProofToken string
}

// OrderHistory historial de pedidos del diner autenticado.
type OrderHistory struct {
	DinerID string
	Orders  []Order
}
