package entity

import "github.com/shopspring/decimal"

// MenuItem una pizza del menú. Inmutable una vez obtenida: el menú es de solo
// lectura desde el punto de vista del cliente. Price nunca es negativo.
type MenuItem struct {
	ID          int64
	Title       string
	Image       string
	Price       decimal.Decimal
	Description string
}
