package dto

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ListOptions paginación y filtro para listados (usuarios y franquicias).
// Page es SIEMPRE cero-based en el modelo de vista; la traducción a la
// convención del endpoint es responsabilidad del caso de uso.
type ListOptions struct {
	Page  int
	Limit int
	Name  string
}

// Defaults aplica los valores por defecto documentados: limit 10 y filtro
// comodín "*". Page negativo se trata como 0.
func (o *ListOptions) Defaults() {
	if o.Page < 0 {
		o.Page = 0
	}
	if o.Limit <= 0 {
		o.Limit = 10
	}
	if o.Name == "" {
		o.Name = "*"
	}
}

// FlexID id que el backend emite a veces como número y a veces como string.
// Se decodifica siempre a su forma string.
type FlexID string

// UnmarshalJSON acepta string, número o null.
func (f *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

// MarshalJSON emite la forma string; el backend la acepta en ambos formatos.
func (f FlexID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

// Money decimal que viaja como número JSON (el backend nunca usa strings
// para precios ni revenue).
type Money struct {
	decimal.Decimal
}

// NewMoney envuelve un decimal para serialización numérica.
func NewMoney(d decimal.Decimal) Money { return Money{d} }

// MarshalJSON emite el decimal como número sin comillas.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}
