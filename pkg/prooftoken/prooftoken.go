// Package prooftoken decodifica el proof token que la fábrica devuelve con
// cada pedido. La verificación de firma es de la fábrica (POST
// /api/order/verify); aquí solo se leen los claims para mostrarlos sin red,
// por ejemplo en el recibo.
package prooftoken

import (
	"encoding/json"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Payload contenido típico del proof token: quién vendió, quién compró y el
// pedido firmado. Los campos se dejan crudos porque su forma la define la
// fábrica.
type Payload struct {
	Vendor json.RawMessage `json:"vendor,omitempty"`
	Diner  json.RawMessage `json:"diner,omitempty"`
	Order  json.RawMessage `json:"order,omitempty"`
}

// Decode extrae los claims del token SIN verificar la firma. Retorna error
// si el token está malformado.
func Decode(token string) (jwt.MapClaims, error) {
	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("prooftoken: token malformado: %w", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("prooftoken: claims inválidos")
	}
	return claims, nil
}

// DecodePayload decodifica los claims a la forma típica del payload de la
// fábrica.
func DecodePayload(token string) (*Payload, error) {
	claims, err := Decode(token)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(claims)
	if err != nil {
		return nil, fmt.Errorf("prooftoken: reserializar claims: %w", err)
	}
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("prooftoken: payload inesperado: %w", err)
	}
	return &p, nil
}
