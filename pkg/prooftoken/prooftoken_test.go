package prooftoken_test

import (
	"encoding/json"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pizzeria-client/pkg/prooftoken"
)

// mintProof firma un token con la forma típica del payload de la fábrica.
func mintProof(t *testing.T) string {
	t.Helper()
	claims := jwt.MapClaims{
		"jti":    "proof-1",
		"vendor": map[string]any{"id": "jwt-pizza", "name": "JWT Pizza"},
		"diner":  map[string]any{"id": "2", "name": "Kai Chen"},
		"order":  map[string]any{"id": 23, "items": []any{}},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secreto-de-fabrica"))
	require.NoError(t, err)
	return tok
}

func TestDecode_LeeLosClaimsSinVerificarLaFirma(t *testing.T) {
	// La clave de firma es de la fábrica: el cliente decodifica sin conocerla.
	claims, err := prooftoken.Decode(mintProof(t))
	require.NoError(t, err)
	assert.Equal(t, "proof-1", claims["jti"])
}

func TestDecode_TokenMalformadoEsError(t *testing.T) {
	_, err := prooftoken.Decode("no-soy-un-jwt")
	assert.Error(t, err)
}

func TestDecodePayload_FormaTipica(t *testing.T) {
	p, err := prooftoken.DecodePayload(mintProof(t))
	require.NoError(t, err)

	var vendor struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(p.Vendor, &vendor))
	assert.Equal(t, "jwt-pizza", vendor.ID)
	assert.NotEmpty(t, p.Order, "el pedido firmado debe venir en el payload")
}

func TestDecodePayload_ClaimsAjenosSeIgnoran(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1"}).
		SignedString([]byte("x"))
	require.NoError(t, err)

	p, err := prooftoken.DecodePayload(tok)
	require.NoError(t, err)
	assert.Empty(t, p.Vendor)
	assert.Empty(t, p.Order)
}
