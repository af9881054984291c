package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pizzeria-client/internal/application/dto"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests NormalizeFranchiseList
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizeFranchiseList_RellenaColeccionesAusentes(t *testing.T) {
	raw := dto.FranchiseListPayload{
		Franchises: []dto.FranchiseDTO{
			{ID: 4, Name: "topSpot"}, // sin admins ni stores en el cable
		},
	}
	out := dto.NormalizeFranchiseList(raw)

	require.Len(t, out.Franchises, 1)
	assert.NotNil(t, out.Franchises[0].Admins, "Admins nunca debe quedar nil")
	assert.NotNil(t, out.Franchises[0].Stores, "Stores nunca debe quedar nil")
	assert.Empty(t, out.Franchises[0].Admins)
	assert.Empty(t, out.Franchises[0].Stores)
}

func TestNormalizeFranchiseList_ListaNilSeVuelveVacia(t *testing.T) {
	out := dto.NormalizeFranchiseList(dto.FranchiseListPayload{})
	assert.NotNil(t, out.Franchises)
	assert.Empty(t, out.Franchises)
	assert.False(t, out.More, "More ausente en el cable debe quedar en false")
}

func TestNormalizeFranchiseList_EsTotal(t *testing.T) {
	// Total: cualquier entrada produce salida, sin pánico ni error.
	entradas := []dto.FranchiseListPayload{
		{},
		{Franchises: []dto.FranchiseDTO{}},
		{Franchises: []dto.FranchiseDTO{{}, {Name: "LotaPizza"}}},
		{More: true},
	}
	for _, in := range entradas {
		assert.NotPanics(t, func() { dto.NormalizeFranchiseList(in) })
	}
}

func TestNormalizeFranchiseList_EsIdempotente(t *testing.T) {
	raw := dto.FranchiseListPayload{
		Franchises: []dto.FranchiseDTO{{ID: 2, Name: "LotaPizza"}},
		More:       true,
	}
	una := dto.NormalizeFranchiseList(raw)
	dos := dto.NormalizeFranchiseList(una)
	assert.Equal(t, una, dos, "normalizar una página ya normalizada debe ser identidad")
}

func TestNormalizeFranchiseList_NoMutaLaEntrada(t *testing.T) {
	raw := dto.FranchiseListPayload{
		Franchises: []dto.FranchiseDTO{{ID: 3, Name: "PizzaCorp"}},
	}
	_ = dto.NormalizeFranchiseList(raw)
	assert.Nil(t, raw.Franchises[0].Admins, "el normalizador debe copiar, no mutar la entrada")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests NormalizeUserList
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizeUserList_RellenaRolesAusentes(t *testing.T) {
	raw := dto.UserListPayload{
		Users: []dto.UserDTO{{ID: "5", Name: "Sin Roles", Email: "s@jwt.com"}},
		More:  true,
	}
	out := dto.NormalizeUserList(raw)

	require.Len(t, out.Users, 1)
	assert.NotNil(t, out.Users[0].Roles)
	assert.Empty(t, out.Users[0].Roles)
	assert.True(t, out.More, "More debe preservarse tal cual")
}

func TestNormalizeUserList_ListaNilSeVuelveVacia(t *testing.T) {
	out := dto.NormalizeUserList(dto.UserListPayload{})
	assert.NotNil(t, out.Users)
	assert.Empty(t, out.Users)
	assert.False(t, out.More)
}

func TestNormalizeUserList_EsIdempotente(t *testing.T) {
	raw := dto.UserListPayload{
		Users: []dto.UserDTO{{ID: "1", Name: "常用名字", Roles: []dto.RoleRefDTO{{Role: "admin"}}}},
	}
	una := dto.NormalizeUserList(raw)
	dos := dto.NormalizeUserList(una)
	assert.Equal(t, una, dos)
}
