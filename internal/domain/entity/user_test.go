package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Pizzeria-client/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests IsRole (role gate)
// ──────────────────────────────────────────────────────────────────────────────

func TestIsRole_UsuarioNilNuncaTieneRol(t *testing.T) {
	assert.False(t, entity.IsRole(nil, entity.RoleAdmin),
		"un usuario nil no debe tener ningún rol")
	assert.False(t, entity.IsRole(nil, entity.RoleDiner),
		"un usuario nil no debe tener ningún rol")
}

func TestIsRole_SinRolesEsFalse(t *testing.T) {
	u := &entity.User{ID: "9", Name: "Sin Roles"}
	assert.False(t, entity.IsRole(u, entity.RoleAdmin),
		"un usuario sin roles no debe pasar el gate")
}

func TestIsRole_TagPresente(t *testing.T) {
	u := &entity.User{
		ID:    "1",
		Name:  "常用名字",
		Email: "a@jwt.com",
		Roles: []entity.RoleRef{{Role: entity.RoleAdmin}},
	}
	assert.True(t, entity.IsRole(u, entity.RoleAdmin),
		"el tag admin presente debe pasar el gate")
	assert.False(t, entity.IsRole(u, entity.RoleFranchisee),
		"un tag ausente no debe pasar el gate")
}

func TestIsRole_RolConAlcanceBastaElTag(t *testing.T) {
	// El gate solo mira el tag; el objectId es responsabilidad del llamador.
	u := &entity.User{
		ID:    "3",
		Roles: []entity.RoleRef{{Role: entity.RoleDiner}, {Role: entity.RoleFranchisee, ObjectID: 2}},
	}
	assert.True(t, entity.IsRole(u, entity.RoleFranchisee))
	assert.True(t, entity.IsRole(u, entity.RoleDiner))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Session.Status
// ──────────────────────────────────────────────────────────────────────────────

func TestSessionStatus_Derivacion(t *testing.T) {
	casos := []struct {
		nombre string
		sesion entity.Session
		quiere string
	}{
		{"sin token", entity.Session{}, entity.StatusAnonymous},
		{"token sin identidad", entity.Session{Token: "T"}, entity.StatusResolving},
		{"token con identidad", entity.Session{Token: "T", User: &entity.User{ID: "1"}}, entity.StatusAuthenticated},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			assert.Equal(t, c.quiere, c.sesion.Status())
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Order.Total
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderTotal_SumaLasLineas(t *testing.T) {
	o := entity.Order{
		ID: 23,
		Items: []entity.OrderItem{
			{MenuID: 1, Description: "Veggie", Price: decimal.RequireFromString("0.0038")},
			{MenuID: 2, Description: "Pepperoni", Price: decimal.RequireFromString("0.0042")},
		},
	}
	assert.True(t, o.Total().Equal(decimal.RequireFromString("0.008")),
		"el total debe ser la suma exacta de las líneas, quiere 0.008 y fue %s", o.Total())
}

func TestOrderTotal_PedidoVacioEsCero(t *testing.T) {
	assert.True(t, entity.Order{}.Total().IsZero())
}
