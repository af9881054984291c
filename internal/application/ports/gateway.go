package ports

import (
	"context"

	"github.com/jhoicas/Pizzeria-client/internal/domain/entity"
)

// Service destino de una llamada saliente. La selección la hace el caso de
// uso según su intención, nunca por inspección de la URL: el servicio de
// pedidos/franquicias/usuarios y el de verificación de pedidos (fábrica)
// viven en bases distintas.
type Service int

const (
	// PizzaService servicio principal: auth, usuarios, menú, pedidos,
	// franquicias y tiendas.
	PizzaService Service = iota
	// FactoryService servicio de verificación de pedidos (fábrica).
	FactoryService
)

// Gateway puerto del cliente HTTP (DIP): el único punto por el que pasa toda
// llamada de red. Adjunta el token de sesión, serializa body, deserializa la
// respuesta en out y clasifica fallos en los tipos de rest. body y out pueden
// ser nil cuando la operación no envía o no espera cuerpo.
type Gateway interface {
	Call(ctx context.Context, svc Service, method, path string, body, out any) error
}

// SessionStore puerto del almacén de sesión. Dueño exclusivo del token y de
// la identidad derivada; los casos de uso de auth son los únicos que lo
// mutan.
type SessionStore interface {
	Get() entity.Session
	Token() string
	SetToken(token string)
	SetUser(u *entity.User)
	Clear()
}
