package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNoSession    = errors.New("no hay sesión activa")
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrEmptyOrder   = errors.New("el pedido no tiene líneas")
	ErrInvalidProof = errors.New("proof token inválido")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)
