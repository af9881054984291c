package rest

import (
	"errors"
	"fmt"
	"net/http"
)

// Taxonomía de fallos del gateway. El gateway nunca recupera un fallo por sí
// mismo: clasifica y propaga. Los casos de uso recuperan exactamente dos
// (logout y resolución de identidad); todo lo demás llega al llamador.

// NetworkError el transporte no pudo completar la petición (timeout, DNS,
// conexión reiniciada).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "rest: fallo de red: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError el servidor respondió con un status fuera del rango 2xx. Message
// sale del campo message del cuerpo JSON cuando existe; si no, "HTTP <n>".
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("rest: HTTP %d: %s", e.Status, e.Message)
}

// DecodeError el cuerpo de la respuesta no era vacío pero tampoco JSON
// válido, o no coincide con el esquema esperado.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "rest: decodificar respuesta: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// IsAuthError true si el fallo es un HTTPError 401/403 (credenciales
// inválidas o sesión expirada).
func IsAuthError(err error) bool {
	var he *HTTPError
	if !errors.As(err, &he) {
		return false
	}
	return he.Status == http.StatusUnauthorized || he.Status == http.StatusForbidden
}
