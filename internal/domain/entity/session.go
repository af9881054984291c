package entity

// Estados derivados de la sesión. No hay notificación push de expiración: la
// expiración se descubre de forma perezosa cuando una llamada falla.
const (
	StatusAnonymous     = "anonymous"     // sin token
	StatusResolving     = "resolving"     // token presente, identidad sin resolver
	StatusAuthenticated = "authenticated" // token e identidad presentes
)

// Session estado de autenticación del proceso. Token presente sii el último
// intento de autenticación tuvo éxito y no hubo logout/expiración desde
// entonces; User presente sii además la identidad fue resuelta al menos una
// vez desde que se fijó el token.
type Session struct {
	Token string
	User  *User
}

// Status deriva el estado de la sesión para la UI.
func (s Session) Status() string {
	switch {
	case s.Token == "":
		return StatusAnonymous
	case s.User == nil:
		return StatusResolving
	default:
		return StatusAuthenticated
	}
}
