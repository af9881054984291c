// Package rest implementa el gateway client: el único punto del proceso que
// sabe adjuntar autenticación, parsear respuestas y clasificar fallos. Todos
// los adaptadores de recursos pasan por aquí.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/Pizzeria-client/internal/application/ports"
	"github.com/jhoicas/Pizzeria-client/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa el puerto Gateway.
var _ ports.Gateway = (*Client)(nil)

// Respuestas más grandes que esto se truncan; ningún endpoint del servicio
// se acerca a este tamaño.
const maxBodyBytes = 1 << 20

// TokenSource fuente del bearer token; la implementa el almacén de sesión.
// Un token vacío significa sesión anónima y la petición sale sin header
// Authorization.
type TokenSource interface {
	Token() string
}

// Config bases y timeout del cliente.
type Config struct {
	ServiceURL string        // servicio principal (auth, usuarios, pedidos, franquicias)
	FactoryURL string        // servicio de verificación de pedidos
	Timeout    time.Duration // 0 = 30s
}

// Client gateway HTTP hacia los dos servicios del backend. Sin reintentos:
// todo fallo se reporta una sola vez y el llamador decide.
type Client struct {
	serviceURL string
	factoryURL string
	http       *http.Client
	tokens     TokenSource
	log        *logger.Logger
}

// NewClient construye el gateway. tokens puede ser nil para un cliente
// siempre anónimo (tests); log nil usa un logger descartable.
func NewClient(cfg Config, tokens TokenSource, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		serviceURL: strings.TrimRight(cfg.ServiceURL, "/"),
		factoryURL: strings.TrimRight(cfg.FactoryURL, "/"),
		http:       &http.Client{Timeout: timeout},
		tokens:     tokens,
		log:        log,
	}
}

// Call ejecuta una petición JSON contra svc y deserializa la respuesta en
// out (nil si no interesa el cuerpo). Clasifica los fallos en NetworkError,
// HTTPError o DecodeError; nunca los recupera.
func (c *Client) Call(ctx context.Context, svc ports.Service, method, path string, body, out any) error {
	url := c.resolve(svc, path)

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("rest: serializar cuerpo: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("rest: crear petición: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Str("method", method).Str("url", url).Err(err).Msg("fallo de transporte")
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("llamada al backend")

	// 204: éxito sin cuerpo, no se intenta parsear nada.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &NetworkError{Err: err}
	}
	// Cuerpo vacío se trata como objeto vacío.
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("{}")
	}
	if !json.Valid(raw) {
		return &DecodeError{Err: fmt.Errorf("el cuerpo no es JSON válido")}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := fmt.Sprintf("HTTP %d", resp.StatusCode)
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &payload) == nil && payload.Message != "" {
			msg = payload.Message
		}
		return &HTTPError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	// Esquema estricto en la frontera: cualquier desajuste de forma es un
	// fallo de decodificación, nunca un objeto parcial propagado.
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

// resolve las URLs absolutas pasan intactas; las rutas relativas se prefijan
// con la base del servicio elegido por intención del llamador.
func (c *Client) resolve(svc ports.Service, path string) string {
	if strings.HasPrefix(path, "http") {
		return path
	}
	base := c.serviceURL
	if svc == ports.FactoryService {
		base = c.factoryURL
	}
	return base + path
}
