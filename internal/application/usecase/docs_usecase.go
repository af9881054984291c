package usecase

import (
	"context"
	"net/http"

	"github.com/jhoicas/Pizzeria-client/internal/application/dto"
	"github.com/jhoicas/Pizzeria-client/internal/application/ports"
)

// Tipos de documentación disponibles.
const (
	DocsService = "service" // docs del servicio principal
	DocsFactory = "factory" // docs del servicio de fábrica
)

// DocsUseCase obtiene la documentación de la API publicada por cada
// servicio.
type DocsUseCase struct {
	gw ports.Gateway
}

// NewDocsUseCase construye el caso de uso de docs.
func NewDocsUseCase(gw ports.Gateway) *DocsUseCase {
	return &DocsUseCase{gw: gw}
}

// Docs devuelve la documentación del servicio indicado por kind; cualquier
// valor distinto de "factory" consulta el servicio principal.
func (uc *DocsUseCase) Docs(ctx context.Context, kind string) (*dto.DocsPayload, error) {
	svc := ports.PizzaService
	if kind == DocsFactory {
		svc = ports.FactoryService
	}
	var payload dto.DocsPayload
	if err := uc.gw.Call(ctx, svc, http.MethodGet, "/api/docs", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
