package v1

import "github.com/nulzo/provider-metrics-api/internal/catalog"

// Handler bundles the query endpoints over one catalog service.
type Handler struct {
	service *catalog.Service
}

func NewHandler(service *catalog.Service) *Handler {
	return &Handler{service: service}
}
