package http

import (
	"github.com/rentora/rentora/internal/service"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// Handlers bundles the services the API surface dispatches to.
type Handlers struct {
	Auth       *service.AuthService
	Properties *service.PropertyService
	Requests   *service.RequestService
}
