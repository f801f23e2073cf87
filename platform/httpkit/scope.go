// Package httpkit provides HTTP utilities including tenant scope extraction.
package httpkit

import (
	"github.com/gin-gonic/gin"

	"outfitter_backend/platform/tenant"
)

// GetScope extracts the tenant scope installed by AuthRequired.
// The second return is false when the request was not authenticated.
func GetScope(c *gin.Context) (tenant.Scope, bool) {
	value, ok := c.Get(ContextScopeKey)
	if !ok {
		return tenant.Scope{}, false
	}

	scope, ok := value.(tenant.Scope)
	if !ok || !scope.Valid() {
		return tenant.Scope{}, false
	}

	return scope, true
}

// MustGetScope extracts the tenant scope or aborts the request with 401.
// Handlers call this first and bail out when the second return is false;
// the response has already been written in that case.
func MustGetScope(c *gin.Context) (tenant.Scope, bool) {
	scope, ok := GetScope(c)
	if !ok {
		abortUnauthorized(c, errMissingToken)
		return tenant.Scope{}, false
	}
	return scope, true
}
