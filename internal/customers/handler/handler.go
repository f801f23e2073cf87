// Package handler exposes the customers module's HTTP endpoints.
package handler

import (
	"strconv"

	"outfitter_backend/internal/customers/repository"
	"outfitter_backend/internal/customers/service"
	"outfitter_backend/internal/customers/transport"
	"outfitter_backend/platform/httpkit"
	"outfitter_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for customers.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new customers handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List returns a page of the caller's customers.
// GET /api/v1/customers?search=&limit=&offset=
func (h *Handler) List(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	page, err := h.svc.List(c.Request.Context(), scope, repository.ListParams{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.CustomerResponse, 0, len(page.Customers))
	for _, cust := range page.Customers {
		out = append(out, customerResponse(cust))
	}
	httpkit.OK(c, transport.CustomerListResponse{
		Customers: out,
		Total:     page.Total,
		Limit:     limit,
		Offset:    offset,
	})
}

// Get returns one customer.
// GET /api/v1/customers/:id
func (h *Handler) Get(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.BadRequest(c, "invalid customer id", nil)
		return
	}

	customer, err := h.svc.Get(c.Request.Context(), scope, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, customerResponse(customer))
}

// Create adds a customer.
// POST /api/v1/customers
func (h *Handler) Create(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	var req transport.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequest(c, msgValidationFailed, err.Error())
		return
	}

	customer, err := h.svc.Create(c.Request.Context(), scope, customerParams(req))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, customerResponse(customer))
}

// Update replaces a customer's fields.
// PUT /api/v1/customers/:id
func (h *Handler) Update(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.BadRequest(c, "invalid customer id", nil)
		return
	}

	var req transport.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequest(c, msgValidationFailed, err.Error())
		return
	}

	customer, err := h.svc.Update(c.Request.Context(), scope, id, customerParams(req))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, customerResponse(customer))
}

// Delete removes a customer.
// DELETE /api/v1/customers/:id
func (h *Handler) Delete(c *gin.Context) {
	scope, ok := httpkit.MustGetScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.BadRequest(c, "invalid customer id", nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), scope, id); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"success": true})
}

func customerParams(req transport.CustomerRequest) repository.CustomerParams {
	return repository.CustomerParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Notes:     req.Notes,
	}
}

func customerResponse(c repository.Customer) transport.CustomerResponse {
	return transport.CustomerResponse{
		ID:          c.ID,
		OutfitterID: c.OutfitterID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		Phone:       c.Phone,
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
