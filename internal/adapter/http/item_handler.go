package http

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/YelzhanWeb/ordersystem/internal/adapter/logger"
	"github.com/YelzhanWeb/ordersystem/internal/interfaces"
)

type ItemHandler struct {
	service interfaces.ItemService
	logger  logger.Logger
}

func NewItemHandler(service interfaces.ItemService, log logger.Logger) *ItemHandler {
	return &ItemHandler{service: service, logger: log}
}

type CreateItemRequest struct {
	Name          string `json:"name"`
	Price         int    `json:"price"`
	StockQuantity int    `json:"stockQuantity"`
}

type ItemResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Price         int    `json:"price"`
	StockQuantity int    `json:"stockQuantity"`
}

func validateCreateItemRequest(req CreateItemRequest) []ValidationError {
	var errors []ValidationError

	name := strings.TrimSpace(req.Name)
	if n := utf8.RuneCountInString(name); n < 1 {
		errors = append(errors, ValidationError{Field: "name", Message: "name is required"})
	} else if n > 100 {
		errors = append(errors, ValidationError{Field: "name", Message: "name must not exceed 100 characters"})
	}
	if req.Price < 0 {
		errors = append(errors, ValidationError{Field: "price", Message: "price must not be negative"})
	}
	if req.StockQuantity < 0 {
		errors = append(errors, ValidationError{Field: "stockQuantity", Message: "stock quantity must not be negative"})
	}
	return errors
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	if errs := validateCreateItemRequest(req); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}

	id, err := h.service.SaveItem(r.Context(), interfaces.CreateItemCommand{
		Name:          req.Name,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		respondError(w, r, h.logger, "item_create_failed", err)
		return
	}
	respondJSON(w, http.StatusCreated, IDResponse{ID: id})
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.FindItems(r.Context())
	if err != nil {
		respondError(w, r, h.logger, "item_list_failed", err)
		return
	}

	resp := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, ItemResponse{
			ID:            it.ID,
			Name:          it.Name,
			Price:         it.Price,
			StockQuantity: it.StockQuantity,
		})
	}
	respondJSON(w, http.StatusOK, Result[[]ItemResponse]{Data: resp})
}
