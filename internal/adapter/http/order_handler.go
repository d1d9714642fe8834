package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/YelzhanWeb/ordersystem/internal/adapter/logger"
	"github.com/YelzhanWeb/ordersystem/internal/interfaces"
)

type OrderHandler struct {
	service interfaces.OrderService
	logger  logger.Logger
}

func NewOrderHandler(service interfaces.OrderService, log logger.Logger) *OrderHandler {
	return &OrderHandler{service: service, logger: log}
}

type PlaceOrderRequest struct {
	MemberID int64  `json:"memberId"`
	ItemID   int64  `json:"itemId"`
	Count    int    `json:"count"`
	Address  string `json:"address"`
}

func validatePlaceOrderRequest(req PlaceOrderRequest) []ValidationError {
	var errors []ValidationError

	if req.MemberID < 1 {
		errors = append(errors, ValidationError{Field: "memberId", Message: "member id is required"})
	}
	if req.ItemID < 1 {
		errors = append(errors, ValidationError{Field: "itemId", Message: "item id is required"})
	}
	if req.Count < 1 {
		errors = append(errors, ValidationError{Field: "count", Message: "count must be at least 1"})
	}
	if strings.TrimSpace(req.Address) == "" {
		errors = append(errors, ValidationError{Field: "address", Message: "address is required"})
	}
	return errors
}

func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	if errs := validatePlaceOrderRequest(req); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}

	id, err := h.service.Order(r.Context(), interfaces.PlaceOrderCommand{
		MemberID: req.MemberID,
		ItemID:   req.ItemID,
		Count:    req.Count,
		Address:  req.Address,
	})
	if err != nil {
		respondError(w, r, h.logger, "order_place_failed", err)
		return
	}
	respondJSON(w, http.StatusCreated, IDResponse{ID: id})
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, errs := pathID(r)
	if errs != nil {
		respondValidation(w, errs)
		return
	}

	order, err := h.service.FindOne(r.Context(), id)
	if err != nil {
		respondError(w, r, h.logger, "order_get_failed", err)
		return
	}
	view, err := toOrderView(order)
	if err != nil {
		respondError(w, r, h.logger, "order_mapping_failed", err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, errs := pathID(r)
	if errs != nil {
		respondValidation(w, errs)
		return
	}

	order, err := h.service.Cancel(r.Context(), id)
	if err != nil {
		respondError(w, r, h.logger, "order_cancel_failed", err)
		return
	}
	respondJSON(w, http.StatusOK, OrderStatusResponse{ID: order.ID, Status: order.Status})
}

// List answers GET /api/orders in the shape of the configured strategy.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	listing, err := h.service.List(r.Context())
	if err != nil {
		respondError(w, r, h.logger, "order_list_failed", err)
		return
	}

	switch listing.Strategy {
	case interfaces.ListProjection:
		respondJSON(w, http.StatusOK, toSummaryViews(listing.Summaries))
		return
	case interfaces.ListFullEntity, interfaces.ListEagerTouch:
	default:
		respondError(w, r, h.logger, "order_list_failed", fmt.Errorf("unknown order list strategy %q", listing.Strategy))
		return
	}

	views := make([]OrderView, 0, len(listing.Orders))
	for _, o := range listing.Orders {
		var (
			view OrderView
			err  error
		)
		if listing.Strategy == interfaces.ListFullEntity {
			view, err = toOrderView(o)
		} else {
			view, err = toOrderHeader(o)
		}
		if err != nil {
			respondError(w, r, h.logger, "order_mapping_failed", err)
			return
		}
		views = append(views, view)
	}
	respondJSON(w, http.StatusOK, views)
}

// ListSummaries answers GET /api/simple-orders from the single-query projection.
func (h *OrderHandler) ListSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.ListSummaries(r.Context())
	if err != nil {
		respondError(w, r, h.logger, "order_summaries_failed", err)
		return
	}
	respondJSON(w, http.StatusOK, toSummaryViews(summaries))
}
