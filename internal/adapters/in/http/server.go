// Package http exposes the delivery workflow over a REST API. Handlers
// translate JSON payloads into commands and queries, and map domain
// errors onto HTTP status codes. The acting staff member is identified
// by the X-Actor-ID and X-Actor-Role headers; authentication itself is
// handled upstream.
package http

import (
	"errors"
	"net/http"
	"time"

	"pharmadelivery/internal/core/application/usecases/commands"
	"pharmadelivery/internal/core/application/usecases/queries"
	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/order"
	"pharmadelivery/internal/core/domain/model/presence"
	"pharmadelivery/internal/core/domain/model/staff"
	"pharmadelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	transitionOrderHandler commands.TransitionOrderCommandHandler
	updatePresenceHandler  commands.UpdateDriverPresenceCommandHandler
	amendNoteHandler       commands.AmendHistoryNoteCommandHandler

	// Query handlers
	getActiveOrdersHandler       queries.GetActiveOrdersQueryHandler
	getOrderHistoryHandler       queries.GetOrderHistoryQueryHandler
	getDriverCurrentOrderHandler queries.GetDriverCurrentOrderQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	updatePresenceHandler commands.UpdateDriverPresenceCommandHandler,
	amendNoteHandler commands.AmendHistoryNoteCommandHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler,
	getDriverCurrentOrderHandler queries.GetDriverCurrentOrderQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:           createOrderHandler,
		transitionOrderHandler:       transitionOrderHandler,
		updatePresenceHandler:        updatePresenceHandler,
		amendNoteHandler:             amendNoteHandler,
		getActiveOrdersHandler:       getActiveOrdersHandler,
		getOrderHistoryHandler:       getOrderHistoryHandler,
		getDriverCurrentOrderHandler: getDriverCurrentOrderHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.POST("/orders/:id/status", s.TransitionOrder)
	api.GET("/orders/:id/history", s.GetOrderHistory)
	api.PATCH("/orders/:id/history/notes", s.AmendHistoryNote)
	api.POST("/driver/status", s.UpdateDriverPresence)
	api.GET("/driver/current-order", s.GetDriverCurrentOrder)
}

// ErrorResponse is the JSON body returned on failures.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the payload for registering a new order.
type CreateOrderRequest struct {
	InvoiceNumber       string                `json:"invoiceNumber"`
	SourceBranchID      string                `json:"sourceBranchId"`
	DeliveryType        string                `json:"deliveryType"`
	DestinationBranchID *string               `json:"destinationBranchId,omitempty"`
	Customer            *OrderCustomerPayload `json:"customer,omitempty"`
	Notes               string                `json:"notes,omitempty"`
	Items               []OrderItemPayload    `json:"items"`
}

// OrderCustomerPayload carries home-delivery recipient details.
type OrderCustomerPayload struct {
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Phone   string   `json:"phone"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// OrderItemPayload is one line item of an incoming order.
type OrderItemPayload struct {
	ProductName string `json:"productName"`
	ProductCode string `json:"productCode"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
}

// CreateOrderResponse returns the server-generated order identity.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// TransitionOrderRequest is the payload for a status change.
type TransitionOrderRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// AmendHistoryNoteRequest replaces the newest ledger note of an order.
type AmendHistoryNoteRequest struct {
	Notes string `json:"notes"`
}

// DriverPresenceRequest is a driver's availability report.
type DriverPresenceRequest struct {
	Status string   `json:"status"`
	Lat    *float64 `json:"lat,omitempty"`
	Lng    *float64 `json:"lng,omitempty"`
}

// OrderSummaryResponse is the read model returned by order queries.
type OrderSummaryResponse struct {
	ID                  string    `json:"id"`
	Code                string    `json:"code"`
	InvoiceNumber       string    `json:"invoiceNumber"`
	Status              string    `json:"status"`
	DeliveryType        string    `json:"deliveryType"`
	SourceBranchID      string    `json:"sourceBranchId"`
	DestinationBranchID *string   `json:"destinationBranchId,omitempty"`
	PharmacistID        *string   `json:"pharmacistId,omitempty"`
	DriverID            *string   `json:"driverId,omitempty"`
	TotalAmount         string    `json:"totalAmount"`
	CreatedAt           time.Time `json:"createdAt"`
}

// HistoryEntryResponse is one ledger entry. FromStatus is empty for the
// creation entry.
type HistoryEntryResponse struct {
	ID         string            `json:"id"`
	FromStatus string            `json:"fromStatus,omitempty"`
	ToStatus   string            `json:"toStatus"`
	ChangedBy  string            `json:"changedBy"`
	Notes      string            `json:"notes,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	ChangedAt  time.Time         `json:"changedAt"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - registers a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req CreateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	sourceBranchID, err := kernel.UUIDFromString(req.SourceBranchID)
	if err != nil {
		return errorJSON(ctx, errs.NewValueIsRequiredErrorWithCause("sourceBranchId", err))
	}

	deliveryType, err := order.DeliveryTypeFromString(req.DeliveryType)
	if err != nil {
		return errorJSON(ctx, err)
	}

	var destinationBranchID *kernel.UUID
	if req.DestinationBranchID != nil {
		id, idErr := kernel.UUIDFromString(*req.DestinationBranchID)
		if idErr != nil {
			return errorJSON(ctx, errs.NewValueIsInvalidErrorWithCause("destinationBranchId", idErr))
		}
		destinationBranchID = &id
	}

	var customer *commands.CreateOrderCustomer
	if req.Customer != nil {
		customer = &commands.CreateOrderCustomer{
			Name:    req.Customer.Name,
			Address: req.Customer.Address,
			Phone:   req.Customer.Phone,
			Lat:     req.Customer.Lat,
			Lng:     req.Customer.Lng,
		}
	}

	items := make([]commands.CreateOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		unitPrice, priceErr := decimal.NewFromString(item.UnitPrice)
		if priceErr != nil {
			return errorJSON(ctx, errs.NewValueIsInvalidErrorWithCause("unitPrice", priceErr))
		}
		items = append(items, commands.CreateOrderItem{
			ProductName: item.ProductName,
			ProductCode: item.ProductCode,
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, req.InvoiceNumber, sourceBranchID, deliveryType,
		destinationBranchID, customer, req.Notes, actor, items)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// TransitionOrder handles POST /api/v1/orders/:id/status - changes an
// order's status on behalf of the acting staff member.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var req TransitionOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, target, actor, req.Notes)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AmendHistoryNote handles PATCH /api/v1/orders/:id/history/notes -
// replaces the note on the newest ledger entry.
func (s *Server) AmendHistoryNote(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var req AmendHistoryNoteRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewAmendHistoryNoteCommand(orderID, actor, req.Notes)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.amendNoteHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetActiveOrders handles GET /api/v1/orders/active - lists every order
// that has not reached a terminal status.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	responses, err := s.getActiveOrdersHandler.Handle(
		ctx.Request().Context(), queries.NewGetActiveOrdersQuery())
	if err != nil {
		return errorJSON(ctx, err)
	}

	payload := make([]OrderSummaryResponse, len(responses))
	for i, resp := range responses {
		payload[i] = orderSummaryPayload(resp)
	}

	return ctx.JSON(http.StatusOK, payload)
}

// GetOrderHistory handles GET /api/v1/orders/:id/history - returns the
// status ledger, newest first.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	entries, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	payload := make([]HistoryEntryResponse, len(entries))
	for i, entry := range entries {
		payload[i] = HistoryEntryResponse{
			ID:         entry.ID.String(),
			FromStatus: entry.FromStatus,
			ToStatus:   entry.ToStatus,
			ChangedBy:  entry.ChangedBy.String(),
			Notes:      entry.Notes,
			Metadata:   entry.Metadata,
			ChangedAt:  entry.ChangedAt,
		}
	}

	return ctx.JSON(http.StatusOK, payload)
}

// UpdateDriverPresence handles POST /api/v1/driver/status - records a
// driver's availability report. The driver is the acting user.
func (s *Server) UpdateDriverPresence(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}
	if actor.Role() != staff.RoleDriver {
		return errorJSON(ctx, errs.NewForbiddenError(actor.Role().String(), "report presence"))
	}

	var req DriverPresenceRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	status, err := presence.StatusFromString(req.Status)
	if err != nil {
		return errorJSON(ctx, err)
	}

	var location *kernel.Location
	if req.Lat != nil && req.Lng != nil {
		l, locErr := kernel.NewLocation(*req.Lat, *req.Lng)
		if locErr != nil {
			return errorJSON(ctx, locErr)
		}
		location = &l
	}

	cmd, err := commands.NewUpdateDriverPresenceCommand(actor.ID(), status, location)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.updatePresenceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetDriverCurrentOrder handles GET /api/v1/driver/current-order -
// returns the order the acting driver is carrying.
func (s *Server) GetDriverCurrentOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}
	if actor.Role() != staff.RoleDriver {
		return errorJSON(ctx, errs.NewForbiddenError(actor.Role().String(), "view current order"))
	}

	query, err := queries.NewGetDriverCurrentOrderQuery(actor.ID())
	if err != nil {
		return errorJSON(ctx, err)
	}

	response, err := s.getDriverCurrentOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderSummaryPayload(*response))
}

func orderSummaryPayload(resp queries.GetActiveOrdersQueryResponse) OrderSummaryResponse {
	payload := OrderSummaryResponse{
		ID:             resp.ID.String(),
		Code:           resp.Code,
		InvoiceNumber:  resp.InvoiceNumber,
		Status:         resp.Status,
		DeliveryType:   resp.DeliveryType,
		SourceBranchID: resp.SourceBranchID.String(),
		TotalAmount:    resp.TotalAmount.StringFixed(2),
		CreatedAt:      resp.CreatedAt,
	}

	if resp.DestinationBranchID != nil {
		raw := resp.DestinationBranchID.String()
		payload.DestinationBranchID = &raw
	}
	if resp.PharmacistID != nil {
		raw := resp.PharmacistID.String()
		payload.PharmacistID = &raw
	}
	if resp.DriverID != nil {
		raw := resp.DriverID.String()
		payload.DriverID = &raw
	}

	return payload
}

// actorFromRequest identifies the acting staff member from the
// X-Actor-ID and X-Actor-Role headers.
func actorFromRequest(ctx echo.Context) (staff.Actor, error) {
	rawID := ctx.Request().Header.Get("X-Actor-ID")
	if rawID == "" {
		return staff.Actor{}, errs.NewValueIsRequiredError("X-Actor-ID header")
	}

	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return staff.Actor{}, errs.NewValueIsInvalidErrorWithCause("X-Actor-ID header", err)
	}

	role, err := staff.RoleFromString(ctx.Request().Header.Get("X-Actor-Role"))
	if err != nil {
		return staff.Actor{}, errs.NewValueIsInvalidErrorWithCause("X-Actor-Role header", err)
	}

	return staff.NewActor(id, role)
}

// errorJSON maps domain errors onto HTTP status codes.
func errorJSON(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	case errors.Is(err, errs.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrConflict):
		code = http.StatusConflict
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}
