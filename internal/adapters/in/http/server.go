// Package http exposes the order lifecycle over a REST API. Command
// outcomes map onto status codes: a rejected transition is a conflict, an
// unknown order is not found, and a change that persisted but whose event
// never reached the broker is a bad gateway with the state kept.
package http

import (
	"errors"
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler   commands.CreateOrderCommandHandler
	processOrderHandler  commands.ProcessOrderCommandHandler
	shipOrderHandler     commands.ShipOrderCommandHandler
	completeOrderHandler commands.CompleteOrderCommandHandler
	cancelOrderHandler   commands.CancelOrderCommandHandler

	getOrderByIDHandler queries.GetOrderByIDQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	processOrderHandler commands.ProcessOrderCommandHandler,
	shipOrderHandler commands.ShipOrderCommandHandler,
	completeOrderHandler commands.CompleteOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrderByIDHandler queries.GetOrderByIDQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:   createOrderHandler,
		processOrderHandler:  processOrderHandler,
		shipOrderHandler:     shipOrderHandler,
		completeOrderHandler: completeOrderHandler,
		cancelOrderHandler:   cancelOrderHandler,
		getOrderByIDHandler:  getOrderByIDHandler,
	}
}

// RegisterRoutes binds all order endpoints onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/process", s.ProcessOrder)
	api.POST("/orders/:id/ship", s.ShipOrder)
	api.POST("/orders/:id/complete", s.CompleteOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)

	e.GET("/health", s.Health)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - places a new order in Pending status.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	items := make([]commands.CreateOrderItem, 0, len(request.Items))
	for _, item := range request.Items {
		items = append(items, commands.CreateOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, request.CustomerID, items)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	outcome, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if !outcome.Succeeded() {
		return s.respondOutcome(ctx, outcome, err, "create")
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// ProcessOrder handles POST /api/v1/orders/:id/process.
func (s *Server) ProcessOrder(ctx echo.Context) error {
	orderID, err := s.orderID(ctx)
	if err != nil {
		return s.invalidID(ctx)
	}

	cmd, err := commands.NewProcessOrderCommand(orderID)
	if err != nil {
		return s.invalidID(ctx)
	}

	outcome, err := s.processOrderHandler.Handle(ctx.Request().Context(), cmd)
	return s.respondOutcome(ctx, outcome, err, "process")
}

// ShipOrder handles POST /api/v1/orders/:id/ship. The body is optional; the
// tracking number is stored on the order when present.
func (s *Server) ShipOrder(ctx echo.Context) error {
	orderID, err := s.orderID(ctx)
	if err != nil {
		return s.invalidID(ctx)
	}

	var request ShipOrderRequest
	if ctx.Request().ContentLength > 0 {
		if err = ctx.Bind(&request); err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid request body",
			})
		}
	}

	cmd, err := commands.NewShipOrderCommand(orderID, request.TrackingNumber)
	if err != nil {
		return s.invalidID(ctx)
	}

	outcome, err := s.shipOrderHandler.Handle(ctx.Request().Context(), cmd)
	return s.respondOutcome(ctx, outcome, err, "ship")
}

// CompleteOrder handles POST /api/v1/orders/:id/complete.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	orderID, err := s.orderID(ctx)
	if err != nil {
		return s.invalidID(ctx)
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID)
	if err != nil {
		return s.invalidID(ctx)
	}

	outcome, err := s.completeOrderHandler.Handle(ctx.Request().Context(), cmd)
	return s.respondOutcome(ctx, outcome, err, "complete")
}

// CancelOrder handles POST /api/v1/orders/:id/cancel. The body is optional;
// the reason is recorded on the order when present.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := s.orderID(ctx)
	if err != nil {
		return s.invalidID(ctx)
	}

	var request CancelOrderRequest
	if ctx.Request().ContentLength > 0 {
		if err = ctx.Bind(&request); err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid request body",
			})
		}
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, request.Reason)
	if err != nil {
		return s.invalidID(ctx)
	}

	outcome, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	return s.respondOutcome(ctx, outcome, err, "cancel")
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order with its items.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := s.orderID(ctx)
	if err != nil {
		return s.invalidID(ctx)
	}

	query, err := queries.NewGetOrderByIDQuery(orderID)
	if err != nil {
		return s.invalidID(ctx)
	}

	result, err := s.getOrderByIDHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve order",
		})
	}

	items := make([]OrderItem, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, OrderItem{
			ID:        item.ID.String(),
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		ID:                 result.ID.String(),
		CustomerID:         result.CustomerID,
		OrderDate:          result.OrderDate,
		Status:             result.Status,
		TotalAmount:        result.TotalAmount,
		TrackingNumber:     result.TrackingNumber,
		CancellationReason: result.CancellationReason,
		Items:              items,
	})
}

func (s *Server) orderID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

func (s *Server) invalidID(ctx echo.Context) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: "Invalid order id",
	})
}

// respondOutcome maps a lifecycle command outcome onto an HTTP response.
func (s *Server) respondOutcome(ctx echo.Context, outcome commands.Outcome, _ error, operation string) error {
	switch outcome {
	case commands.OutcomeSucceeded:
		return ctx.JSON(http.StatusOK, map[string]string{"result": "ok"})
	case commands.OutcomeNotFound:
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	case commands.OutcomeRejected:
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Order cannot " + operation + " from its current status",
		})
	case commands.OutcomePublishFailed:
		return ctx.JSON(http.StatusBadGateway, Error{
			Code:    http.StatusBadGateway,
			Message: "Order updated but event publication failed",
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to " + operation + " order",
		})
	}
}
