package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/leafcart/storefront/internal/application/auditlog"
	domcustomer "github.com/leafcart/storefront/internal/domain/customer"
	domain "github.com/leafcart/storefront/internal/domain/order"
	dompayment "github.com/leafcart/storefront/internal/domain/payment"
	"github.com/leafcart/storefront/internal/infrastructure/id"
	"github.com/leafcart/storefront/internal/observability"
	"github.com/leafcart/storefront/internal/observability/logctx"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	componentOrder    = "order_service"
	useCasePlaceOrder = "order.place"
	spanPlaceOrder    = "UC.PlaceOrder"
	activityPlaced    = "Order placed"
)

var (
	ErrNotFound   = domain.ErrNotFound
	ErrRepository = errors.New("order: repository failure")
)

// CartClearer empties a customer's persisted cart after checkout. The cart
// service is the production implementation.
type CartClearer interface {
	Clear(ctx context.Context, customerID string) error
}

// Service orchestrates order placement: charge, order record, line items,
// audit entry. The order and its line items are separate writes against the
// document store; a failed line-item write triggers compensating deletes so
// no partially-written order survives.
type Service struct {
	orders   domain.Repository
	items    domain.LineItemRepository
	carts    CartClearer
	gateway  dompayment.Gateway
	activity *auditlog.Logger
	idGen    id.Generator
	tel      observability.Telemetry

	log          observability.Logger
	reqCounter   observability.Counter   // usecase_requests_total{use_case,outcome}
	durHistogram observability.Histogram // usecase_duration_seconds{use_case}
}

func NewService(
	orders domain.Repository,
	items domain.LineItemRepository,
	carts CartClearer,
	gateway dompayment.Gateway,
	activity *auditlog.Logger,
	idGen id.Generator,
	tel observability.Telemetry,
) *Service {
	if tel == nil {
		tel = observability.NopTelemetry()
	}
	return &Service{
		orders:       orders,
		items:        items,
		carts:        carts,
		gateway:      gateway,
		activity:     activity,
		idGen:        idGen,
		tel:          tel,
		log:          tel.Logger().With(observability.F("component", componentOrder)),
		reqCounter:   tel.Counter(observability.MUsecaseRequests),
		durHistogram: tel.Histogram(observability.MUsecaseDuration),
	}
}

// CartLine is one checkout entry: the product, how many, and the unit price
// captured at checkout time.
type CartLine struct {
	ProductID  string
	Quantity   int
	PriceCents int64
}

type PlaceOrderInput struct {
	UserID       string
	Items        []CartLine
	AmountCents  int64
	PaymentToken string
}

type PlaceOrderResult struct {
	OrderID string
	Status  domain.Status
}

// PlaceOrder runs the order placement workflow.
func (s *Service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (_ *PlaceOrderResult, err error) {
	logger := logctx.FromOr(ctx, s.log).With(observability.F("use_case", useCasePlaceOrder))

	ctx, span := s.tel.Tracer().Start(ctx, spanPlaceOrder,
		attribute.String("use_case", useCasePlaceOrder),
		attribute.String("order.user_id", input.UserID),
		attribute.Int("order.line_count", len(input.Items)),
	)
	start := time.Now()
	outcome, statusText := "success", "OK"

	defer func() {
		lat := time.Since(start).Seconds()

		if span != nil {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, statusText)
			} else {
				span.SetStatus(codes.Ok, statusText)
			}
			span.End()
		}

		if s.reqCounter != nil {
			s.reqCounter.Add(1,
				observability.L("use_case", useCasePlaceOrder),
				observability.L("outcome", outcome),
			)
		}
		if s.durHistogram != nil {
			s.durHistogram.Observe(lat,
				observability.L("use_case", useCasePlaceOrder),
			)
		}

		fields := []observability.Field{
			observability.F("outcome", outcome),
			observability.F("status", statusText),
			observability.F("latency_seconds", lat),
		}
		if err != nil {
			fields = append(fields, observability.F("error", err.Error()))
		}
		logger.Info("use_case_done", fields...)
	}()

	if input.UserID == "" {
		outcome, statusText = "error", "USER_ID_REQUIRED"
		return nil, domain.ErrUserRequired
	}
	if len(input.Items) == 0 {
		outcome, statusText = "error", "CART_EMPTY"
		return nil, domain.ErrEmptyCart
	}
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			outcome, statusText = "error", "QUANTITY_INVALID"
			return nil, domain.ErrInvalidQuantity
		}
		if line.PriceCents < 0 {
			outcome, statusText = "error", "PRICE_INVALID"
			return nil, domain.ErrInvalidPrice
		}
	}

	// Charge first: a declined payment produces zero writes.
	if err := s.gateway.Charge(ctx, input.AmountCents, input.PaymentToken); err != nil {
		if errors.Is(err, dompayment.ErrDeclined) {
			outcome, statusText = "error", "PAYMENT_DECLINED"
			logger.Info("payment_declined", observability.F("user_id", input.UserID))
			return nil, err
		}
		outcome, statusText = "error", "PAYMENT_GATEWAY_ERROR"
		return nil, fmt.Errorf("order: charge: %w", err)
	}

	entity, err := domain.New(s.idGen.NewID(), input.UserID)
	if err != nil {
		outcome, statusText = "error", "DOMAIN_CONSTRUCTION_FAILED"
		return nil, err
	}

	if err := s.orders.Insert(ctx, entity); err != nil {
		outcome, statusText = "error", "ORDER_INSERT_FAILED"
		return nil, fmt.Errorf("%w: %w", ErrRepository, err)
	}

	for _, line := range input.Items {
		item, derr := domain.NewLineItem(entity.ID, line.ProductID, line.Quantity, line.PriceCents)
		if derr == nil {
			derr = s.items.Insert(ctx, item)
		}
		if derr != nil {
			// Compensate: no partially-written order may survive.
			s.compensate(ctx, entity.ID)
			outcome, statusText = "error", "LINE_ITEM_INSERT_FAILED"
			return nil, fmt.Errorf("%w: %w", ErrRepository, derr)
		}
	}

	s.activity.Log(ctx, input.UserID, activityPlaced)

	s.clearCart(ctx, input.UserID)

	span.SetAttributes(attribute.String("order.id", entity.ID))
	logger.Info("order_placed",
		observability.F("order_id", entity.ID),
		observability.F("user_id", input.UserID),
		observability.F("line_count", len(input.Items)),
	)
	return &PlaceOrderResult{OrderID: entity.ID, Status: entity.Status}, nil
}

// compensate deletes the line items and order record written so far. Errors
// here are logged; the original failure is what the caller sees.
func (s *Service) compensate(ctx context.Context, orderID string) {
	logger := logctx.FromOr(ctx, s.log)

	if err := s.items.DeleteByOrder(ctx, orderID); err != nil {
		logger.Error("compensation_line_items_failed",
			observability.F("order_id", orderID),
			observability.F("error", err.Error()),
		)
	}
	if err := s.orders.Delete(ctx, orderID); err != nil {
		logger.Error("compensation_order_failed",
			observability.F("order_id", orderID),
			observability.F("error", err.Error()),
		)
	}
	logger.Warn("order_compensated", observability.F("order_id", orderID))
}

// clearCart empties the customer's persisted cart after checkout. The order
// is already placed, so a failure here is logged and not surfaced. Users
// without a customer record have no cart to clear.
func (s *Service) clearCart(ctx context.Context, userID string) {
	if err := s.carts.Clear(ctx, userID); err != nil {
		if errors.Is(err, domcustomer.ErrNotFound) {
			return
		}
		logctx.FromOr(ctx, s.log).Warn("cart_clear_failed",
			observability.F("user_id", userID),
			observability.F("error", err.Error()),
		)
	}
}

// Confirmation loads the order and its line items for the confirmation view.
func (s *Service) Confirmation(ctx context.Context, orderID string) (*domain.Order, []*domain.LineItem, error) {
	if orderID == "" {
		return nil, nil, domain.ErrNotFound
	}
	entity, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %w", ErrRepository, err)
	}
	items, err := s.items.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrRepository, err)
	}
	return entity, items, nil
}
