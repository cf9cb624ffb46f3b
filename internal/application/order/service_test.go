package order

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leafcart/storefront/internal/application/auditlog"
	appcart "github.com/leafcart/storefront/internal/application/cart"
	domactivity "github.com/leafcart/storefront/internal/domain/activity"
	domcustomer "github.com/leafcart/storefront/internal/domain/customer"
	domain "github.com/leafcart/storefront/internal/domain/order"
	dompayment "github.com/leafcart/storefront/internal/domain/payment"
	"github.com/leafcart/storefront/internal/infrastructure/id"
	"github.com/leafcart/storefront/internal/infrastructure/memory"
	"github.com/leafcart/storefront/internal/infrastructure/payment"
)

type sinkStub struct {
	mu      sync.Mutex
	entries []domactivity.Entry
}

func (s *sinkStub) Enqueue(_ context.Context, entry domactivity.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
}

func (s *sinkStub) byLabel(label string) []domactivity.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domactivity.Entry
	for _, e := range s.entries {
		if e.Activity == label {
			out = append(out, e)
		}
	}
	return out
}

// flakyLineItemRepository delegates to the in-memory repository but fails
// after a configured number of successful inserts.
type flakyLineItemRepository struct {
	*memory.LineItemRepository
	mu        sync.Mutex
	succeed   int
	failWith  error
	attempted int
}

func (r *flakyLineItemRepository) Insert(ctx context.Context, item *domain.LineItem) error {
	r.mu.Lock()
	r.attempted++
	fail := r.attempted > r.succeed
	r.mu.Unlock()
	if fail {
		return r.failWith
	}
	return r.LineItemRepository.Insert(ctx, item)
}

type fixture struct {
	service   *Service
	orders    *memory.OrderRepository
	items     *memory.LineItemRepository
	customers *memory.CustomerRepository
	carts     *appcart.Service
	sink      *sinkStub
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	orders := memory.NewOrderRepository()
	items := memory.NewLineItemRepository()
	customers := memory.NewCustomerRepository()
	sink := &sinkStub{}
	idGen := id.NewUUIDGenerator()
	activity := auditlog.NewLogger(sink, idGen)
	carts := appcart.NewService(customers, memory.NewProductRepository(), activity, nil)
	service := NewService(orders, items, carts, payment.NewStubGateway(), activity, idGen, nil)
	return &fixture{
		service:   service,
		orders:    orders,
		items:     items,
		customers: customers,
		carts:     carts,
		sink:      sink,
	}
}

func placeInput(userID string, lines ...CartLine) PlaceOrderInput {
	var total int64
	for _, l := range lines {
		total += l.PriceCents * int64(l.Quantity)
	}
	return PlaceOrderInput{
		UserID:       userID,
		Items:        lines,
		AmountCents:  total,
		PaymentToken: "tok_ok",
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	f := newFixture(t)

	result, err := f.service.PlaceOrder(context.Background(), placeInput("u1",
		CartLine{ProductID: "p1", Quantity: 2, PriceCents: 500},
		CartLine{ProductID: "p2", Quantity: 1, PriceCents: 1250},
	))
	require.NoError(t, err)
	require.NotEmpty(t, result.OrderID)
	assert.Equal(t, domain.StatusPaid, result.Status)

	stored, err := f.orders.FindByID(context.Background(), result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "u1", stored.UserID)
	assert.Equal(t, domain.StatusPaid, stored.Status)
	assert.False(t, stored.OrderDate.IsZero())

	lines, err := f.items.ListByOrder(context.Background(), result.OrderID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Equal(t, result.OrderID, line.OrderID)
	}

	assert.Len(t, f.sink.byLabel("Order placed"), 1)
}

func TestPlaceOrder_SingleLine(t *testing.T) {
	f := newFixture(t)

	result, err := f.service.PlaceOrder(context.Background(), placeInput("u1",
		CartLine{ProductID: "p1", Quantity: 1, PriceCents: 1000},
	))
	require.NoError(t, err)

	lines, err := f.items.ListByOrder(context.Background(), result.OrderID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, int64(1000), lines[0].PriceEachCents)
}

func TestPlaceOrder_DeclinedPaymentWritesNothing(t *testing.T) {
	f := newFixture(t)

	input := placeInput("u1", CartLine{ProductID: "p1", Quantity: 1, PriceCents: 1000})
	input.PaymentToken = payment.DeclineToken

	_, err := f.service.PlaceOrder(context.Background(), input)
	assert.ErrorIs(t, err, dompayment.ErrDeclined)
	assert.Zero(t, f.orders.Count())
	assert.Zero(t, f.items.Count())
	assert.Empty(t, f.sink.byLabel("Order placed"))
}

func TestPlaceOrder_Validation(t *testing.T) {
	f := newFixture(t)
	line := CartLine{ProductID: "p1", Quantity: 1, PriceCents: 1000}

	_, err := f.service.PlaceOrder(context.Background(), placeInput("", line))
	assert.ErrorIs(t, err, domain.ErrUserRequired)

	_, err = f.service.PlaceOrder(context.Background(), placeInput("u1"))
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	_, err = f.service.PlaceOrder(context.Background(), placeInput("u1",
		CartLine{ProductID: "p1", Quantity: 0, PriceCents: 1000}))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	bad := placeInput("u1", CartLine{ProductID: "p1", Quantity: 1, PriceCents: -1})
	bad.AmountCents = 1000
	_, err = f.service.PlaceOrder(context.Background(), bad)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	assert.Zero(t, f.orders.Count())
	assert.Zero(t, f.items.Count())
}

func TestPlaceOrder_LineItemFailureCompensates(t *testing.T) {
	f := newFixture(t)
	storeErr := errors.New("write timeout")
	flaky := &flakyLineItemRepository{
		LineItemRepository: f.items,
		succeed:            1,
		failWith:           storeErr,
	}
	idGen := id.NewUUIDGenerator()
	service := NewService(f.orders, flaky, f.carts, payment.NewStubGateway(),
		auditlog.NewLogger(f.sink, idGen), idGen, nil)

	_, err := service.PlaceOrder(context.Background(), placeInput("u1",
		CartLine{ProductID: "p1", Quantity: 1, PriceCents: 500},
		CartLine{ProductID: "p2", Quantity: 1, PriceCents: 700},
	))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRepository)
	assert.ErrorIs(t, err, storeErr)

	// The first line item and the order record are rolled back.
	assert.Zero(t, f.orders.Count())
	assert.Zero(t, f.items.Count())
	assert.Empty(t, f.sink.byLabel("Order placed"))
}

func TestPlaceOrder_ClearsCustomerCart(t *testing.T) {
	f := newFixture(t)
	cust, err := domcustomer.New("u1", "Ada", "ada@example.com", "1 Main St")
	require.NoError(t, err)
	require.NoError(t, cust.Cart.Add("p1", 2))
	require.NoError(t, f.customers.Insert(context.Background(), cust))

	_, err = f.service.PlaceOrder(context.Background(), placeInput("u1",
		CartLine{ProductID: "p1", Quantity: 2, PriceCents: 500}))
	require.NoError(t, err)

	stored, err := f.customers.FindByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, stored.Cart)
}

func TestPlaceOrder_UnknownCustomerStillSucceeds(t *testing.T) {
	// Users without a customer record can order; there is no cart to clear.
	f := newFixture(t)

	result, err := f.service.PlaceOrder(context.Background(), placeInput("u-guest",
		CartLine{ProductID: "p1", Quantity: 1, PriceCents: 500}))
	require.NoError(t, err)
	assert.Equal(t, 1, f.orders.Count())
	assert.NotEmpty(t, result.OrderID)
}

func TestPlaceOrder_NoAuditSinkStillSucceeds(t *testing.T) {
	f := newFixture(t)
	idGen := id.NewUUIDGenerator()
	service := NewService(f.orders, f.items, f.carts, payment.NewStubGateway(),
		auditlog.NewLogger(nil, idGen), idGen, nil)

	result, err := service.PlaceOrder(context.Background(), placeInput("u1",
		CartLine{ProductID: "p1", Quantity: 1, PriceCents: 500}))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, result.Status)
}

func TestConfirmation(t *testing.T) {
	f := newFixture(t)

	result, err := f.service.PlaceOrder(context.Background(), placeInput("u1",
		CartLine{ProductID: "p1", Quantity: 3, PriceCents: 250}))
	require.NoError(t, err)

	entity, lines, err := f.service.Confirmation(context.Background(), result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, result.OrderID, entity.ID)
	assert.Equal(t, "u1", entity.UserID)
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestConfirmation_NotFound(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.service.Confirmation(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = f.service.Confirmation(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
