package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/leafcart/storefront/internal/application/auditlog"
	domcatalog "github.com/leafcart/storefront/internal/domain/catalog"
	domain "github.com/leafcart/storefront/internal/domain/customer"
	"github.com/leafcart/storefront/internal/observability"
	"github.com/leafcart/storefront/internal/observability/logctx"
)

const componentCart = "cart_service"

var (
	ErrCustomerRequired = errors.New("cart: customer id is required")
	ErrProductRequired  = errors.New("cart: product id is required")
	ErrRepository       = errors.New("cart: repository failure")
)

// Service maintains the per-customer cart. The persisted customer record is
// the single source of truth; there is no session-side cart state.
type Service struct {
	customers domain.Repository
	products  domcatalog.Repository
	activity  *auditlog.Logger
	log       observability.Logger
}

func NewService(customers domain.Repository, products domcatalog.Repository, activity *auditlog.Logger, logger observability.Logger) *Service {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Service{
		customers: customers,
		products:  products,
		activity:  activity,
		log:       logger.With(observability.F("component", componentCart)),
	}
}

// AddToCart merges quantity into the customer's cart entry for the product,
// then writes the whole cart back. The write is last-writer-wins: the
// backing store offers no optimistic version check, so two concurrent
// additions to the same customer can lose one update.
func (s *Service) AddToCart(ctx context.Context, customerID, productID string, quantity int) (domain.Cart, error) {
	logger := logctx.FromOr(ctx, s.log)

	if customerID == "" {
		return nil, ErrCustomerRequired
	}
	if productID == "" {
		return nil, ErrProductRequired
	}

	cust, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrRepository, err)
	}

	if cust.Cart == nil {
		cust.Cart = make(domain.Cart)
	}
	if err := cust.Cart.Add(productID, quantity); err != nil {
		return nil, err
	}

	if err := s.customers.Update(ctx, cust); err != nil {
		logger.Error("cart_update_failed",
			observability.F("customer_id", customerID),
			observability.F("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %w", ErrRepository, err)
	}

	s.activity.Log(ctx, customerID, "Added to cart")
	logger.Info("cart_item_added",
		observability.F("customer_id", customerID),
		observability.F("product_id", productID),
		observability.F("quantity", quantity),
	)
	return cust.Cart.Clone(), nil
}

// LineView is one cart entry enriched with its product for display.
type LineView struct {
	Product  domcatalog.Product
	Quantity int
}

// ShowCart reads the persisted cart and enriches each entry with its
// product. Blank product ids are skipped, and entries whose product no
// longer exists in the catalog are dropped without error.
func (s *Service) ShowCart(ctx context.Context, customerID string) ([]LineView, error) {
	logger := logctx.FromOr(ctx, s.log)

	if customerID == "" {
		return nil, ErrCustomerRequired
	}

	cust, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrRepository, err)
	}

	views := make([]LineView, 0, len(cust.Cart))
	for productID, entry := range cust.Cart {
		if productID == "" {
			continue
		}
		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, domcatalog.ErrNotFound) {
				logger.Debug("cart_entry_dropped_missing_product",
					observability.F("customer_id", customerID),
					observability.F("product_id", productID),
				)
				continue
			}
			return nil, fmt.Errorf("%w: %w", ErrRepository, err)
		}
		views = append(views, LineView{Product: *product, Quantity: entry.Quantity})
	}
	return views, nil
}

// Clear empties the customer's persisted cart. Used by checkout after a
// successful order placement.
func (s *Service) Clear(ctx context.Context, customerID string) error {
	if customerID == "" {
		return ErrCustomerRequired
	}

	cust, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrRepository, err)
	}

	cust.Cart = make(domain.Cart)
	if err := s.customers.Update(ctx, cust); err != nil {
		return fmt.Errorf("%w: %w", ErrRepository, err)
	}
	return nil
}
