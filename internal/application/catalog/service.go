package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/leafcart/storefront/internal/application/auditlog"
	domain "github.com/leafcart/storefront/internal/domain/catalog"
	"github.com/leafcart/storefront/internal/infrastructure/id"
	"github.com/leafcart/storefront/internal/observability"
	"github.com/leafcart/storefront/internal/observability/logctx"
)

const componentCatalog = "catalog_service"

var ErrRepository = errors.New("catalog: repository failure")

type Service struct {
	repo     domain.Repository
	idGen    id.Generator
	activity *auditlog.Logger
	log      observability.Logger
}

func NewService(repo domain.Repository, idGen id.Generator, activity *auditlog.Logger, logger observability.Logger) *Service {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Service{
		repo:     repo,
		idGen:    idGen,
		activity: activity,
		log:      logger.With(observability.F("component", componentCatalog)),
	}
}

type AddProductInput struct {
	Name           string
	PriceCents     int64
	ImageURL       string
	ManufacturerID string
}

func (s *Service) AddProduct(ctx context.Context, input AddProductInput) (*domain.Product, error) {
	logger := logctx.FromOr(ctx, s.log)

	entity, err := domain.New(s.idGen.NewID(), input.Name, input.PriceCents, input.ImageURL)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, entity); err != nil {
		logger.Error("product_insert_failed",
			observability.F("product_id", entity.ID),
			observability.F("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %w", ErrRepository, err)
	}

	s.activity.Log(ctx, input.ManufacturerID, "Product added")
	logger.Info("product_added",
		observability.F("product_id", entity.ID),
		observability.F("name", entity.Name),
	)
	return entity, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRepository, err)
	}
	return products, nil
}

func (s *Service) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	if productID == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.FindByID(ctx, productID)
}
