package registration

import (
	"context"
	"errors"
	"fmt"

	"github.com/leafcart/storefront/internal/application/auditlog"
	domaccount "github.com/leafcart/storefront/internal/domain/account"
	domcustomer "github.com/leafcart/storefront/internal/domain/customer"
	"github.com/leafcart/storefront/internal/infrastructure/id"
	"github.com/leafcart/storefront/internal/observability"
	"github.com/leafcart/storefront/internal/observability/logctx"
)

const componentRegistration = "registration_service"

var ErrRepository = errors.New("registration: repository failure")

type Service struct {
	customers     domcustomer.Repository
	manufacturers domaccount.ManufacturerRepository
	users         domaccount.UserRepository
	authenticator domaccount.Authenticator
	activity      *auditlog.Logger
	idGen         id.Generator
	log           observability.Logger
}

func NewService(
	customers domcustomer.Repository,
	manufacturers domaccount.ManufacturerRepository,
	users domaccount.UserRepository,
	authenticator domaccount.Authenticator,
	activity *auditlog.Logger,
	idGen id.Generator,
	logger observability.Logger,
) *Service {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Service{
		customers:     customers,
		manufacturers: manufacturers,
		users:         users,
		authenticator: authenticator,
		activity:      activity,
		idGen:         idGen,
		log:           logger.With(observability.F("component", componentRegistration)),
	}
}

type RegisterCustomerInput struct {
	Name    string
	Email   string
	Address string
}

func (s *Service) RegisterCustomer(ctx context.Context, input RegisterCustomerInput) (*domcustomer.Customer, error) {
	logger := logctx.FromOr(ctx, s.log)

	entity, err := domcustomer.New(s.idGen.NewID(), input.Name, input.Email, input.Address)
	if err != nil {
		return nil, err
	}

	if err := s.customers.Insert(ctx, entity); err != nil {
		logger.Error("customer_insert_failed",
			observability.F("customer_id", entity.ID),
			observability.F("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %w", ErrRepository, err)
	}

	s.activity.Log(ctx, entity.ID, "Customer registered")
	logger.Info("customer_registered", observability.F("customer_id", entity.ID))
	return entity, nil
}

type RegisterManufacturerInput struct {
	Name    string
	Email   string
	Company string
}

func (s *Service) RegisterManufacturer(ctx context.Context, input RegisterManufacturerInput) (*domaccount.Manufacturer, error) {
	logger := logctx.FromOr(ctx, s.log)

	entity, err := domaccount.NewManufacturer(s.idGen.NewID(), input.Name, input.Email, input.Company)
	if err != nil {
		return nil, err
	}

	if err := s.manufacturers.Insert(ctx, entity); err != nil {
		logger.Error("manufacturer_insert_failed",
			observability.F("manufacturer_id", entity.ID),
			observability.F("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %w", ErrRepository, err)
	}

	// Logged under the manufacturer's own id so the audit append always has
	// a valid user reference.
	s.activity.Log(ctx, entity.ID, "Manufacturer registered")
	logger.Info("manufacturer_registered", observability.F("manufacturer_id", entity.ID))
	return entity, nil
}

type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
}

// RegisterUser creates the credential with the external auth service first;
// a duplicate email surfaces as account.ErrEmailTaken and nothing is stored.
func (s *Service) RegisterUser(ctx context.Context, input RegisterUserInput) (*domaccount.User, error) {
	logger := logctx.FromOr(ctx, s.log)

	if input.Name == "" {
		return nil, domaccount.ErrNameRequired
	}

	credentialID, err := s.authenticator.CreateCredential(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	entity, err := domaccount.NewUser(s.idGen.NewID(), input.Name, input.Email, credentialID)
	if err != nil {
		return nil, err
	}

	if err := s.users.Insert(ctx, entity); err != nil {
		logger.Error("user_insert_failed",
			observability.F("user_id", entity.ID),
			observability.F("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %w", ErrRepository, err)
	}

	s.activity.Log(ctx, entity.ID, "User registered")
	logger.Info("user_registered", observability.F("user_id", entity.ID))
	return entity, nil
}
