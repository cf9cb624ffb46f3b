package registration

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leafcart/storefront/internal/application/auditlog"
	domaccount "github.com/leafcart/storefront/internal/domain/account"
	domactivity "github.com/leafcart/storefront/internal/domain/activity"
	domcustomer "github.com/leafcart/storefront/internal/domain/customer"
	"github.com/leafcart/storefront/internal/infrastructure/auth"
	"github.com/leafcart/storefront/internal/infrastructure/id"
	"github.com/leafcart/storefront/internal/infrastructure/memory"
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

type fixture struct {
	service   *Service
	customers *memory.CustomerRepository
	users     *memory.UserRepository
	sink      *sinkStub
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	customers := memory.NewCustomerRepository()
	manufacturers := memory.NewManufacturerRepository()
	users := memory.NewUserRepository()
	sink := &sinkStub{}
	idGen := id.NewUUIDGenerator()
	service := NewService(customers, manufacturers, users,
		auth.NewStubAuthenticator(idGen),
		auditlog.NewLogger(sink, idGen), idGen, nil)
	return &fixture{service: service, customers: customers, users: users, sink: sink}
}

func TestRegisterCustomer(t *testing.T) {
	f := newFixture(t)

	cust, err := f.service.RegisterCustomer(context.Background(), RegisterCustomerInput{
		Name:    "Ada",
		Email:   "ada@example.com",
		Address: "1 Main St",
	})
	require.NoError(t, err)
	require.NotEmpty(t, cust.ID)
	assert.NotNil(t, cust.Cart)
	assert.Empty(t, cust.Cart)

	stored, err := f.customers.FindByID(context.Background(), cust.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", stored.Email)

	entries := f.sink.byLabel("Customer registered")
	require.Len(t, entries, 1)
	assert.Equal(t, cust.ID, entries[0].UserID)
}

func TestRegisterCustomer_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.RegisterCustomer(context.Background(), RegisterCustomerInput{Email: "a@b.c"})
	assert.ErrorIs(t, err, domcustomer.ErrNameRequired)

	_, err = f.service.RegisterCustomer(context.Background(), RegisterCustomerInput{Name: "Ada"})
	assert.ErrorIs(t, err, domcustomer.ErrEmailRequired)
}

func TestRegisterManufacturer(t *testing.T) {
	f := newFixture(t)

	mfr, err := f.service.RegisterManufacturer(context.Background(), RegisterManufacturerInput{
		Name:    "Brassworks",
		Email:   "sales@brassworks.example",
		Company: "Brassworks Ltd",
	})
	require.NoError(t, err)
	require.NotEmpty(t, mfr.ID)

	// The audit entry is attributed to the manufacturer's own id.
	entries := f.sink.byLabel("Manufacturer registered")
	require.Len(t, entries, 1)
	assert.Equal(t, mfr.ID, entries[0].UserID)
}

func TestRegisterUser(t *testing.T) {
	f := newFixture(t)

	user, err := f.service.RegisterUser(context.Background(), RegisterUserInput{
		Name:     "Grace",
		Email:    "grace@example.com",
		Password: "hunter2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.CredentialID)

	stored, err := f.users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.CredentialID, stored.CredentialID)

	assert.Len(t, f.sink.byLabel("User registered"), 1)
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	input := RegisterUserInput{Name: "Grace", Email: "grace@example.com", Password: "hunter2"}

	_, err := f.service.RegisterUser(context.Background(), input)
	require.NoError(t, err)

	input.Name = "Grace Again"
	_, err = f.service.RegisterUser(context.Background(), input)
	assert.ErrorIs(t, err, domaccount.ErrEmailTaken)

	// Only the first registration is stored or audited.
	assert.Len(t, f.sink.byLabel("User registered"), 1)
}

func TestRegisterUser_NameRequired(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.RegisterUser(context.Background(), RegisterUserInput{
		Email:    "grace@example.com",
		Password: "hunter2",
	})
	assert.ErrorIs(t, err, domaccount.ErrNameRequired)
}

func TestRegisterUser_PasswordRequired(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.RegisterUser(context.Background(), RegisterUserInput{
		Name:  "Grace",
		Email: "grace@example.com",
	})
	assert.ErrorIs(t, err, domaccount.ErrPasswordRequired)
	assert.Empty(t, f.sink.byLabel("User registered"))
}
