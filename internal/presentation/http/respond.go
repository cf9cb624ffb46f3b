package httppresentation

import (
	"encoding/json"
	"errors"
	"net/http"

	appcart "github.com/leafcart/storefront/internal/application/cart"
	appcatalog "github.com/leafcart/storefront/internal/application/catalog"
	apporder "github.com/leafcart/storefront/internal/application/order"
	appregistration "github.com/leafcart/storefront/internal/application/registration"
	domaccount "github.com/leafcart/storefront/internal/domain/account"
	domcatalog "github.com/leafcart/storefront/internal/domain/catalog"
	domcustomer "github.com/leafcart/storefront/internal/domain/customer"
	domorder "github.com/leafcart/storefront/internal/domain/order"
	dompayment "github.com/leafcart/storefront/internal/domain/payment"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, code string, err error) {
	respondJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}

// respondDomainError maps domain sentinels onto the response taxonomy:
// validation 400, not found 404, conflict 409, payment declined 402,
// anything else 500.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domcatalog.ErrNotFound),
		errors.Is(err, domcustomer.ErrNotFound),
		errors.Is(err, domorder.ErrNotFound),
		errors.Is(err, domaccount.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, dompayment.ErrDeclined):
		respondError(w, http.StatusPaymentRequired, "payment_declined", err)
	case errors.Is(err, domaccount.ErrEmailTaken),
		errors.Is(err, domorder.ErrConflict):
		respondError(w, http.StatusConflict, "conflict", err)
	case errors.Is(err, domcatalog.ErrNameRequired),
		errors.Is(err, domcatalog.ErrInvalidPrice),
		errors.Is(err, domcustomer.ErrNameRequired),
		errors.Is(err, domcustomer.ErrEmailRequired),
		errors.Is(err, domcustomer.ErrInvalidQuantity),
		errors.Is(err, domaccount.ErrNameRequired),
		errors.Is(err, domaccount.ErrEmailRequired),
		errors.Is(err, domaccount.ErrPasswordRequired),
		errors.Is(err, domorder.ErrUserRequired),
		errors.Is(err, domorder.ErrInvalidQuantity),
		errors.Is(err, domorder.ErrInvalidPrice),
		errors.Is(err, domorder.ErrEmptyCart),
		errors.Is(err, dompayment.ErrInvalidAmount),
		errors.Is(err, appcart.ErrCustomerRequired),
		errors.Is(err, appcart.ErrProductRequired):
		respondError(w, http.StatusBadRequest, "validation", err)
	case errors.Is(err, apporder.ErrRepository),
		errors.Is(err, appcart.ErrRepository),
		errors.Is(err, appcatalog.ErrRepository),
		errors.Is(err, appregistration.ErrRepository):
		respondError(w, http.StatusInternalServerError, "store_error", err)
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
