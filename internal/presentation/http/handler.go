package httppresentation

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	appcart "github.com/leafcart/storefront/internal/application/cart"
	appcatalog "github.com/leafcart/storefront/internal/application/catalog"
	apporder "github.com/leafcart/storefront/internal/application/order"
	appregistration "github.com/leafcart/storefront/internal/application/registration"
	domcatalog "github.com/leafcart/storefront/internal/domain/catalog"
	domcustomer "github.com/leafcart/storefront/internal/domain/customer"
	domorder "github.com/leafcart/storefront/internal/domain/order"
	"github.com/leafcart/storefront/internal/observability"
)

const componentHTTPHandler = "http_server"

var errMismatchedLines = errors.New("product_id, quantity, and price fields must align")

type Handler struct {
	catalogService      *appcatalog.Service
	cartService         *appcart.Service
	orderService        *apporder.Service
	registrationService *appregistration.Service
	sessions            *SessionManager
	log                 observability.Logger
	tel                 observability.Telemetry
}

func NewHandler(
	catalogSvc *appcatalog.Service,
	cartSvc *appcart.Service,
	orderSvc *apporder.Service,
	registrationSvc *appregistration.Service,
	sessions *SessionManager,
	logger observability.Logger,
	tel observability.Telemetry,
) *Handler {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Handler{
		catalogService:      catalogSvc,
		cartService:         cartSvc,
		orderService:        orderSvc,
		registrationService: registrationSvc,
		sessions:            sessions,
		log:                 logger.With(observability.F("component", componentHTTPHandler)),
		tel:                 tel,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(ObservabilityMiddleware(h.log, h.tel))

	r.Get("/", h.handleHome)
	r.Get("/shop", h.handleShop)
	r.Get("/register", h.handleRegisterForm)
	r.Post("/register", h.handleRegisterUser)
	r.Post("/register_manufacturer", h.handleRegisterManufacturer)
	r.Get("/add_product_form", h.handleAddProductForm)
	r.Post("/add_product", h.handleAddProduct)
	r.Get("/register_customer", h.handleRegisterCustomerForm)
	r.Post("/register_customer", h.handleRegisterCustomer)
	r.Post("/place_order", h.handlePlaceOrder)
	r.Get("/order_confirmation/{order_id}", h.handleOrderConfirmation)
	r.Post("/add_to_cart", h.handleAddToCart)
	r.Get("/cart", h.handleCart)
	r.Get("/health", h.handleHealth)

	return r
}

func (h *Handler) handleHome(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"service": "storefront"})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type productResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	ImageURL   string `json:"image_url"`
}

func toProductResponse(p *domcatalog.Product) productResponse {
	return productResponse{
		ID:         p.ID,
		Name:       p.Name,
		PriceCents: p.PriceCents,
		ImageURL:   p.ImageURL,
	}
}

func (h *Handler) handleShop(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.ListProducts(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	respondJSON(w, http.StatusOK, map[string]any{"products": out})
}

func (h *Handler) handleAddProductForm(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"fields": []string{"name", "price", "image_url", "manufacturer_id"},
	})
}

func (h *Handler) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_form", err)
		return
	}
	priceCents, err := parseMoneyCents(r.PostFormValue("price"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_price", err)
		return
	}

	product, err := h.catalogService.AddProduct(r.Context(), appcatalog.AddProductInput{
		Name:           r.PostFormValue("name"),
		PriceCents:     priceCents,
		ImageURL:       r.PostFormValue("image_url"),
		ManufacturerID: r.PostFormValue("manufacturer_id"),
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toProductResponse(product))
}

func (h *Handler) handleRegisterForm(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"fields": []string{"name", "email", "password"},
	})
}

func (h *Handler) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_form", err)
		return
	}
	user, err := h.registrationService.RegisterUser(r.Context(), appregistration.RegisterUserInput{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"user_id": user.ID})
}

func (h *Handler) handleRegisterManufacturer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_form", err)
		return
	}
	manufacturer, err := h.registrationService.RegisterManufacturer(r.Context(), appregistration.RegisterManufacturerInput{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Company: r.PostFormValue("company"),
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"manufacturer_id": manufacturer.ID})
}

func (h *Handler) handleRegisterCustomerForm(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"fields": []string{"name", "email", "address"},
	})
}

func (h *Handler) handleRegisterCustomer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_form", err)
		return
	}
	cust, err := h.registrationService.RegisterCustomer(r.Context(), appregistration.RegisterCustomerInput{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Address: r.PostFormValue("address"),
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if h.sessions != nil {
		h.sessions.Set(w, cust.ID)
	}
	respondJSON(w, http.StatusCreated, map[string]string{"customer_id": cust.ID})
}

type cartEntryResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func cartToResponse(c domcustomer.Cart) []cartEntryResponse {
	out := make([]cartEntryResponse, 0, len(c))
	for productID, entry := range c {
		out = append(out, cartEntryResponse{ProductID: productID, Quantity: entry.Quantity})
	}
	return out
}

func (h *Handler) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_form", err)
		return
	}
	customerID := r.PostFormValue("customer_id")
	if customerID == "" {
		customerID, _ = h.customerFromSession(r)
	}
	quantity, err := strconv.Atoi(r.PostFormValue("quantity"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_quantity", err)
		return
	}

	updated, err := h.cartService.AddToCart(r.Context(), customerID, r.PostFormValue("product_id"), quantity)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"cart": cartToResponse(updated)})
}

type cartLineResponse struct {
	Product  productResponse `json:"product"`
	Quantity int             `json:"quantity"`
}

func (h *Handler) handleCart(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customerFromSession(r)
	if !ok {
		customerID = r.URL.Query().Get("customer_id")
	}

	lines, err := h.cartService.ShowCart(r.Context(), customerID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	out := make([]cartLineResponse, 0, len(lines))
	for _, line := range lines {
		out = append(out, cartLineResponse{
			Product:  toProductResponse(&line.Product),
			Quantity: line.Quantity,
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (h *Handler) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_form", err)
		return
	}
	userID := r.PostFormValue("user_id")
	if userID == "" {
		userID, _ = h.customerFromSession(r)
	}

	productIDs := r.PostForm["product_id"]
	quantities := r.PostForm["quantity"]
	prices := r.PostForm["price"]
	if len(productIDs) != len(quantities) || len(productIDs) != len(prices) {
		respondError(w, http.StatusBadRequest, "invalid_cart", errMismatchedLines)
		return
	}

	items := make([]apporder.CartLine, 0, len(productIDs))
	for i := range productIDs {
		quantity, err := strconv.Atoi(quantities[i])
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_quantity", err)
			return
		}
		priceCents, err := parseMoneyCents(prices[i])
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_price", err)
			return
		}
		items = append(items, apporder.CartLine{
			ProductID:  productIDs[i],
			Quantity:   quantity,
			PriceCents: priceCents,
		})
	}

	amountCents, err := parseMoneyCents(r.PostFormValue("amount"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_amount", err)
		return
	}

	result, err := h.orderService.PlaceOrder(r.Context(), apporder.PlaceOrderInput{
		UserID:       userID,
		Items:        items,
		AmountCents:  amountCents,
		PaymentToken: r.PostFormValue("payment_token"),
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{
		"order_id": result.OrderID,
		"status":   string(result.Status),
	})
}

type lineItemResponse struct {
	ProductID      string `json:"product_id"`
	Quantity       int    `json:"quantity"`
	PriceEachCents int64  `json:"price_each_cents"`
}

type orderConfirmationResponse struct {
	OrderID   string             `json:"order_id"`
	UserID    string             `json:"user_id"`
	Status    domorder.Status    `json:"status"`
	OrderDate time.Time          `json:"order_date"`
	Items     []lineItemResponse `json:"items"`
}

func (h *Handler) handleOrderConfirmation(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")

	entity, items, err := h.orderService.Confirmation(r.Context(), orderID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	out := orderConfirmationResponse{
		OrderID:   entity.ID,
		UserID:    entity.UserID,
		Status:    entity.Status,
		OrderDate: entity.OrderDate,
		Items:     make([]lineItemResponse, 0, len(items)),
	}
	for _, item := range items {
		out.Items = append(out.Items, lineItemResponse{
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			PriceEachCents: item.PriceEachCents,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) customerFromSession(r *http.Request) (string, bool) {
	if h.sessions == nil {
		return "", false
	}
	return h.sessions.Get(r)
}

// parseMoneyCents converts a decimal form value like "10.00" to cents.
func parseMoneyCents(s string) (int64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int64(math.Round(f * 100)), nil
}
