package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"eatery-frontend/web-svc/internal/auth"
	"eatery-frontend/web-svc/internal/cart"
	"eatery-frontend/web-svc/internal/client"
	"eatery-frontend/web-svc/internal/domain"
	"eatery-frontend/web-svc/internal/form"
	"eatery-frontend/web-svc/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	Storefront service.StorefrontInterface
	Dashboard  service.DashboardInterface
	Logger     *zap.Logger
}

func NewHandler(storefront service.StorefrontInterface, dashboard service.DashboardInterface, logger *zap.Logger) *Handler {
	return &Handler{
		Storefront: storefront,
		Dashboard:  dashboard,
		Logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/order-statuses", h.getOrderStatuses).Methods("GET")

	shop := r.PathPrefix("/api/restaurants/{restaurantId}").Subrouter()
	shop.Use(Sessions)
	shop.HandleFunc("", h.getRestaurantDetail).Methods("GET")
	shop.HandleFunc("/cart", h.getCart).Methods("GET")
	shop.HandleFunc("/cart", h.clearCart).Methods("DELETE")
	shop.HandleFunc("/cart/items", h.addCartItem).Methods("POST")
	shop.HandleFunc("/cart/items/{itemId}", h.removeCartItem).Methods("DELETE")

	r.HandleFunc("/api/my/restaurant", h.getMyRestaurant).Methods("GET")
	r.HandleFunc("/api/my/restaurant", h.createMyRestaurant).Methods("POST")
	r.HandleFunc("/api/my/restaurant", h.updateMyRestaurant).Methods("PUT")
	r.HandleFunc("/api/my/restaurant/form", h.getRestaurantForm).Methods("GET")
	r.HandleFunc("/api/my/restaurant/orders", h.getMyOrders).Methods("GET")
	r.HandleFunc("/api/my/restaurant/orders/{orderId}/status", h.updateOrderStatus).Methods("PATCH")
	r.HandleFunc("/api/my/restaurant/orders/{orderId}/qrcode", h.getOrderQRCode).Methods("GET")
}

type notificationView struct {
	Kind    domain.NotificationKind `json:"kind"`
	Message string                  `json:"message"`
}

type envelope struct {
	Data         interface{}       `json:"data,omitempty"`
	Notification *notificationView `json:"notification,omitempty"`
	Error        string            `json:"error,omitempty"`
	Errors       form.FieldErrors  `json:"errors,omitempty"`
}

type cartView struct {
	Cart    []domain.CartLine `json:"cart"`
	Summary cart.Summary      `json:"summary"`
}

// outcome collects the notification a dashboard operation produced.
type outcome struct {
	notification *notificationView
}

func (o *outcome) callbacks() service.Callbacks {
	set := func(n domain.Notification) {
		o.notification = &notificationView{Kind: n.Kind, Message: n.Message}
	}
	return service.Callbacks{
		OnSuccess: set,
		OnError:   func(n domain.Notification, _ error) { set(n) },
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, o *outcome) {
	body := envelope{Error: err.Error()}
	if o != nil {
		body.Notification = o.notification
	}

	var fieldErrs form.FieldErrors
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &fieldErrs):
		status = http.StatusUnprocessableEntity
		body.Error = ""
		body.Errors = fieldErrs
	case errors.Is(err, service.ErrInFlight):
		status = http.StatusConflict
	case errors.Is(err, client.ErrUnauthenticated), errors.Is(err, auth.ErrNoToken), errors.Is(err, auth.ErrTokenExpired):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrRestaurantNotFound), errors.Is(err, service.ErrMenuItemNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownStatus), errors.Is(err, service.ErrMissingOrderID), errors.Is(err, form.ErrMalformedForm):
		status = http.StatusBadRequest
	case errors.Is(err, client.ErrRequestFailed):
		status = http.StatusBadGateway
		body.Error = "Request failed"
		if body.Notification != nil {
			body.Error = body.Notification.Message
		}
	case errors.Is(err, cart.ErrCorruptSlot):
		body.Error = "Cart could not be read"
	}

	if status >= http.StatusInternalServerError {
		h.Logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	writeJSON(w, status, body)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "web-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getOrderStatuses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{Data: domain.Statuses()})
}

func (h *Handler) getRestaurantDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Storefront.RestaurantDetail(r.Context(), sessionID(r), mux.Vars(r)["restaurantId"])
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Data: detail})
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Storefront.RestaurantDetail(r.Context(), sessionID(r), mux.Vars(r)["restaurantId"])
	h.writeCart(w, r, detail, err)
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MenuItemID string `json:"menuItemId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MenuItemID == "" {
		writeJSON(w, http.StatusBadRequest, envelope{Error: "menuItemId is required"})
		return
	}
	detail, err := h.Storefront.AddToCart(r.Context(), sessionID(r), mux.Vars(r)["restaurantId"], req.MenuItemID)
	h.writeCart(w, r, detail, err)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	detail, err := h.Storefront.RemoveFromCart(r.Context(), sessionID(r), vars["restaurantId"], vars["itemId"])
	h.writeCart(w, r, detail, err)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Storefront.ClearCart(r.Context(), sessionID(r), mux.Vars(r)["restaurantId"])
	h.writeCart(w, r, detail, err)
}

func (h *Handler) writeCart(w http.ResponseWriter, r *http.Request, detail *service.RestaurantDetail, err error) {
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Data: cartView{Cart: detail.Cart, Summary: detail.Summary}})
}

func (h *Handler) getMyRestaurant(w http.ResponseWriter, r *http.Request) {
	o := &outcome{}
	restaurant, err := h.Dashboard.MyRestaurant(r.Context(), o.callbacks())
	if err != nil {
		h.writeError(w, r, err, o)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Data: map[string]interface{}{
		"restaurant": restaurant,
		"form":       form.Seed(restaurant),
	}})
}

// getRestaurantForm always answers with a usable form; a failed fetch
// yields the blank form plus the failure notification.
func (h *Handler) getRestaurantForm(w http.ResponseWriter, r *http.Request) {
	o := &outcome{}
	edit, err := h.Dashboard.EditForm(r.Context(), o.callbacks())
	if err != nil {
		h.Logger.Debug("serving blank restaurant form", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, envelope{Data: edit, Notification: o.notification})
}

func (h *Handler) createMyRestaurant(w http.ResponseWriter, r *http.Request) {
	h.saveRestaurant(w, r, http.StatusCreated, h.Dashboard.CreateMyRestaurant)
}

func (h *Handler) updateMyRestaurant(w http.ResponseWriter, r *http.Request) {
	h.saveRestaurant(w, r, http.StatusOK, h.Dashboard.UpdateMyRestaurant)
}

func (h *Handler) saveRestaurant(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	save func(ctx context.Context, in form.RestaurantInput, cb service.Callbacks) (*domain.Restaurant, error),
) {
	in, err := form.ParseMultipart(r)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}

	o := &outcome{}
	restaurant, err := save(r.Context(), in, o.callbacks())
	if err != nil {
		h.writeError(w, r, err, o)
		return
	}
	writeJSON(w, status, envelope{Data: restaurant, Notification: o.notification})
}

func (h *Handler) getMyOrders(w http.ResponseWriter, r *http.Request) {
	o := &outcome{}
	orders, err := h.Dashboard.MyOrders(r.Context(), o.callbacks())
	if err != nil {
		h.writeError(w, r, err, o)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Data: orders})
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Error: "invalid request body"})
		return
	}

	o := &outcome{}
	order, err := h.Dashboard.UpdateOrderStatus(r.Context(), mux.Vars(r)["orderId"], req.Status, o.callbacks())
	if err != nil {
		h.writeError(w, r, err, o)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Data: order, Notification: o.notification})
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.Dashboard.OrderQRCode(mux.Vars(r)["orderId"])
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
