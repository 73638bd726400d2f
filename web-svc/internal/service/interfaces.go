package service

import (
	"context"

	"eatery-frontend/web-svc/internal/domain"
	"eatery-frontend/web-svc/internal/form"
)

type RestaurantAPI interface {
	GetRestaurant(ctx context.Context, restaurantID string) (*domain.Restaurant, error)
	GetMyRestaurant(ctx context.Context) (*domain.Restaurant, error)
	CreateMyRestaurant(ctx context.Context, payload *form.Payload) (*domain.Restaurant, error)
	UpdateMyRestaurant(ctx context.Context, payload *form.Payload) (*domain.Restaurant, error)
	GetMyRestaurantOrders(ctx context.Context) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)
}

type Notifier interface {
	Notify(ctx context.Context, notification domain.Notification)
}

type QRGenerator interface {
	Generate(orderID string) ([]byte, error)
}

type StorefrontInterface interface {
	RestaurantDetail(ctx context.Context, sessionID, restaurantID string) (*RestaurantDetail, error)
	AddToCart(ctx context.Context, sessionID, restaurantID, menuItemID string) (*RestaurantDetail, error)
	RemoveFromCart(ctx context.Context, sessionID, restaurantID, itemID string) (*RestaurantDetail, error)
	ClearCart(ctx context.Context, sessionID, restaurantID string) (*RestaurantDetail, error)
}

type DashboardInterface interface {
	MyRestaurant(ctx context.Context, cb Callbacks) (*domain.Restaurant, error)
	EditForm(ctx context.Context, cb Callbacks) (EditForm, error)
	CreateMyRestaurant(ctx context.Context, in form.RestaurantInput, cb Callbacks) (*domain.Restaurant, error)
	UpdateMyRestaurant(ctx context.Context, in form.RestaurantInput, cb Callbacks) (*domain.Restaurant, error)
	MyOrders(ctx context.Context, cb Callbacks) ([]OrderView, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string, cb Callbacks) (*OrderView, error)
	OrderQRCode(orderID string) ([]byte, error)
}

// MultiNotifier hands each notification to every notifier in turn.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, notification domain.Notification) {
	for _, n := range m {
		n.Notify(ctx, notification)
	}
}

var (
	_ StorefrontInterface = (*Storefront)(nil)
	_ DashboardInterface  = (*Dashboard)(nil)
)
