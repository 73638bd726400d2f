package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eatery-frontend/web-svc/internal/auth"
	"eatery-frontend/web-svc/internal/domain"
	"eatery-frontend/web-svc/internal/form"

	"go.uber.org/zap"
)

var ErrMissingOrderID = errors.New("order id is required")

// Callbacks is the continuation of a dashboard operation. Exactly one of
// the two runs per call that reaches the upstream API; validation
// failures and in-flight refusals run neither.
type Callbacks struct {
	OnSuccess func(domain.Notification)
	OnError   func(domain.Notification, error)
}

// OrderView is an order as the owner's order list shows it.
type OrderView struct {
	domain.Order
	StatusInfo domain.StatusInfo `json:"statusInfo"`
}

type outcome struct {
	operation string
	success   string
	failure   string
}

var (
	fetchRestaurant  = outcome{operation: "fetch restaurant", failure: "Failed to fetch restaurant"}
	createRestaurant = outcome{operation: "create restaurant", success: "Restaurant created successfully", failure: "Failed to create restaurant"}
	updateRestaurant = outcome{operation: "update restaurant", success: "Restaurant updated successfully", failure: "Failed to update restaurant"}
	fetchOrders      = outcome{operation: "fetch orders", failure: "Failed to fetch orders"}
	updateOrder      = outcome{operation: "update order", success: "Order updated successfully", failure: "Failed to update order"}
)

// Dashboard runs the restaurant owner's operations. Mutations report both
// outcomes to the user; reads report only failures.
type Dashboard struct {
	api      RestaurantAPI
	notifier Notifier
	qr       QRGenerator
	logger   *zap.Logger
	inFlight *inFlight
	now      func() time.Time
}

func NewDashboard(api RestaurantAPI, notifier Notifier, qr QRGenerator, logger *zap.Logger) *Dashboard {
	return &Dashboard{
		api:      api,
		notifier: notifier,
		qr:       qr,
		logger:   logger,
		inFlight: newInFlight(),
		now:      time.Now,
	}
}

func (d *Dashboard) MyRestaurant(ctx context.Context, cb Callbacks) (*domain.Restaurant, error) {
	restaurant, err := d.api.GetMyRestaurant(ctx)
	d.finish(ctx, fetchRestaurant, err, cb)
	if err != nil {
		return nil, err
	}
	return restaurant, nil
}

// EditForm is the restaurant form the dashboard opens with: seeded from the
// owner's restaurant when one exists, blank otherwise.
type EditForm struct {
	Editing bool            `json:"editing"`
	Form    form.Restaurant `json:"form"`
}

// EditForm falls back to a blank form when the restaurant cannot be
// fetched; the returned error is the fetch failure.
func (d *Dashboard) EditForm(ctx context.Context, cb Callbacks) (EditForm, error) {
	restaurant, err := d.MyRestaurant(ctx, cb)
	if err != nil {
		return EditForm{Form: form.NewForm()}, err
	}
	return EditForm{Editing: true, Form: form.Seed(restaurant)}, nil
}

func (d *Dashboard) CreateMyRestaurant(ctx context.Context, in form.RestaurantInput, cb Callbacks) (*domain.Restaurant, error) {
	return d.saveRestaurant(ctx, createRestaurant, form.Create, in, cb, d.api.CreateMyRestaurant)
}

func (d *Dashboard) UpdateMyRestaurant(ctx context.Context, in form.RestaurantInput, cb Callbacks) (*domain.Restaurant, error) {
	return d.saveRestaurant(ctx, updateRestaurant, form.Edit, in, cb, d.api.UpdateMyRestaurant)
}

func (d *Dashboard) saveRestaurant(
	ctx context.Context,
	o outcome,
	mode form.Mode,
	in form.RestaurantInput,
	cb Callbacks,
	send func(context.Context, *form.Payload) (*domain.Restaurant, error),
) (*domain.Restaurant, error) {
	valid, err := form.Validate(in, mode)
	if err != nil {
		return nil, err
	}

	release, err := d.inFlight.acquire("restaurant:" + auth.Owner(ctx))
	if err != nil {
		return nil, err
	}
	defer release()

	restaurant, err := send(ctx, form.BuildPayload(valid))
	d.finish(ctx, o, err, cb)
	if err != nil {
		return nil, err
	}
	return restaurant, nil
}

func (d *Dashboard) MyOrders(ctx context.Context, cb Callbacks) ([]OrderView, error) {
	orders, err := d.api.GetMyRestaurantOrders(ctx)
	d.finish(ctx, fetchOrders, err, cb)
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, view(order))
	}
	return views, nil
}

// UpdateOrderStatus rejects statuses outside the known set before any
// network call is made.
func (d *Dashboard) UpdateOrderStatus(ctx context.Context, orderID, status string, cb Callbacks) (*OrderView, error) {
	if orderID == "" {
		return nil, ErrMissingOrderID
	}
	next, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	release, err := d.inFlight.acquire("order:" + orderID)
	if err != nil {
		return nil, err
	}
	defer release()

	order, err := d.api.UpdateOrderStatus(ctx, orderID, next)
	d.finish(ctx, updateOrder, err, cb)
	if err != nil {
		return nil, err
	}

	v := view(*order)
	return &v, nil
}

func (d *Dashboard) OrderQRCode(orderID string) ([]byte, error) {
	if orderID == "" {
		return nil, ErrMissingOrderID
	}
	png, err := d.qr.Generate(orderID)
	if err != nil {
		return nil, fmt.Errorf("generate qr code for order %s: %w", orderID, err)
	}
	return png, nil
}

func (d *Dashboard) finish(ctx context.Context, o outcome, err error, cb Callbacks) {
	if err == nil && o.success == "" {
		return
	}

	n := domain.Notification{
		Kind:      domain.NotificationSuccess,
		Operation: o.operation,
		Message:   o.success,
		Subject:   auth.Subject(ctx),
		Timestamp: d.now(),
	}
	if err != nil {
		n.Kind = domain.NotificationError
		n.Message = o.failure
		d.logger.Warn("dashboard operation failed",
			zap.String("operation", o.operation),
			zap.Error(err))
	}

	if d.notifier != nil {
		d.notifier.Notify(ctx, n)
	}

	switch {
	case err != nil && cb.OnError != nil:
		cb.OnError(n, err)
	case err == nil && cb.OnSuccess != nil:
		cb.OnSuccess(n)
	}
}

func view(order domain.Order) OrderView {
	info, ok := domain.Describe(order.Status)
	if !ok {
		info = domain.StatusInfo{Value: order.Status, Label: string(order.Status)}
	}
	return OrderView{Order: order, StatusInfo: info}
}
