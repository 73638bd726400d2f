package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"eatery-frontend/web-svc/internal/auth"
	"eatery-frontend/web-svc/internal/client"
	"eatery-frontend/web-svc/internal/domain"
	"eatery-frontend/web-svc/internal/form"
	"eatery-frontend/web-svc/internal/mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

type recorder struct {
	successes []domain.Notification
	failures  []domain.Notification
	errs      []error
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnSuccess: func(n domain.Notification) { r.successes = append(r.successes, n) },
		OnError: func(n domain.Notification, err error) {
			r.failures = append(r.failures, n)
			r.errs = append(r.errs, err)
		},
	}
}

func (r *recorder) calls() int {
	return len(r.successes) + len(r.failures)
}

func newDashboard(t *testing.T) (*Dashboard, *mocks.RestaurantAPI, *mocks.Notifier) {
	t.Helper()
	api := mocks.NewRestaurantAPI(t)
	notifier := mocks.NewNotifier(t)
	d := NewDashboard(api, notifier, DefaultQRGenerator{BaseURL: "https://eatery.example.com"}, zap.NewNop())
	d.now = func() time.Time { return fixedNow }
	return d, api, notifier
}

func ownerContext(t *testing.T) context.Context {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "auth0|owner"}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return auth.WithToken(context.Background(), token)
}

func validRestaurantInput() form.RestaurantInput {
	return form.RestaurantInput{
		RestaurantName:        "Luigi's",
		City:                  "Turin",
		Country:               "Italy",
		DeliveryPrice:         "2.99",
		EstimatedDeliveryTime: "30",
		Cuisines:              []string{"Pizza"},
		MenuItems:             []form.MenuItemInput{{Name: "Margherita", Price: "12"}},
		ImageFile:             &form.ImageFile{Filename: "front.png", ContentType: "image/png", Data: []byte("png")},
	}
}

func TestCreateMyRestaurant_Success(t *testing.T) {
	d, api, notifier := newDashboard(t)
	ctx := ownerContext(t)

	api.On("CreateMyRestaurant", mock.Anything, mock.MatchedBy(func(p *form.Payload) bool {
		price, _ := p.Value("deliveryPrice")
		item, _ := p.Value("menuItems[0][price]")
		return price == "299" && item == "1200" && p.Image != nil
	})).Return(&domain.Restaurant{ID: "r1"}, nil).Once()

	want := domain.Notification{
		Kind:      domain.NotificationSuccess,
		Operation: "create restaurant",
		Message:   "Restaurant created successfully",
		Subject:   "auth0|owner",
		Timestamp: fixedNow,
	}
	notifier.On("Notify", mock.Anything, want).Once()

	rec := &recorder{}
	restaurant, err := d.CreateMyRestaurant(ctx, validRestaurantInput(), rec.callbacks())
	require.NoError(t, err)
	assert.Equal(t, "r1", restaurant.ID)
	assert.Equal(t, []domain.Notification{want}, rec.successes)
	assert.Equal(t, 1, rec.calls())
}

func TestCreateMyRestaurant_Failure(t *testing.T) {
	d, api, notifier := newDashboard(t)

	api.On("CreateMyRestaurant", mock.Anything, mock.Anything).Return(nil, client.ErrRequestFailed).Once()
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n domain.Notification) bool {
		return n.Kind == domain.NotificationError && n.Message == "Failed to create restaurant"
	})).Once()

	rec := &recorder{}
	_, err := d.CreateMyRestaurant(ownerContext(t), validRestaurantInput(), rec.callbacks())
	assert.ErrorIs(t, err, client.ErrRequestFailed)
	require.Len(t, rec.failures, 1)
	assert.Equal(t, "Failed to create restaurant", rec.failures[0].Message)
	assert.ErrorIs(t, rec.errs[0], client.ErrRequestFailed)
	assert.Equal(t, 1, rec.calls())
}

func TestUpdateMyRestaurant_Messages(t *testing.T) {
	d, api, notifier := newDashboard(t)
	notifier.On("Notify", mock.Anything, mock.Anything)

	in := validRestaurantInput()
	in.ImageFile = nil
	in.ImageURL = "https://cdn.example.com/luigi.png"

	api.On("UpdateMyRestaurant", mock.Anything, mock.MatchedBy(func(p *form.Payload) bool {
		return p.Image == nil
	})).Return(&domain.Restaurant{ID: "r1"}, nil).Once()
	rec := &recorder{}
	_, err := d.UpdateMyRestaurant(ownerContext(t), in, rec.callbacks())
	require.NoError(t, err)
	require.Len(t, rec.successes, 1)
	assert.Equal(t, "Restaurant updated successfully", rec.successes[0].Message)

	api.On("UpdateMyRestaurant", mock.Anything, mock.Anything).Return(nil, client.ErrUnauthenticated).Once()
	rec = &recorder{}
	_, err = d.UpdateMyRestaurant(ownerContext(t), in, rec.callbacks())
	assert.Error(t, err)
	require.Len(t, rec.failures, 1)
	assert.Equal(t, "Failed to update restaurant", rec.failures[0].Message)
}

func TestCreateMyRestaurant_InvalidFormSkipsNetwork(t *testing.T) {
	d, _, _ := newDashboard(t)

	in := validRestaurantInput()
	in.Cuisines = nil

	rec := &recorder{}
	_, err := d.CreateMyRestaurant(ownerContext(t), in, rec.callbacks())

	var errs form.FieldErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "Please select at least one cuisine", errs["cuisines"])
	assert.Zero(t, rec.calls())
}

func TestMyRestaurant_NotifiesOnlyOnFailure(t *testing.T) {
	d, api, notifier := newDashboard(t)

	api.On("GetMyRestaurant", mock.Anything).Return(&domain.Restaurant{ID: "r1"}, nil).Once()
	rec := &recorder{}
	restaurant, err := d.MyRestaurant(ownerContext(t), rec.callbacks())
	require.NoError(t, err)
	assert.Equal(t, "r1", restaurant.ID)
	assert.Zero(t, rec.calls())

	api.On("GetMyRestaurant", mock.Anything).Return(nil, client.ErrRequestFailed).Once()
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n domain.Notification) bool {
		return n.Message == "Failed to fetch restaurant"
	})).Once()
	_, err = d.MyRestaurant(ownerContext(t), rec.callbacks())
	assert.Error(t, err)
	require.Len(t, rec.failures, 1)
	assert.Equal(t, "Failed to fetch restaurant", rec.failures[0].Message)
}

func TestMyOrders_AttachesStatusInfo(t *testing.T) {
	d, api, _ := newDashboard(t)
	api.On("GetMyRestaurantOrders", mock.Anything).Return([]domain.Order{
		{ID: "o1", Status: domain.StatusPaid},
		{ID: "o2", Status: domain.OrderStatus("refunded")},
	}, nil).Once()

	orders, err := d.MyOrders(ownerContext(t), Callbacks{})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "Awaiting Restaurant Confirmation", orders[0].StatusInfo.Label)
	assert.Equal(t, 25, orders[0].StatusInfo.Progress)
	assert.Equal(t, "refunded", orders[1].StatusInfo.Label)
}

func TestMyOrders_Failure(t *testing.T) {
	d, api, notifier := newDashboard(t)
	api.On("GetMyRestaurantOrders", mock.Anything).Return(nil, client.ErrRequestFailed).Once()
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n domain.Notification) bool {
		return n.Message == "Failed to fetch orders" && n.Operation == "fetch orders"
	})).Once()

	rec := &recorder{}
	_, err := d.MyOrders(ownerContext(t), rec.callbacks())
	assert.Error(t, err)
	assert.Len(t, rec.failures, 1)
}

func TestUpdateOrderStatus(t *testing.T) {
	d, api, notifier := newDashboard(t)
	api.On("UpdateOrderStatus", mock.Anything, "o1", domain.StatusOutForDelivery).
		Return(&domain.Order{ID: "o1", Status: domain.StatusOutForDelivery}, nil).Once()
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n domain.Notification) bool {
		return n.Kind == domain.NotificationSuccess && n.Message == "Order updated successfully"
	})).Once()

	rec := &recorder{}
	order, err := d.UpdateOrderStatus(ownerContext(t), "o1", "outForDelivery", rec.callbacks())
	require.NoError(t, err)
	assert.Equal(t, 75, order.StatusInfo.Progress)
	assert.Len(t, rec.successes, 1)
}

func TestUpdateOrderStatus_UnknownStatusSkipsNetwork(t *testing.T) {
	d, _, _ := newDashboard(t)

	rec := &recorder{}
	_, err := d.UpdateOrderStatus(ownerContext(t), "o1", "cancelled", rec.callbacks())
	assert.ErrorIs(t, err, domain.ErrUnknownStatus)
	assert.Zero(t, rec.calls())

	_, err = d.UpdateOrderStatus(ownerContext(t), "", "paid", rec.callbacks())
	assert.ErrorIs(t, err, ErrMissingOrderID)
}

func TestUpdateOrderStatus_RefusesConcurrentDuplicate(t *testing.T) {
	d, api, notifier := newDashboard(t)
	notifier.On("Notify", mock.Anything, mock.Anything)

	started := make(chan struct{})
	unblock := make(chan struct{})
	api.On("UpdateOrderStatus", mock.Anything, "o1", domain.StatusDelivered).
		Run(func(mock.Arguments) {
			close(started)
			<-unblock
		}).
		Return(nil, client.ErrRequestFailed).Once()

	ctx := ownerContext(t)
	done := make(chan error, 1)
	go func() {
		_, err := d.UpdateOrderStatus(ctx, "o1", "delivered", Callbacks{})
		done <- err
	}()
	<-started

	_, err := d.UpdateOrderStatus(ctx, "o1", "delivered", Callbacks{})
	assert.ErrorIs(t, err, ErrInFlight)

	close(unblock)
	assert.ErrorIs(t, <-done, client.ErrRequestFailed)

	api.On("UpdateOrderStatus", mock.Anything, "o1", domain.StatusDelivered).
		Return(&domain.Order{ID: "o1", Status: domain.StatusDelivered}, nil).Once()
	_, err = d.UpdateOrderStatus(ctx, "o1", "delivered", Callbacks{})
	assert.NoError(t, err)
}

func TestInFlight_IndependentKeys(t *testing.T) {
	g := newInFlight()
	releaseA, err := g.acquire("order:a")
	require.NoError(t, err)
	_, err = g.acquire("order:b")
	require.NoError(t, err)

	_, err = g.acquire("order:a")
	assert.True(t, errors.Is(err, ErrInFlight))

	releaseA()
	_, err = g.acquire("order:a")
	assert.NoError(t, err)
}

func TestOrderQRCode(t *testing.T) {
	d, _, _ := newDashboard(t)

	png, err := d.OrderQRCode("o1")
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])

	_, err = d.OrderQRCode("")
	assert.ErrorIs(t, err, ErrMissingOrderID)

	qr := mocks.NewQRGenerator(t)
	qr.On("Generate", "o2").Return(nil, assert.AnError).Once()
	d.qr = qr
	_, err = d.OrderQRCode("o2")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestDefaultQRGenerator_Link(t *testing.T) {
	g := DefaultQRGenerator{BaseURL: "https://eatery.example.com/"}
	assert.Equal(t, "https://eatery.example.com/order-status?orderId=o+1", g.Link("o 1"))
}

func TestEditForm(t *testing.T) {
	d, api, notifier := newDashboard(t)

	api.On("GetMyRestaurant", mock.Anything).Return(&domain.Restaurant{
		RestaurantName: "Luigi's",
		DeliveryPrice:  1050,
		MenuItems:      []domain.MenuItem{{ID: "m1", Name: "Margherita", Price: 750}},
	}, nil).Once()

	edit, err := d.EditForm(ownerContext(t), Callbacks{})
	require.NoError(t, err)
	assert.True(t, edit.Editing)
	assert.Equal(t, 10.5, edit.Form.DeliveryPrice)
	assert.Equal(t, 7.5, edit.Form.MenuItems[0].Price)

	api.On("GetMyRestaurant", mock.Anything).Return(nil, client.ErrRequestFailed).Once()
	notifier.On("Notify", mock.Anything, mock.Anything).Once()

	edit, err = d.EditForm(ownerContext(t), Callbacks{})
	assert.Error(t, err)
	assert.False(t, edit.Editing)
	assert.Equal(t, form.NewForm(), edit.Form)
}

func TestCreateMyRestaurant_StoredImageURLIsNotAnUpload(t *testing.T) {
	d, _, _ := newDashboard(t)

	in := validRestaurantInput()
	in.ImageFile = nil
	in.ImageURL = "https://cdn.example.com/luigi.png"

	rec := &recorder{}
	_, err := d.CreateMyRestaurant(ownerContext(t), in, rec.callbacks())

	var errs form.FieldErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "Image is required", errs["imageFile"])
	assert.Zero(t, rec.calls())
}

func TestCreateMyRestaurant_OpaqueTokenOwnersDoNotBlockEachOther(t *testing.T) {
	d, api, notifier := newDashboard(t)
	notifier.On("Notify", mock.Anything, mock.Anything)

	ownerA := auth.WithToken(context.Background(), "opaque-token-owner-a")
	ownerB := auth.WithToken(context.Background(), "opaque-token-owner-b")

	started := make(chan struct{})
	unblock := make(chan struct{})
	api.On("CreateMyRestaurant", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-unblock
		}).
		Return(&domain.Restaurant{ID: "ra"}, nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := d.CreateMyRestaurant(ownerA, validRestaurantInput(), Callbacks{})
		done <- err
	}()
	<-started

	api.On("CreateMyRestaurant", mock.Anything, mock.Anything).
		Return(&domain.Restaurant{ID: "rb"}, nil).Once()
	restaurant, err := d.CreateMyRestaurant(ownerB, validRestaurantInput(), Callbacks{})
	require.NoError(t, err)
	assert.Equal(t, "rb", restaurant.ID)

	_, err = d.CreateMyRestaurant(ownerA, validRestaurantInput(), Callbacks{})
	assert.ErrorIs(t, err, ErrInFlight)

	close(unblock)
	assert.NoError(t, <-done)
}
