package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"eatery-frontend/web-svc/internal/auth"
	"eatery-frontend/web-svc/internal/domain"
	"eatery-frontend/web-svc/internal/form"
)

var (
	ErrUnauthenticated = errors.New("could not obtain access token")
	ErrRequestFailed   = errors.New("request failed")
	ErrNotFound        = errors.New("not found")
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	BaseURL string
}

// Observer is told the outcome of every upstream call.
type Observer interface {
	ObserveUpstream(operation string, err error)
}

// RestaurantAPI calls the external restaurant API. Authenticated calls ask
// the token source for a fresh bearer token right before sending.
type RestaurantAPI struct {
	config   Config
	client   HTTPClient
	tokens   auth.TokenSource
	observer Observer
}

func NewRestaurantAPI(config Config, client HTTPClient, tokens auth.TokenSource, observer Observer) *RestaurantAPI {
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	return &RestaurantAPI{
		config:   config,
		client:   client,
		tokens:   tokens,
		observer: observer,
	}
}

func (a *RestaurantAPI) GetRestaurant(ctx context.Context, restaurantID string) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	err := a.do(ctx, call{
		operation: "get restaurant",
		method:    http.MethodGet,
		path:      "/restaurant/" + url.PathEscape(restaurantID),
		public:    true,
		out:       &restaurant,
	})
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (a *RestaurantAPI) GetMyRestaurant(ctx context.Context) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	err := a.do(ctx, call{
		operation: "fetch restaurant",
		method:    http.MethodGet,
		path:      "/restaurants",
		out:       &restaurant,
	})
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (a *RestaurantAPI) CreateMyRestaurant(ctx context.Context, payload *form.Payload) (*domain.Restaurant, error) {
	return a.sendRestaurant(ctx, "create restaurant", http.MethodPost, payload)
}

func (a *RestaurantAPI) UpdateMyRestaurant(ctx context.Context, payload *form.Payload) (*domain.Restaurant, error) {
	return a.sendRestaurant(ctx, "update restaurant", http.MethodPut, payload)
}

func (a *RestaurantAPI) sendRestaurant(ctx context.Context, operation, method string, payload *form.Payload) (*domain.Restaurant, error) {
	var body bytes.Buffer
	contentType, err := payload.Encode(&body)
	if err != nil {
		return nil, fmt.Errorf("%s: encode payload: %w", operation, err)
	}

	var restaurant domain.Restaurant
	err = a.do(ctx, call{
		operation:   operation,
		method:      method,
		path:        "/restaurants",
		body:        &body,
		contentType: contentType,
		out:         &restaurant,
	})
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (a *RestaurantAPI) GetMyRestaurantOrders(ctx context.Context) ([]domain.Order, error) {
	orders := []domain.Order{}
	err := a.do(ctx, call{
		operation: "fetch orders",
		method:    http.MethodGet,
		path:      "/restaurants/order",
		out:       &orders,
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (a *RestaurantAPI) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	body, err := json.Marshal(map[string]string{"status": string(status)})
	if err != nil {
		return nil, err
	}

	var order domain.Order
	err = a.do(ctx, call{
		operation:   "update order",
		method:      http.MethodPatch,
		path:        "/restaurants/order/" + url.PathEscape(orderID) + "/status",
		body:        bytes.NewReader(body),
		contentType: "application/json",
		out:         &order,
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

type call struct {
	operation   string
	method      string
	path        string
	public      bool
	body        io.Reader
	contentType string
	out         interface{}
}

func (a *RestaurantAPI) do(ctx context.Context, c call) (err error) {
	if a.observer != nil {
		defer func() { a.observer.ObserveUpstream(c.operation, err) }()
	}

	var token string
	if !c.public {
		token, err = a.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w: %w", c.operation, ErrUnauthenticated, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, c.method, a.config.BaseURL+c.path, c.body)
	if err != nil {
		return fmt.Errorf("%s: %w", c.operation, err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if c.contentType != "" {
		req.Header.Set("Content-Type", c.contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", c.operation, ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound && c.public {
		return fmt.Errorf("%s: %w", c.operation, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%s: %w: status %d", c.operation, ErrRequestFailed, resp.StatusCode)
	}

	if c.out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(c.out); err != nil {
		return fmt.Errorf("%s: %w: decode response: %v", c.operation, ErrRequestFailed, err)
	}
	return nil
}
