package service

import (
	"context"
	"errors"
	"fmt"

	"eatery-frontend/web-svc/internal/cart"
	"eatery-frontend/web-svc/internal/client"
	"eatery-frontend/web-svc/internal/domain"

	"go.uber.org/zap"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrMenuItemNotFound   = errors.New("menu item not found on this restaurant")
)

// RestaurantDetail is what the restaurant page renders: the menu, the
// session's cart for it and the order summary.
type RestaurantDetail struct {
	Restaurant *domain.Restaurant `json:"restaurant"`
	Cart       []domain.CartLine  `json:"cart"`
	Summary    cart.Summary       `json:"summary"`
}

type Storefront struct {
	api    RestaurantAPI
	carts  *cart.Store
	logger *zap.Logger
}

func NewStorefront(api RestaurantAPI, carts *cart.Store, logger *zap.Logger) *Storefront {
	return &Storefront{api: api, carts: carts, logger: logger}
}

func (s *Storefront) RestaurantDetail(ctx context.Context, sessionID, restaurantID string) (*RestaurantDetail, error) {
	restaurant, c, err := s.open(ctx, sessionID, restaurantID)
	if err != nil {
		return nil, err
	}
	return detail(restaurant, c), nil
}

func (s *Storefront) AddToCart(ctx context.Context, sessionID, restaurantID, menuItemID string) (*RestaurantDetail, error) {
	restaurant, c, err := s.open(ctx, sessionID, restaurantID)
	if err != nil {
		return nil, err
	}

	item, ok := restaurant.MenuItem(menuItemID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMenuItemNotFound, menuItemID)
	}
	if err := c.AddItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Debug("added to cart",
		zap.String("restaurant_id", restaurantID),
		zap.String("menu_item_id", menuItemID))
	return detail(restaurant, c), nil
}

func (s *Storefront) RemoveFromCart(ctx context.Context, sessionID, restaurantID, itemID string) (*RestaurantDetail, error) {
	restaurant, c, err := s.open(ctx, sessionID, restaurantID)
	if err != nil {
		return nil, err
	}
	if err := c.RemoveItem(ctx, itemID); err != nil {
		return nil, err
	}

	s.logger.Debug("removed from cart",
		zap.String("restaurant_id", restaurantID),
		zap.String("menu_item_id", itemID))
	return detail(restaurant, c), nil
}

func (s *Storefront) ClearCart(ctx context.Context, sessionID, restaurantID string) (*RestaurantDetail, error) {
	restaurant, c, err := s.open(ctx, sessionID, restaurantID)
	if err != nil {
		return nil, err
	}
	if err := c.Clear(ctx); err != nil {
		return nil, err
	}
	return detail(restaurant, c), nil
}

func (s *Storefront) open(ctx context.Context, sessionID, restaurantID string) (*domain.Restaurant, *cart.Cart, error) {
	restaurant, err := s.api.GetRestaurant(ctx, restaurantID)
	if errors.Is(err, client.ErrNotFound) {
		return nil, nil, fmt.Errorf("%w: %s", ErrRestaurantNotFound, restaurantID)
	}
	if err != nil {
		return nil, nil, err
	}

	c, err := s.carts.Open(ctx, sessionID, restaurantID)
	if err != nil {
		return nil, nil, err
	}
	return restaurant, c, nil
}

func detail(restaurant *domain.Restaurant, c *cart.Cart) *RestaurantDetail {
	lines := c.Lines()
	return &RestaurantDetail{
		Restaurant: restaurant,
		Cart:       lines,
		Summary:    cart.Summarize(*restaurant, lines),
	}
}
