package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"eatery-frontend/web-svc/internal/domain"
)

var ErrCorruptSlot = errors.New("cart slot holds invalid data")

// Storage persists one JSON-encoded line list per slot key.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
}

// SlotKey derives the storage slot of a restaurant's cart within a session.
func SlotKey(sessionID, restaurantID string) string {
	return "cart:" + sessionID + ":cartItems-" + restaurantID
}

type Store struct {
	storage Storage
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Open loads the cart of restaurantID for the session, or an empty cart if
// nothing was stored yet.
func (s *Store) Open(ctx context.Context, sessionID, restaurantID string) (*Cart, error) {
	key := SlotKey(sessionID, restaurantID)
	raw, found, err := s.storage.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load cart %s: %w", key, err)
	}

	c := &Cart{key: key, restaurantID: restaurantID, storage: s.storage, lines: []domain.CartLine{}}
	if !found || len(raw) == 0 {
		return c, nil
	}
	if err := json.Unmarshal(raw, &c.lines); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptSlot, key, err)
	}
	if c.lines == nil {
		c.lines = []domain.CartLine{}
	}
	return c, nil
}

// Cart is one restaurant's cart. Every mutation is written to storage before
// the in-memory lines change; a failed write leaves the cart untouched.
type Cart struct {
	key          string
	restaurantID string
	storage      Storage
	lines        []domain.CartLine
}

func (c *Cart) RestaurantID() string {
	return c.restaurantID
}

func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// AddItem increments the quantity of an existing line for the item, keeping
// the name and price captured on first add, or appends a new line.
func (c *Cart) AddItem(ctx context.Context, item domain.MenuItem) error {
	updated := make([]domain.CartLine, 0, len(c.lines)+1)
	merged := false
	for _, line := range c.lines {
		if line.ItemID == item.ID {
			line.Quantity++
			merged = true
		}
		updated = append(updated, line)
	}
	if !merged {
		updated = append(updated, domain.CartLine{
			ItemID:   item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: 1,
		})
	}
	return c.commit(ctx, updated)
}

// RemoveItem drops the whole line for itemID.
func (c *Cart) RemoveItem(ctx context.Context, itemID string) error {
	updated := make([]domain.CartLine, 0, len(c.lines))
	for _, line := range c.lines {
		if line.ItemID != itemID {
			updated = append(updated, line)
		}
	}
	return c.commit(ctx, updated)
}

func (c *Cart) Clear(ctx context.Context) error {
	return c.commit(ctx, []domain.CartLine{})
}

func (c *Cart) commit(ctx context.Context, lines []domain.CartLine) error {
	payload, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	if err := c.storage.Save(ctx, c.key, payload); err != nil {
		return fmt.Errorf("save cart %s: %w", c.key, err)
	}
	c.lines = lines
	return nil
}
