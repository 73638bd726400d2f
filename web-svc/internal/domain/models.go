package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// Prices on Restaurant and MenuItem are minor units (cents), as sent by the API.
type Restaurant struct {
	ID                    string     `json:"_id"`
	User                  string     `json:"user"`
	RestaurantName        string     `json:"restaurantName"`
	City                  string     `json:"city"`
	Country               string     `json:"country"`
	Cuisines              []string   `json:"cuisines"`
	DeliveryPrice         int64      `json:"deliveryPrice"`
	EstimatedDeliveryTime int        `json:"estimatedDeliveryTime"`
	MenuItems             []MenuItem `json:"menuItems"`
	ImageURL              string     `json:"imageUrl"`
	LastUpdated           time.Time  `json:"lastUpdated"`
}

func (r *Restaurant) MenuItem(id string) (MenuItem, bool) {
	for _, item := range r.MenuItems {
		if item.ID == id {
			return item, true
		}
	}
	return MenuItem{}, false
}

type MenuItem struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type CartLine struct {
	ItemID   string `json:"_id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

type Order struct {
	ID              string          `json:"_id"`
	Restaurant      Ref             `json:"restaurant"`
	User            Ref             `json:"user"`
	CartItems       []OrderItem     `json:"cartItems"`
	DeliveryDetails DeliveryDetails `json:"deliveryDetails"`
	TotalAmount     int64           `json:"totalAmount"`
	Status          OrderStatus     `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt,omitempty"`
}

type OrderItem struct {
	MenuItemID string `json:"menuItemId"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
}

type DeliveryDetails struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	AddressLine1 string `json:"addressLine1"`
	City         string `json:"city"`
}

// Ref is a reference to another document. The API sends either the bare id
// or the populated document; only the id is kept.
type Ref struct {
	ID string
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		r.ID = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	var doc struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	r.ID = doc.ID
	return nil
}

func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}
