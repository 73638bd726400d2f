// Package form validates and normalizes the restaurant management form.
//
// The form works in major units (10.50). Seeding from a stored restaurant and
// building the submission payload convert to and from the minor units the
// API uses.
package form

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"eatery-frontend/web-svc/internal/domain"
)

// RestaurantInput is the raw form as posted by the browser.
type RestaurantInput struct {
	RestaurantName        string
	City                  string
	Country               string
	DeliveryPrice         string
	EstimatedDeliveryTime string
	Cuisines              []string
	MenuItems             []MenuItemInput
	ImageURL              string
	ImageFile             *ImageFile

	// imageErr is set by ParseMultipart when the upload was rejected, so
	// Validate can report it together with the other field errors.
	imageErr string
}

// Mode tells Validate whether a stored image may stand in for an upload.
type Mode int

const (
	Create Mode = iota
	Edit
)

type MenuItemInput struct {
	Name  string
	Price string
}

type ImageFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Restaurant is the form in major units, either seeded for display or
// produced by Validate.
type Restaurant struct {
	RestaurantName        string          `json:"restaurantName"`
	City                  string          `json:"city"`
	Country               string          `json:"country"`
	DeliveryPrice         float64         `json:"deliveryPrice"`
	EstimatedDeliveryTime int             `json:"estimatedDeliveryTime"`
	Cuisines              []string        `json:"cuisines"`
	MenuItems             []MenuItemField `json:"menuItems"`
	ImageURL              string          `json:"imageUrl,omitempty"`
	ImageFile             *ImageFile      `json:"-"`
}

type MenuItemField struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// FieldErrors maps a form field to its validation message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return "invalid restaurant form: " + strings.Join(parts, "; ")
}

// NewForm returns the Create-mode defaults.
func NewForm() Restaurant {
	return Restaurant{
		Cuisines:  []string{},
		MenuItems: []MenuItemField{{Name: "", Price: 0}},
	}
}

// Seed fills the Edit-mode form from a stored restaurant. A nil restaurant
// yields the Create-mode defaults.
func Seed(r *domain.Restaurant) Restaurant {
	if r == nil {
		return NewForm()
	}

	items := make([]MenuItemField, 0, len(r.MenuItems))
	for _, item := range r.MenuItems {
		items = append(items, MenuItemField{Name: item.Name, Price: domain.ToMajor(item.Price)})
	}
	if len(items) == 0 {
		items = append(items, MenuItemField{})
	}

	cuisines := append([]string{}, r.Cuisines...)
	return Restaurant{
		RestaurantName:        r.RestaurantName,
		City:                  r.City,
		Country:               r.Country,
		DeliveryPrice:         domain.ToMajor(r.DeliveryPrice),
		EstimatedDeliveryTime: r.EstimatedDeliveryTime,
		Cuisines:              cuisines,
		MenuItems:             items,
		ImageURL:              r.ImageURL,
	}
}

// Validate checks the raw input and coerces numeric fields. On failure the
// returned error is a FieldErrors. Only Edit mode accepts the stored image
// URL in place of a new upload.
func Validate(in RestaurantInput, mode Mode) (Restaurant, error) {
	errs := FieldErrors{}
	out := Restaurant{
		RestaurantName: strings.TrimSpace(in.RestaurantName),
		City:           strings.TrimSpace(in.City),
		Country:        strings.TrimSpace(in.Country),
		ImageFile:      in.ImageFile,
	}
	if mode == Edit {
		out.ImageURL = strings.TrimSpace(in.ImageURL)
	}

	if out.RestaurantName == "" {
		errs["restaurantName"] = "Restaurant name is required"
	}
	if out.City == "" {
		errs["city"] = "City is required"
	}
	if out.Country == "" {
		errs["country"] = "Country is required"
	}

	if price, msg := parseNumber(in.DeliveryPrice, "Delivery price"); msg != "" {
		errs["deliveryPrice"] = msg
	} else if price < 0 {
		errs["deliveryPrice"] = "Delivery price must not be negative"
	} else if price > domain.MaxMajor {
		errs["deliveryPrice"] = "Delivery price is too large"
	} else {
		out.DeliveryPrice = price
	}

	if minutes, msg := parseNumber(in.EstimatedDeliveryTime, "Estimated delivery time"); msg != "" {
		errs["estimatedDeliveryTime"] = msg
	} else if minutes < 0 || minutes != math.Trunc(minutes) {
		errs["estimatedDeliveryTime"] = "Estimated delivery time must be a whole number of minutes"
	} else {
		out.EstimatedDeliveryTime = int(minutes)
	}

	out.Cuisines = make([]string, 0, len(in.Cuisines))
	seen := make(map[string]bool, len(in.Cuisines))
	for _, cuisine := range in.Cuisines {
		cuisine = strings.TrimSpace(cuisine)
		if cuisine == "" || seen[cuisine] {
			continue
		}
		seen[cuisine] = true
		out.Cuisines = append(out.Cuisines, cuisine)
	}
	if len(out.Cuisines) == 0 {
		errs["cuisines"] = "Please select at least one cuisine"
	}

	out.MenuItems = make([]MenuItemField, 0, len(in.MenuItems))
	for i, item := range in.MenuItems {
		prefix := "menuItems." + strconv.Itoa(i) + "."
		field := MenuItemField{Name: strings.TrimSpace(item.Name)}
		if field.Name == "" {
			errs[prefix+"name"] = "Name is required"
		}
		if price, msg := parseNumber(item.Price, "Price"); msg != "" {
			errs[prefix+"price"] = msg
		} else if domain.ToMinor(price) <= 0 {
			errs[prefix+"price"] = "Price must be greater than 0"
		} else if price > domain.MaxMajor {
			errs[prefix+"price"] = "Price is too large"
		} else {
			field.Price = price
		}
		out.MenuItems = append(out.MenuItems, field)
	}

	switch {
	case in.imageErr != "":
		errs["imageFile"] = in.imageErr
	case out.ImageURL == "" && out.ImageFile == nil:
		errs["imageFile"] = "Image is required"
	}

	if len(errs) > 0 {
		return Restaurant{}, errs
	}
	return out, nil
}

func parseNumber(raw, label string) (float64, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, label + " is required"
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, label + " must be a number"
	}
	return value, ""
}
