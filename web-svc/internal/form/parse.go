package form

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
)

const maxUploadSize = 10 << 20

var ErrMalformedForm = errors.New("malformed form submission")

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ParseMultipart reads the browser's restaurant form post. Indexed fields
// (cuisines[0], menuItems[0][name]) are collected in index order. An image
// of an unsupported type is dropped and reported by Validate on imageFile.
func ParseMultipart(r *http.Request) (RestaurantInput, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return RestaurantInput{}, fmt.Errorf("%w: %v", ErrMalformedForm, err)
	}
	values := r.MultipartForm.Value

	in := RestaurantInput{
		RestaurantName:        first(values, "restaurantName"),
		City:                  first(values, "city"),
		Country:               first(values, "country"),
		DeliveryPrice:         first(values, "deliveryPrice"),
		EstimatedDeliveryTime: first(values, "estimatedDeliveryTime"),
		ImageURL:              first(values, "imageUrl"),
	}

	cuisines := map[int]string{}
	items := map[int]*MenuItemInput{}
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		switch {
		case key == "cuisines":
			in.Cuisines = append(in.Cuisines, vals...)
		case strings.HasPrefix(key, "cuisines["):
			idx, rest, ok := index(strings.TrimPrefix(key, "cuisines"))
			if ok && rest == "" {
				cuisines[idx] = vals[0]
			}
		case strings.HasPrefix(key, "menuItems["):
			idx, rest, ok := index(strings.TrimPrefix(key, "menuItems"))
			if !ok {
				continue
			}
			item, exists := items[idx]
			if !exists {
				item = &MenuItemInput{}
				items[idx] = item
			}
			switch rest {
			case "[name]":
				item.Name = vals[0]
			case "[price]":
				item.Price = vals[0]
			}
		}
	}

	for _, idx := range sortedKeys(cuisines) {
		in.Cuisines = append(in.Cuisines, cuisines[idx])
	}
	for _, idx := range sortedKeys(items) {
		in.MenuItems = append(in.MenuItems, *items[idx])
	}

	image, err := readImage(r)
	var rejected imageRejected
	switch {
	case errors.As(err, &rejected):
		in.imageErr = string(rejected)
	case err != nil:
		return RestaurantInput{}, err
	default:
		in.ImageFile = image
	}
	return in, nil
}

type imageRejected string

func (e imageRejected) Error() string { return string(e) }

func readImage(r *http.Request) (*ImageFile, error) {
	file, header, err := r.FormFile("imageFile")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedForm, err)
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return nil, imageRejected("Invalid file type. Only JPEG, PNG, GIF, WebP allowed")
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedForm, err)
	}
	return &ImageFile{Filename: header.Filename, ContentType: contentType, Data: data}, nil
}

// index parses a leading "[n]" and returns n and the remainder.
func index(s string) (int, string, bool) {
	if !strings.HasPrefix(s, "[") {
		return 0, "", false
	}
	end := strings.Index(s, "]")
	if end < 0 {
		return 0, "", false
	}
	n, err := strconv.Atoi(s[1:end])
	if err != nil || n < 0 {
		return 0, "", false
	}
	return n, s[end+1:], true
}

func first(values map[string][]string, key string) string {
	if vals := values[key]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
