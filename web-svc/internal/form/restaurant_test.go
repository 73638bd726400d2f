package form

import (
	"bytes"
	"mime"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"eatery-frontend/web-svc/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() RestaurantInput {
	return RestaurantInput{
		RestaurantName:        "Luigi's",
		City:                  "Turin",
		Country:               "Italy",
		DeliveryPrice:         "2.99",
		EstimatedDeliveryTime: "30",
		Cuisines:              []string{"Pizza", "Italian"},
		MenuItems: []MenuItemInput{
			{Name: "Margherita", Price: "12"},
			{Name: "Tiramisu", Price: "5.50"},
		},
		ImageFile: &ImageFile{Filename: "front.png", ContentType: "image/png", Data: []byte("png")},
	}
}

func fieldErrors(t *testing.T, err error) FieldErrors {
	t.Helper()
	var errs FieldErrors
	require.ErrorAs(t, err, &errs)
	return errs
}

func TestNewForm_Defaults(t *testing.T) {
	f := NewForm()
	assert.Empty(t, f.Cuisines)
	assert.Equal(t, []MenuItemField{{}}, f.MenuItems)
}

func TestSeed_ConvertsMinorToMajor(t *testing.T) {
	r := &domain.Restaurant{
		RestaurantName:        "Luigi's",
		City:                  "Turin",
		Country:               "Italy",
		Cuisines:              []string{"Pizza"},
		DeliveryPrice:         1000,
		EstimatedDeliveryTime: 25,
		MenuItems:             []domain.MenuItem{{ID: "m1", Name: "Margherita", Price: 750}},
		ImageURL:              "https://cdn.example.com/luigi.png",
	}

	f := Seed(r)

	assert.Equal(t, 10.0, f.DeliveryPrice)
	require.Len(t, f.MenuItems, 1)
	assert.Equal(t, 7.5, f.MenuItems[0].Price)
	assert.Equal(t, "https://cdn.example.com/luigi.png", f.ImageURL)
	assert.Equal(t, 25, f.EstimatedDeliveryTime)

	f.Cuisines[0] = "changed"
	assert.Equal(t, "Pizza", r.Cuisines[0])
}

func TestSeed_NilIsCreateMode(t *testing.T) {
	assert.Equal(t, NewForm(), Seed(nil))
}

func TestValidate_Valid(t *testing.T) {
	f, err := Validate(validInput(), Create)
	require.NoError(t, err)

	assert.Equal(t, 2.99, f.DeliveryPrice)
	assert.Equal(t, 30, f.EstimatedDeliveryTime)
	assert.Equal(t, []MenuItemField{{Name: "Margherita", Price: 12}, {Name: "Tiramisu", Price: 5.5}}, f.MenuItems)
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RestaurantInput)
		field   string
		message string
	}{
		{
			name:    "empty cuisines",
			mutate:  func(in *RestaurantInput) { in.Cuisines = nil },
			field:   "cuisines",
			message: "Please select at least one cuisine",
		},
		{
			name:    "blank cuisines only",
			mutate:  func(in *RestaurantInput) { in.Cuisines = []string{" ", ""} },
			field:   "cuisines",
			message: "Please select at least one cuisine",
		},
		{
			name:    "missing name",
			mutate:  func(in *RestaurantInput) { in.RestaurantName = "  " },
			field:   "restaurantName",
			message: "Restaurant name is required",
		},
		{
			name:    "missing city",
			mutate:  func(in *RestaurantInput) { in.City = "" },
			field:   "city",
			message: "City is required",
		},
		{
			name:    "missing country",
			mutate:  func(in *RestaurantInput) { in.Country = "" },
			field:   "country",
			message: "Country is required",
		},
		{
			name:    "delivery price not a number",
			mutate:  func(in *RestaurantInput) { in.DeliveryPrice = "cheap" },
			field:   "deliveryPrice",
			message: "Delivery price must be a number",
		},
		{
			name:    "delivery price missing",
			mutate:  func(in *RestaurantInput) { in.DeliveryPrice = "" },
			field:   "deliveryPrice",
			message: "Delivery price is required",
		},
		{
			name:    "negative delivery price",
			mutate:  func(in *RestaurantInput) { in.DeliveryPrice = "-1" },
			field:   "deliveryPrice",
			message: "Delivery price must not be negative",
		},
		{
			name:    "fractional delivery time",
			mutate:  func(in *RestaurantInput) { in.EstimatedDeliveryTime = "12.5" },
			field:   "estimatedDeliveryTime",
			message: "Estimated delivery time must be a whole number of minutes",
		},
		{
			name:    "menu item without name",
			mutate:  func(in *RestaurantInput) { in.MenuItems[1].Name = "" },
			field:   "menuItems.1.name",
			message: "Name is required",
		},
		{
			name:    "menu item zero price",
			mutate:  func(in *RestaurantInput) { in.MenuItems[0].Price = "0" },
			field:   "menuItems.0.price",
			message: "Price must be greater than 0",
		},
		{
			name:    "menu item price not a number",
			mutate:  func(in *RestaurantInput) { in.MenuItems[0].Price = "NaN" },
			field:   "menuItems.0.price",
			message: "Price must be a number",
		},
		{
			name:    "menu item price below one cent",
			mutate:  func(in *RestaurantInput) { in.MenuItems[0].Price = "0.001" },
			field:   "menuItems.0.price",
			message: "Price must be greater than 0",
		},
		{
			name:    "menu item price too large",
			mutate:  func(in *RestaurantInput) { in.MenuItems[0].Price = "1e20" },
			field:   "menuItems.0.price",
			message: "Price is too large",
		},
		{
			name:    "delivery price too large",
			mutate:  func(in *RestaurantInput) { in.DeliveryPrice = "1e20" },
			field:   "deliveryPrice",
			message: "Delivery price is too large",
		},
		{
			name: "stored image url in create mode",
			mutate: func(in *RestaurantInput) {
				in.ImageFile = nil
				in.ImageURL = "https://cdn.example.com/luigi.png"
			},
			field:   "imageFile",
			message: "Image is required",
		},
		{
			name:    "no image in create mode",
			mutate:  func(in *RestaurantInput) { in.ImageFile = nil },
			field:   "imageFile",
			message: "Image is required",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			in := validInput()
			testCase.mutate(&in)

			_, err := Validate(in, Create)

			errs := fieldErrors(t, err)
			assert.Equal(t, testCase.message, errs[testCase.field])
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	_, err := Validate(RestaurantInput{MenuItems: []MenuItemInput{{}}}, Create)

	errs := fieldErrors(t, err)
	for _, field := range []string{"restaurantName", "city", "country", "deliveryPrice", "estimatedDeliveryTime", "cuisines", "menuItems.0.name", "menuItems.0.price", "imageFile"} {
		assert.Contains(t, errs, field)
	}
	assert.Contains(t, err.Error(), "cuisines: Please select at least one cuisine")
}

func TestBuildPayload_ConvertsToMinorUnits(t *testing.T) {
	f, err := Validate(validInput(), Create)
	require.NoError(t, err)

	p := BuildPayload(f)

	expect := map[string]string{
		"restaurantName":        "Luigi's",
		"city":                  "Turin",
		"country":               "Italy",
		"deliveryPrice":         "299",
		"estimatedDeliveryTime": "30",
		"cuisines[0]":           "Pizza",
		"cuisines[1]":           "Italian",
		"menuItems[0][name]":    "Margherita",
		"menuItems[0][price]":   "1200",
		"menuItems[1][name]":    "Tiramisu",
		"menuItems[1][price]":   "550",
	}
	assert.Len(t, p.Fields, len(expect))
	for name, value := range expect {
		got, ok := p.Value(name)
		assert.True(t, ok, name)
		assert.Equal(t, value, got, name)
	}
	require.NotNil(t, p.Image)
	assert.Equal(t, "front.png", p.Image.Filename)
}

func TestEditMode_ExistingImageOmitsImagePart(t *testing.T) {
	existing := &domain.Restaurant{
		RestaurantName:        "Luigi's",
		City:                  "Turin",
		Country:               "Italy",
		Cuisines:              []string{"Pizza"},
		DeliveryPrice:         1050,
		EstimatedDeliveryTime: 30,
		MenuItems:             []domain.MenuItem{{ID: "m1", Name: "Margherita", Price: 750}},
		ImageURL:              "https://cdn.example.com/luigi.png",
	}
	seeded := Seed(existing)

	in := RestaurantInput{
		RestaurantName:        seeded.RestaurantName,
		City:                  seeded.City,
		Country:               seeded.Country,
		DeliveryPrice:         "10.50",
		EstimatedDeliveryTime: "30",
		Cuisines:              seeded.Cuisines,
		MenuItems:             []MenuItemInput{{Name: "Margherita", Price: "7.5"}},
		ImageURL:              seeded.ImageURL,
	}
	f, err := Validate(in, Edit)
	require.NoError(t, err)

	p := BuildPayload(f)
	assert.Nil(t, p.Image)
	_, hasImage := p.Value("imageFile")
	assert.False(t, hasImage)

	price, _ := p.Value("deliveryPrice")
	assert.Equal(t, "1050", price)
	itemPrice, _ := p.Value("menuItems[0][price]")
	assert.Equal(t, "750", itemPrice)

	var buf bytes.Buffer
	contentType, err := p.Encode(&buf)
	require.NoError(t, err)
	_, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	reader := multipart.NewReader(&buf, params["boundary"])
	for {
		part, err := reader.NextPart()
		if err != nil {
			break
		}
		assert.NotEqual(t, "imageFile", part.FormName())
	}
}

func TestEncode_ParseMultipart(t *testing.T) {
	f, err := Validate(validInput(), Create)
	require.NoError(t, err)

	var buf bytes.Buffer
	contentType, err := BuildPayload(f).Encode(&buf)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/my/restaurant", &buf)
	req.Header.Set("Content-Type", contentType)

	in, err := ParseMultipart(req)
	require.NoError(t, err)

	assert.Equal(t, "Luigi's", in.RestaurantName)
	assert.Equal(t, "299", in.DeliveryPrice)
	assert.Equal(t, []string{"Pizza", "Italian"}, in.Cuisines)
	assert.Equal(t, []MenuItemInput{{Name: "Margherita", Price: "1200"}, {Name: "Tiramisu", Price: "550"}}, in.MenuItems)
	require.NotNil(t, in.ImageFile)
	assert.Equal(t, "image/png", in.ImageFile.ContentType)
	assert.Equal(t, []byte("png"), in.ImageFile.Data)
}

func TestParseMultipart_UnsupportedImageReportedWithOtherErrors(t *testing.T) {
	var buf bytes.Buffer
	p := &Payload{
		Fields: []Field{{Name: "restaurantName", Value: "Luigi's"}},
		Image:  &ImageFile{Filename: "menu.pdf", ContentType: "application/pdf", Data: []byte("%PDF")},
	}
	contentType, err := p.Encode(&buf)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/my/restaurant", &buf)
	req.Header.Set("Content-Type", contentType)

	in, err := ParseMultipart(req)
	require.NoError(t, err)
	assert.Nil(t, in.ImageFile)

	_, err = Validate(in, Create)
	errs := fieldErrors(t, err)
	assert.Contains(t, errs["imageFile"], "Invalid file type")
	assert.Equal(t, "City is required", errs["city"])
	assert.Equal(t, "Please select at least one cuisine", errs["cuisines"])
}

func TestValidate_EditModeKeepsStoredImage(t *testing.T) {
	in := validInput()
	in.ImageFile = nil
	in.ImageURL = "https://cdn.example.com/luigi.png"

	f, err := Validate(in, Edit)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/luigi.png", f.ImageURL)

	in.ImageURL = ""
	_, err = Validate(in, Edit)
	assert.Equal(t, "Image is required", fieldErrors(t, err)["imageFile"])
}

func TestValidate_CreateModeDropsStoredImageURL(t *testing.T) {
	in := validInput()
	in.ImageURL = "https://cdn.example.com/other.png"

	f, err := Validate(in, Create)
	require.NoError(t, err)
	assert.Empty(t, f.ImageURL)
	assert.NotNil(t, f.ImageFile)
}

func TestParseMultipart_NotMultipart(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/my/restaurant", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")

	_, err := ParseMultipart(req)
	assert.ErrorIs(t, err, ErrMalformedForm)
}
