package form

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"

	"eatery-frontend/web-svc/internal/domain"
)

type Field struct {
	Name  string
	Value string
}

// Payload is the multipart submission of a restaurant. Prices are minor units.
type Payload struct {
	Fields []Field
	Image  *ImageFile
}

// BuildPayload converts a validated form to its submission payload. The
// image part is only present when a new file was chosen; an unchanged image
// is kept by the API.
func BuildPayload(r Restaurant) *Payload {
	p := &Payload{}
	p.add("restaurantName", r.RestaurantName)
	p.add("city", r.City)
	p.add("country", r.Country)
	p.add("deliveryPrice", strconv.FormatInt(domain.ToMinor(r.DeliveryPrice), 10))
	p.add("estimatedDeliveryTime", strconv.Itoa(r.EstimatedDeliveryTime))

	for i, cuisine := range r.Cuisines {
		p.add(fmt.Sprintf("cuisines[%d]", i), cuisine)
	}
	for i, item := range r.MenuItems {
		p.add(fmt.Sprintf("menuItems[%d][name]", i), item.Name)
		p.add(fmt.Sprintf("menuItems[%d][price]", i), strconv.FormatInt(domain.ToMinor(item.Price), 10))
	}

	if r.ImageFile != nil {
		p.Image = r.ImageFile
	}
	return p
}

func (p *Payload) add(name, value string) {
	p.Fields = append(p.Fields, Field{Name: name, Value: value})
}

func (p *Payload) Value(name string) (string, bool) {
	for _, f := range p.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Encode writes the payload as multipart/form-data and returns the content
// type including the boundary.
func (p *Payload) Encode(w io.Writer) (string, error) {
	mw := multipart.NewWriter(w)
	for _, f := range p.Fields {
		if err := mw.WriteField(f.Name, f.Value); err != nil {
			return "", err
		}
	}

	if p.Image != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="imageFile"; filename=%q`, p.Image.Filename))
		contentType := p.Image.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := mw.CreatePart(header)
		if err != nil {
			return "", err
		}
		if _, err := part.Write(p.Image.Data); err != nil {
			return "", err
		}
	}

	if err := mw.Close(); err != nil {
		return "", err
	}
	return mw.FormDataContentType(), nil
}
