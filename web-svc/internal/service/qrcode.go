package service

import (
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

// DefaultQRGenerator encodes the order status page link of an order.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Link(orderID string) string {
	return strings.TrimRight(g.BaseURL, "/") + "/order-status?orderId=" + url.QueryEscape(orderID)
}

func (g DefaultQRGenerator) Generate(orderID string) ([]byte, error) {
	return qrcode.Encode(g.Link(orderID), qrcode.Medium, 256)
}
