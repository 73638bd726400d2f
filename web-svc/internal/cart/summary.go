package cart

import "eatery-frontend/web-svc/internal/domain"

type SummaryLine struct {
	ItemID        string `json:"itemId"`
	Name          string `json:"name"`
	Quantity      int    `json:"quantity"`
	SubtotalMinor int64  `json:"subtotalMinor"`
	Subtotal      string `json:"subtotal"`
}

type Summary struct {
	Lines         []SummaryLine `json:"lines"`
	DeliveryMinor int64         `json:"deliveryMinor"`
	Delivery      string        `json:"delivery"`
	TotalMinor    int64         `json:"totalMinor"`
	Total         string        `json:"total"`
}

// Summarize computes the order total of lines plus the restaurant's delivery
// fee. Amounts are summed in minor units and formatted once per figure.
func Summarize(restaurant domain.Restaurant, lines []domain.CartLine) Summary {
	summary := Summary{
		Lines:         make([]SummaryLine, 0, len(lines)),
		DeliveryMinor: restaurant.DeliveryPrice,
		Delivery:      domain.FormatMinor(restaurant.DeliveryPrice),
	}

	var itemsTotal int64
	for _, line := range lines {
		subtotal := line.Price * int64(line.Quantity)
		itemsTotal += subtotal
		summary.Lines = append(summary.Lines, SummaryLine{
			ItemID:        line.ItemID,
			Name:          line.Name,
			Quantity:      line.Quantity,
			SubtotalMinor: subtotal,
			Subtotal:      domain.FormatMinor(subtotal),
		})
	}

	summary.TotalMinor = itemsTotal + restaurant.DeliveryPrice
	summary.Total = domain.FormatMinor(summary.TotalMinor)
	return summary
}
