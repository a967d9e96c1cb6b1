package service

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

const defaultReceiptSize = 256

// DefaultQRGenerator renders an order receipt as a PNG that links back to the
// order detail page.
type DefaultQRGenerator struct {
	BaseURL string
	Size    int
}

func (g DefaultQRGenerator) Generate(orderID int) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = defaultReceiptSize
	}
	return qrcode.Encode(g.ReceiptURL(orderID), qrcode.Medium, size)
}

// ReceiptURL is the absolute link encoded in an order's QR receipt.
func (g DefaultQRGenerator) ReceiptURL(orderID int) string {
	return fmt.Sprintf("%s/orders/%d/", strings.TrimRight(g.BaseURL, "/"), orderID)
}

func QRLink(orderID int) string {
	return fmt.Sprintf("/orders/%d/qrcode", orderID)
}
