package service

import (
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

const qrSize = 256

// DefaultQRGenerator encodes the public detail page of a business.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) URL(businessID string) string {
	return strings.TrimRight(g.BaseURL, "/") + "/business/" + url.PathEscape(businessID)
}

func (g DefaultQRGenerator) Generate(businessID string) ([]byte, error) {
	return qrcode.Encode(g.URL(businessID), qrcode.Medium, qrSize)
}
