package model

import (
	"strings"
	"time"
)

// Image is a product picture reference. Stored rows historically mark an
// already-absolute external URL with a leading '@'; that one bit of metadata
// is decoded here into IsExternal so nothing downstream has to sniff string
// prefixes.
type Image struct {
	URL        string `json:"url"`
	IsExternal bool   `json:"isExternal"`
}

// ParseImage decodes the stored image_url column value. An empty string
// yields a zero Image (no picture).
func ParseImage(raw string) Image {
	if strings.HasPrefix(raw, "@") {
		return Image{URL: strings.TrimPrefix(raw, "@"), IsExternal: true}
	}
	return Image{URL: raw}
}

// Raw re-encodes the image for storage, restoring the '@' marker so the
// column stays compatible with rows written before the typed field existed.
func (im Image) Raw() string {
	if im.IsExternal && im.URL != "" {
		return "@" + im.URL
	}
	return im.URL
}

// ExpiryStats are the public aggregate counts over product expiry dates.
// The three windows are consecutive and non-overlapping, so a product in
// the week window never appears in the month count.
type ExpiryStats struct {
	Expired         int `json:"expired"`
	ExpiringWeek    int `json:"expiringWeek"`
	ExpiringMonth   int `json:"expiringMonth"`
	TotalWithExpiry int `json:"totalWithExpiry"`
	TotalProducts   int `json:"totalProducts"`
}

// Product is a catalog item. ExpiryDate is nil for goods without expiry
// tracking; Category is populated on reads that join the categories table.
type Product struct {
	ID          uint64     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Price       float64    `json:"price"`
	Image       *Image     `json:"imageUrl,omitempty"`
	CategoryID  uint64     `json:"categoryId"`
	ExpiryDate  *time.Time `json:"expiryDate,omitempty"`
	Category    *Category  `json:"category,omitempty"`
}
