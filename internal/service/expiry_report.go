// Package service assembles derived read models on top of repository
// output. Authorization never happens here; routes gate access before any
// aggregation runs.
package service

import (
	"time"

	"github.com/confetti-shop/backend/internal/model"
)

// reportDateLayout renders dates the way the storefront displays them.
const reportDateLayout = "02.01.2006"

// ReportProduct is a product reduced to the fields the expiry report
// needs. DaysLeft is present only for the expiring-soon section; zero
// means "expires today", so a pointer keeps it distinguishable from
// "not applicable".
type ReportProduct struct {
	ID         uint64  `json:"id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	ExpiryDate string  `json:"expiryDate"`
	DaysLeft   *int    `json:"daysLeft,omitempty"`
	Price      float64 `json:"price"`
}

// ExpiryReport is the full back-office expiry summary.
type ExpiryReport struct {
	Timestamp            time.Time           `json:"timestamp"`
	Statistics           model.ExpiryStats   `json:"statistics"`
	ExpiredProducts      []ReportProduct     `json:"expiredProducts"`
	ExpiringSoonProducts []ReportProduct     `json:"expiringSoonProducts"`
}

// BuildExpiryReport reduces the repository reads into the report shape.
// It is a pure function over its inputs, so the same data always yields
// the same report.
func BuildExpiryReport(now time.Time, stats model.ExpiryStats, expired, expiringSoon []model.Product) ExpiryReport {
	rep := ExpiryReport{
		Timestamp:            now,
		Statistics:           stats,
		ExpiredProducts:      make([]ReportProduct, 0, len(expired)),
		ExpiringSoonProducts: make([]ReportProduct, 0, len(expiringSoon)),
	}
	for _, p := range expired {
		rep.ExpiredProducts = append(rep.ExpiredProducts, reduceProduct(p, nil))
	}
	for _, p := range expiringSoon {
		days := DaysLeft(now, *p.ExpiryDate)
		rep.ExpiringSoonProducts = append(rep.ExpiringSoonProducts, reduceProduct(p, &days))
	}
	return rep
}

// DaysLeft is the day-granularity ceiling of expiry minus now: 6 days and
// one hour rounds up to 7. Server-side window queries still compare
// continuous time; this rounding exists only for display.
func DaysLeft(now, expiry time.Time) int {
	d := expiry.Sub(now)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}

func reduceProduct(p model.Product, daysLeft *int) ReportProduct {
	rp := ReportProduct{
		ID:       p.ID,
		Name:     p.Name,
		Category: "Без категории",
		DaysLeft: daysLeft,
		Price:    p.Price,
	}
	if p.Category != nil {
		rp.Category = p.Category.Name
	}
	if p.ExpiryDate != nil {
		rp.ExpiryDate = p.ExpiryDate.Format(reportDateLayout)
	}
	return rp
}
