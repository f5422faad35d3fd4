package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confetti-shop/backend/internal/model"
)

func TestDaysLeftCeiling(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	// 6 days and 23 hours rounds up to 7.
	assert.Equal(t, 7, DaysLeft(now, now.Add(6*24*time.Hour+23*time.Hour)))
	// Exactly 3 days stays 3.
	assert.Equal(t, 3, DaysLeft(now, now.Add(3*24*time.Hour)))
	// Later the same day counts as 1.
	assert.Equal(t, 1, DaysLeft(now, now.Add(2*time.Hour)))
	// Same instant is 0.
	assert.Equal(t, 0, DaysLeft(now, now))
}

func TestBuildExpiryReport(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -2)
	soon := now.Add(50 * time.Hour) // 2 days 2 hours -> daysLeft 3

	expired := []model.Product{{
		ID: 1, Name: "Зефир", Price: 80,
		ExpiryDate: &past,
		Category:   &model.Category{ID: 9, Name: "Пастила"},
	}}
	expiring := []model.Product{{
		ID: 2, Name: "Трюфель", Price: 120,
		ExpiryDate: &soon,
		// no category loaded -> fallback label
	}}
	stats := model.ExpiryStats{Expired: 1, ExpiringWeek: 1, TotalWithExpiry: 2, TotalProducts: 5}

	rep := BuildExpiryReport(now, stats, expired, expiring)

	assert.Equal(t, now, rep.Timestamp)
	assert.Equal(t, stats, rep.Statistics)

	require.Len(t, rep.ExpiredProducts, 1)
	exp := rep.ExpiredProducts[0]
	assert.Equal(t, "Пастила", exp.Category)
	assert.Equal(t, "08.03.2025", exp.ExpiryDate)
	assert.Nil(t, exp.DaysLeft) // daysLeft only applies to the expiring section

	require.Len(t, rep.ExpiringSoonProducts, 1)
	sp := rep.ExpiringSoonProducts[0]
	assert.Equal(t, "Без категории", sp.Category)
	require.NotNil(t, sp.DaysLeft)
	assert.Equal(t, 3, *sp.DaysLeft)
	assert.Equal(t, "12.03.2025", sp.ExpiryDate)
}

func TestBuildExpiryReportEmptyInputs(t *testing.T) {
	rep := BuildExpiryReport(time.Now(), model.ExpiryStats{}, nil, nil)
	// Empty slices, not nil: the JSON must contain [] and not null.
	assert.NotNil(t, rep.ExpiredProducts)
	assert.NotNil(t, rep.ExpiringSoonProducts)
	assert.Empty(t, rep.ExpiredProducts)
	assert.Empty(t, rep.ExpiringSoonProducts)
}
