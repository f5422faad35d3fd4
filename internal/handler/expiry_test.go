package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confetti-shop/backend/internal/repository"
)

func fixedExpiryHandler(t *testing.T, now time.Time) (*ExpiryHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	h := NewExpiryHandler(repository.NewProductRepo(db))
	h.Now = func() time.Time { return now }
	return h, mock
}

func statsCols() []string {
	return []string{"expired", "week", "month", "with_expiry", "total"}
}

func TestExpiryStatisticsWindows(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	week := now.AddDate(0, 0, 7)
	month := now.AddDate(0, 0, 30)
	h, mock := fixedExpiryHandler(t, now)

	mock.ExpectQuery("FROM products").
		WithArgs(now, now, week, week, month).
		WillReturnRows(sqlmock.NewRows(statsCols()).AddRow(2, 3, 5, 10, 40))

	c, rec := newJSONContext(t, http.MethodGet, "/api/products/expiry-statistics", "")
	require.NoError(t, h.Statistics(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"expired":2,"expiringWeek":3,"expiringMonth":5,"totalWithExpiry":10,"totalProducts":40}`,
		rec.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpiringSoonDefaultWindow(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	h, mock := fixedExpiryHandler(t, now)

	// No ?days => a 7-day window, upper bound inclusive.
	mock.ExpectQuery(productSelectPat).
		WithArgs(now, now.AddDate(0, 0, 7)).
		WillReturnRows(sqlmock.NewRows(productCols()))

	c, rec := newJSONContext(t, http.MethodGet, "/api/products/expiring-soon", "")
	require.NoError(t, h.ExpiringSoon(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpiringSoonCustomAndInvalidDays(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	h, mock := fixedExpiryHandler(t, now)

	mock.ExpectQuery(productSelectPat).
		WithArgs(now, now.AddDate(0, 0, 3)).
		WillReturnRows(sqlmock.NewRows(productCols()))

	c, rec := newJSONContext(t, http.MethodGet, "/api/products/expiring-soon?days=3", "")
	require.NoError(t, h.ExpiringSoon(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	for _, q := range []string{"days=0", "days=-2", "days=soon"} {
		c, rec = newJSONContext(t, http.MethodGet, "/api/products/expiring-soon?"+q, "")
		require.NoError(t, h.ExpiringSoon(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpiredList(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	h, mock := fixedExpiryHandler(t, now)

	past := now.AddDate(0, 0, -1)
	mock.ExpectQuery(productSelectPat).
		WithArgs(now).
		WillReturnRows(sqlmock.NewRows(productCols()).
			AddRow(4, "Эклер", nil, 80.0, nil, 2, past, 2, "Пирожные"))

	c, rec := newJSONContext(t, http.MethodGet, "/api/products/expired", "")
	require.NoError(t, h.Expired(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Эклер")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpiryReport(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	week := now.AddDate(0, 0, 7)
	month := now.AddDate(0, 0, 30)
	h, mock := fixedExpiryHandler(t, now)

	mock.ExpectQuery("FROM products").
		WithArgs(now, now, week, week, month).
		WillReturnRows(sqlmock.NewRows(statsCols()).AddRow(1, 1, 0, 2, 5))
	mock.ExpectQuery(productSelectPat).
		WithArgs(now).
		WillReturnRows(sqlmock.NewRows(productCols()).
			AddRow(4, "Эклер", nil, 80.0, nil, 2, now.AddDate(0, 0, -2), 2, "Пирожные"))
	mock.ExpectQuery(productSelectPat).
		WithArgs(now, week).
		WillReturnRows(sqlmock.NewRows(productCols()).
			AddRow(5, "Зефир", nil, 95.0, nil, 3, now.Add(50*time.Hour), 3, "Пастила"))

	c, rec := newJSONContext(t, http.MethodGet, "/api/products/expiry-report", "")
	require.NoError(t, h.Report(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var report struct {
		Statistics struct {
			Expired int `json:"expired"`
		} `json:"statistics"`
		Expired []struct {
			Name       string `json:"name"`
			ExpiryDate string `json:"expiryDate"`
			DaysLeft   *int   `json:"daysLeft"`
		} `json:"expiredProducts"`
		Soon []struct {
			Name     string `json:"name"`
			DaysLeft *int   `json:"daysLeft"`
		} `json:"expiringSoonProducts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))

	assert.Equal(t, 1, report.Statistics.Expired)
	require.Len(t, report.Expired, 1)
	assert.Equal(t, "27.02.2025", report.Expired[0].ExpiryDate)
	assert.Nil(t, report.Expired[0].DaysLeft)
	require.Len(t, report.Soon, 1)
	require.NotNil(t, report.Soon[0].DaysLeft)
	assert.Equal(t, 3, *report.Soon[0].DaysLeft)
	require.NoError(t, mock.ExpectationsWereMet())
}
