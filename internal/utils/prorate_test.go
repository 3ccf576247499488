package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rentfolio-backend/internal/domain"
)

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(2024, 1))
	assert.Equal(t, 29, DaysInMonth(2024, 2)) // leap year
	assert.Equal(t, 28, DaysInMonth(2023, 2))
	assert.Equal(t, 30, DaysInMonth(2024, 4))
	assert.Equal(t, 31, DaysInMonth(2024, 12))
}

func TestProrateFirstMonth(t *testing.T) {
	// Lease starting Jan 15 on a 1000.00 rent: 17 occupied days out of 31.
	// 1000.00 * 17/31 = 548.387... rounds to 548.39.
	assert.Equal(t, int64(54839), ProrateFirstMonth(100000, 15, 31))

	// Starting on the 1st is a full month.
	assert.Equal(t, int64(100000), ProrateFirstMonth(100000, 1, 31))

	// Starting on the last day bills a single day.
	assert.Equal(t, int64(3226), ProrateFirstMonth(100000, 31, 31)) // 1000/31 = 32.258...

	// February in a leap year.
	assert.Equal(t, int64(51724), ProrateFirstMonth(100000, 15, 29)) // 15/29 days
}

func TestProrateFinalMonth(t *testing.T) {
	// Lease ending Jan 20: 20 occupied days out of 31.
	// 1000.00 * 20/31 = 645.16.
	assert.Equal(t, int64(64516), ProrateFinalMonth(100000, 20, 31))

	// Ending on the last day of the month is a full month.
	assert.Equal(t, int64(100000), ProrateFinalMonth(100000, 31, 31))
	assert.Equal(t, int64(100000), ProrateFinalMonth(100000, 28, 28))

	// Ending on the 1st bills one day.
	assert.Equal(t, int64(3226), ProrateFinalMonth(100000, 1, 31))
}

func TestProrationRounding(t *testing.T) {
	// Exact half-cents round up.
	assert.Equal(t, int64(13), roundRatioCents(25, 1, 2)) // 12.5 -> 13
	assert.Equal(t, int64(3), roundRatioCents(25, 1, 10)) // 2.5 -> 3
	// Below the midpoint rounds down.
	assert.Equal(t, int64(2), roundRatioCents(24, 1, 10)) // 2.4 -> 2
}

func TestDueDateFor(t *testing.T) {
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), DueDateFor(2024, 1, 5))

	// Due day past the month's length clamps to the last day.
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), DueDateFor(2024, 2, 31))
	assert.Equal(t, time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC), DueDateFor(2023, 2, 31))
	assert.Equal(t, time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), DueDateFor(2024, 4, 31))
}

func TestNextPeriod(t *testing.T) {
	y, m := NextPeriod(2024, 1)
	assert.Equal(t, 2024, y)
	assert.Equal(t, 2, m)

	y, m = NextPeriod(2024, 12)
	assert.Equal(t, 2025, y)
	assert.Equal(t, 1, m)
}

func TestPeriodAfter(t *testing.T) {
	assert.True(t, PeriodAfter(2024, 2, 2024, 1))
	assert.True(t, PeriodAfter(2025, 1, 2024, 12))
	assert.False(t, PeriodAfter(2024, 1, 2024, 1))
	assert.False(t, PeriodAfter(2023, 12, 2024, 1))
}

func TestDeriveRentStatus(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	future := time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)
	past := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		due     int64
		paid    int64
		dueDate time.Time
		want    domain.RentStatus
	}{
		{"unpaid before due date", 100000, 0, future, domain.RentStatusPending},
		{"unpaid past due date", 100000, 0, past, domain.RentStatusLate},
		{"partially paid before due date", 100000, 40000, future, domain.RentStatusPartial},
		{"partially paid past due date", 100000, 40000, past, domain.RentStatusPartial},
		{"fully paid", 100000, 100000, past, domain.RentStatusPaid},
		{"overpaid", 100000, 120000, future, domain.RentStatusPaid},
		{"zero due is paid", 0, 0, future, domain.RentStatusPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveRentStatus(tt.due, tt.paid, tt.dueDate, now))
		})
	}
}
