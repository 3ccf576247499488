package utils

import (
	"time"

	"rentfolio-backend/internal/domain"
)

// DaysInMonth returns the number of days in a given month
func DaysInMonth(year, month int) int {
	if month == 2 {
		// Check for leap year
		if (year%4 == 0 && year%100 != 0) || (year%400 == 0) {
			return 29
		}
		return 28
	}

	// Months with 30 days: April, June, September, November
	if month == 4 || month == 6 || month == 9 || month == 11 {
		return 30
	}

	// All other months have 31 days
	return 31
}

// roundRatioCents computes round(amount × num/den) to the nearest cent,
// halves rounding up. All arithmetic stays in integers.
func roundRatioCents(amountCents int64, num, den int) int64 {
	if den == 0 {
		return 0
	}
	n := amountCents * int64(num)
	return (2*n + int64(den)) / (2 * int64(den))
}

// ProrateFirstMonth returns the prorated rent for a lease starting on
// startDay of a month with daysInMonth days. The occupied span runs from
// startDay through the end of the month, both days included. Charges are
// never prorated; callers add them in full.
func ProrateFirstMonth(rentCents int64, startDay, daysInMonth int) int64 {
	occupied := daysInMonth - startDay + 1
	if occupied >= daysInMonth {
		return rentCents
	}
	return roundRatioCents(rentCents, occupied, daysInMonth)
}

// ProrateFinalMonth returns the prorated rent for a lease ending on endDay
// of a month with daysInMonth days. The occupied span runs from the 1st
// through endDay. An end on the last day of the month means a full month.
func ProrateFinalMonth(rentCents int64, endDay, daysInMonth int) int64 {
	if endDay >= daysInMonth {
		return rentCents
	}
	return roundRatioCents(rentCents, endDay, daysInMonth)
}

// DueDateFor returns the due date for a rent period, clamping the configured
// due day to the month's actual length (e.g. day 31 in February).
func DueDateFor(year, month, dueDay int) time.Time {
	day := dueDay
	if max := DaysInMonth(year, month); day > max {
		day = max
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// NextPeriod returns the calendar period following (year, month).
func NextPeriod(year, month int) (int, int) {
	if month == 12 {
		return year + 1, 1
	}
	return year, month + 1
}

// PeriodAfter reports whether (year, month) falls strictly after (refYear, refMonth).
func PeriodAfter(year, month, refYear, refMonth int) bool {
	if year != refYear {
		return year > refYear
	}
	return month > refMonth
}

// DeriveRentStatus is the single status derivation used by every code path
// that mutates a rent or its payments. Status is a total function of the
// amount due, the amount paid and the due date compared to now.
func DeriveRentStatus(amountDueCents, amountPaidCents int64, dueDate, now time.Time) domain.RentStatus {
	if amountPaidCents >= amountDueCents {
		return domain.RentStatusPaid
	}
	if amountPaidCents > 0 {
		return domain.RentStatusPartial
	}
	if dueDate.Before(now) {
		return domain.RentStatusLate
	}
	return domain.RentStatusPending
}
