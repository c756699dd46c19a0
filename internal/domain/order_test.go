package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOrderOverlaps(t *testing.T) {
	o := &Order{
		IssueDate:  date(2025, time.June, 1),
		ReturnDate: date(2025, time.June, 5),
	}

	t.Run("OverlappingRange", func(t *testing.T) {
		assert.True(t, o.Overlaps(date(2025, time.June, 3), date(2025, time.June, 7)))
	})

	t.Run("ContainedRange", func(t *testing.T) {
		assert.True(t, o.Overlaps(date(2025, time.June, 2), date(2025, time.June, 3)))
	})

	t.Run("SameDayBoundary", func(t *testing.T) {
		// An order returning on the requested start date still conflicts.
		assert.True(t, o.Overlaps(date(2025, time.June, 5), date(2025, time.June, 10)))
		assert.True(t, o.Overlaps(date(2025, time.May, 20), date(2025, time.June, 1)))
	})

	t.Run("DisjointRange", func(t *testing.T) {
		assert.False(t, o.Overlaps(date(2025, time.June, 6), date(2025, time.June, 10)))
		assert.False(t, o.Overlaps(date(2025, time.May, 1), date(2025, time.May, 31)))
	})
}

func TestOrderIsLive(t *testing.T) {
	for _, s := range LiveOrderStatuses {
		assert.True(t, (&Order{Status: s}).IsLive(), "status %s should be live", s)
	}
	for _, s := range ClosedOrderStatuses {
		assert.False(t, (&Order{Status: s}).IsLive(), "status %s should not be live", s)
	}
}

func TestRentalDays(t *testing.T) {
	assert.Equal(t, int32(1), RentalDays(date(2025, time.June, 1), date(2025, time.June, 1)))
	assert.Equal(t, int32(5), RentalDays(date(2025, time.June, 1), date(2025, time.June, 5)))
	assert.Equal(t, int32(31), RentalDays(date(2025, time.July, 1), date(2025, time.July, 31)))
}

func TestIsClosedStatus(t *testing.T) {
	assert.True(t, IsClosedStatus(StatusCompleted))
	assert.True(t, IsClosedStatus(StatusCancelled))
	assert.False(t, IsClosedStatus(StatusPending))
	assert.False(t, IsClosedStatus(StatusMaintenance))
}
