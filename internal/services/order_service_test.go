package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDayStaysOnLocalDay(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	early := time.Date(2026, 9, 1, 7, 30, 0, 0, jst)

	got := startOfDay(early)

	want := time.Date(2026, 9, 1, 0, 0, 0, 0, jst)
	assert.True(t, got.Equal(want), "want %v, got %v", want, got)
	assert.Equal(t, jst, got.Location())
}

func TestStartOfDayWesternZoneEvening(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	late := time.Date(2026, 9, 1, 22, 10, 0, 0, est)

	got := startOfDay(late)

	assert.True(t, got.Equal(time.Date(2026, 9, 1, 0, 0, 0, 0, est)))
}

func TestListTodayWindowUsesInjectedClock(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	s := &OrderService{now: func() time.Time {
		return time.Date(2026, 9, 1, 7, 30, 0, 0, jst)
	}}

	midnight := startOfDay(s.now())

	// 07:30 JST is still Aug 31 in UTC; the window must start on Sep 1 local.
	assert.Equal(t, 1, midnight.Day())
	assert.Equal(t, time.September, midnight.Month())
	assert.True(t, midnight.Before(s.now()))
}
