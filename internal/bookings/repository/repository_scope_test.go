package repository

import (
	"strings"
	"testing"
)

func TestBookingQueriesAreTenantScoped(t *testing.T) {
	for name, query := range map[string]string{
		"list":     listBookingsQuery,
		"count":    countBookingsQuery,
		"get":      getBookingQuery,
		"notes":    updateBookingNotesQuery,
		"status":   updateBookingStatusQuery,
		"delete":   deleteBookingQuery,
		"lock":     lockBookingQuery,
		"guide":    guideInOutfitterQuery,
		"setGuide": setBookingGuideQuery,
	} {
		if !strings.Contains(strings.ToLower(query), "outfitter_id = $1") {
			t.Errorf("%s query is missing the outfitter_id filter", name)
		}
	}

	for name, query := range map[string]string{
		"insert":     insertBookingQuery,
		"assignment": insertGuideAssignmentQuery,
	} {
		if !strings.Contains(strings.ToLower(query), "(outfitter_id,") {
			t.Errorf("%s query must set outfitter_id explicitly", name)
		}
	}
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.want {
			t.Errorf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
