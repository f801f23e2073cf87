package repository

import (
	"strings"
	"testing"
)

func TestDashboardQueriesAreTenantScoped(t *testing.T) {
	for name, query := range map[string]string{
		"customers": countCustomersQuery,
		"pending":   countPendingBookingsQuery,
		"upcoming":  countUpcomingBookingsQuery,
		"revenue":   monthRevenueQuery,
	} {
		if !strings.Contains(strings.ToLower(query), "outfitter_id = $1") {
			t.Errorf("%s query is missing the outfitter_id filter", name)
		}
	}
}
