package repository

import (
	"strings"
	"testing"
)

func TestLocationQueriesAreTenantScoped(t *testing.T) {
	for name, query := range map[string]string{
		"list":   listLocationsQuery,
		"get":    getLocationQuery,
		"update": updateLocationQuery,
		"delete": deleteLocationQuery,
	} {
		if !strings.Contains(strings.ToLower(query), "outfitter_id = $1") {
			t.Errorf("%s query is missing the outfitter_id filter", name)
		}
	}

	if !strings.Contains(strings.ToLower(insertLocationQuery), "insert into locations (outfitter_id,") {
		t.Error("insert query must set outfitter_id explicitly")
	}
}
