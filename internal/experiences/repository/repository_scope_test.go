package repository

import (
	"strings"
	"testing"
)

func TestExperienceQueriesAreTenantScoped(t *testing.T) {
	for name, query := range map[string]string{
		"list":           listExperiencesQuery,
		"get":            getExperienceQuery,
		"update":         updateExperienceQuery,
		"delete":         deleteExperienceQuery,
		"locationExists": locationExistsQuery,
	} {
		if !strings.Contains(strings.ToLower(query), "outfitter_id = $1") {
			t.Errorf("%s query is missing the outfitter_id filter", name)
		}
	}

	if !strings.Contains(strings.ToLower(insertExperienceQuery), "insert into experiences (outfitter_id,") {
		t.Error("insert query must set outfitter_id explicitly")
	}
}
