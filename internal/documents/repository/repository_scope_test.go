package repository

import (
	"strings"
	"testing"
)

func TestDocumentQueriesAreTenantScoped(t *testing.T) {
	for name, query := range map[string]string{
		"list":            listDocumentsQuery,
		"get":             getDocumentQuery,
		"delete":          deleteDocumentQuery,
		"customer exists": customerExistsQuery,
		"booking exists":  bookingExistsQuery,
	} {
		if !strings.Contains(strings.ToLower(query), "outfitter_id = $1") {
			t.Errorf("%s query is missing the outfitter_id filter", name)
		}
	}

	if !strings.Contains(strings.ToLower(insertDocumentQuery), "insert into documents (outfitter_id,") {
		t.Error("insert query must set outfitter_id explicitly")
	}
}
