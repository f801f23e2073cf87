package repository

import (
	"strings"
	"testing"
)

// Every customer query must carry the outfitter filter inside the statement.
// These tests pin that property so a refactor cannot silently widen a query
// to all tenants.

func TestCustomerQueriesAreTenantScoped(t *testing.T) {
	queries := map[string]string{
		"list":   listCustomersQuery,
		"count":  countCustomersQuery,
		"get":    getCustomerQuery,
		"update": updateCustomerQuery,
		"delete": deleteCustomerQuery,
	}

	for name, query := range queries {
		if !strings.Contains(strings.ToLower(query), "outfitter_id = $1") {
			t.Errorf("%s query is missing the outfitter_id filter", name)
		}
	}
}

func TestInsertCustomerAssignsOwnerFirst(t *testing.T) {
	query := strings.ToLower(insertCustomerQuery)

	// The owning outfitter is the first bind parameter, always supplied from
	// the caller's scope.
	if !strings.Contains(query, "insert into customers (outfitter_id,") {
		t.Fatal("insert query must set outfitter_id explicitly")
	}
}

func TestMutationQueriesFilterByIDAndTenant(t *testing.T) {
	for name, query := range map[string]string{
		"get":    getCustomerQuery,
		"update": updateCustomerQuery,
		"delete": deleteCustomerQuery,
	} {
		lowered := strings.ToLower(query)
		if !strings.Contains(lowered, "outfitter_id = $1 and id = $2") {
			t.Errorf("%s query must filter by both tenant and row id", name)
		}
	}
}
