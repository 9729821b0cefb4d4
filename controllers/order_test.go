package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderSortClauseWhitelist(t *testing.T) {
	assert.Equal(t, "created_at desc", orderSortClause("date", "desc"))
	assert.Equal(t, "total asc", orderSortClause("total", "asc"))
	assert.Equal(t, "status desc", orderSortClause("status", "desc"))
	assert.Equal(t, "reference asc", orderSortClause("reference", "asc"))
}

func TestOrderSortClauseRejectsUnknownField(t *testing.T) {
	// Anything not whitelisted falls back to created_at; user input never
	// reaches the ORDER BY as an identifier.
	assert.Equal(t, "created_at desc", orderSortClause("total; DROP TABLE orders", "desc"))
	assert.Equal(t, "created_at desc", orderSortClause("", "desc"))
}

func TestOrderSortClauseRejectsUnknownDirection(t *testing.T) {
	assert.Equal(t, "total desc", orderSortClause("total", "sideways"))
	assert.Equal(t, "total desc", orderSortClause("total", ""))
}
