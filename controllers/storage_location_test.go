package controllers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDuplicateLocationCode(t *testing.T) {
	assignments := []StorageAssignment{
		{ItemID: uuid.New(), BoxCode: "BOX-A1", LocationCode: "EST-01"},
		{ItemID: uuid.New(), BoxCode: "BOX-A2", LocationCode: "est-01 "},
	}

	code, dup := duplicateLocationCode(assignments)
	assert.True(t, dup)
	assert.Equal(t, "EST-01", code)
}

func TestDuplicateLocationCodeIgnoresEmpty(t *testing.T) {
	assignments := []StorageAssignment{
		{ItemID: uuid.New(), BoxCode: "BOX-A1"},
		{ItemID: uuid.New(), BoxCode: "BOX-A2"},
		{ItemID: uuid.New(), BoxCode: "BOX-A3", LocationCode: "EST-02"},
	}

	_, dup := duplicateLocationCode(assignments)
	assert.False(t, dup)
}
