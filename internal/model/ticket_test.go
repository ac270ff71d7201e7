package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTicketSettled(t *testing.T) {
	assert.True(t, TicketSettled(TicketResolved))
	assert.True(t, TicketSettled(TicketClosed))
	assert.False(t, TicketSettled(TicketOpen))
	assert.False(t, TicketSettled(TicketInProgress))
}

func TestValidTicketCategory(t *testing.T) {
	for _, c := range TicketCategories {
		assert.True(t, ValidTicketCategory(c))
	}
	assert.False(t, ValidTicketCategory("unknown_category"))
	assert.False(t, ValidTicketCategory(""))
}

func TestValidTicketPriority(t *testing.T) {
	assert.True(t, ValidTicketPriority(PriorityUrgent))
	assert.False(t, ValidTicketPriority("critical"))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleUser))
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleNGO))
	assert.True(t, ValidRole(RoleVendor))
	assert.False(t, ValidRole("superadmin"))
	assert.False(t, ValidRole(""))
}
