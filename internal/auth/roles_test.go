package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIRole(t *testing.T) {
	assert.Equal(t, RoleUser, APIRole("cliente"))
	assert.Equal(t, RoleAdmin, APIRole("staff"))
	assert.Equal(t, RoleAdmin, APIRole("admin"))
	// Unknown values pass through so a schema change surfaces instead of
	// silently demoting everyone.
	assert.Equal(t, "supervisor", APIRole("supervisor"))
}

func TestDBRole(t *testing.T) {
	assert.Equal(t, "cliente", DBRole(RoleUser))
	assert.Equal(t, "admin", DBRole(RoleAdmin))
	assert.Equal(t, "x", DBRole("x"))
}
