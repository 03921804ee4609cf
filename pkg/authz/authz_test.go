package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowList(t *testing.T) {
	p := NewAllowList([]string{"u-1", "u-2", "u-1"})

	assert.True(t, p.IsAdmin("u-1"))
	assert.True(t, p.IsAdmin("u-2"))
	assert.False(t, p.IsAdmin("u-3"))
	assert.False(t, p.IsAdmin(""))
}

func TestAllowListEmpty(t *testing.T) {
	p := NewAllowList(nil)
	assert.False(t, p.IsAdmin("u-1"))
}
