package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nursery/config"
)

func TestValidSizeFollowsRules(t *testing.T) {
	t.Cleanup(func() { rules = config.DefaultRules() })

	assert.True(t, validSize("small"))
	assert.True(t, validSize("medium"))
	assert.True(t, validSize("large"))
	assert.False(t, validSize("giant"))
	assert.False(t, validSize(""))

	custom := config.DefaultRules()
	custom.Sizes = []string{"dwarf", "standard"}
	UseRules(custom)

	assert.True(t, validSize("dwarf"))
	assert.False(t, validSize("small"))
}
