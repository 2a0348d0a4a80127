package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubcommands(t *testing.T) {
	tests := []struct {
		msg  string
		use  string
		long string
	}{
		{"create", getCreateCmd().Use, getCreateCmd().Long},
		{"extract", getExtractCmd().Use, getExtractCmd().Long},
		{"transform", getTransformCmd().Use, getTransformCmd().Long},
		{"load", getLoadCmd().Use, getLoadCmd().Long},
		{"run", getRunCmd().Use, getRunCmd().Long},
	}

	for _, v := range tests {
		assert.Equal(t, v.msg, v.use, v.msg)
		assert.NotEmpty(t, v.long, v.msg)
	}
	assert.Contains(t, getCreateCmd().Long, "GORM AutoMigrate")
	assert.NotNil(t, getRunCmd().RunE)
}
