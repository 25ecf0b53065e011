package server_test

import (
	"testing"

	"asset-janitor/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_BodyLimit(t *testing.T) {
	tests := []struct {
		name string
		mb   int
		want int
	}{
		{"Default", 0, 50 * 1024 * 1024},
		{"Negative", -3, 50 * 1024 * 1024},
		{"Custom", 8, 8 * 1024 * 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{BodyLimitMB: tt.mb}
			assert.Equal(t, tt.want, c.BodyLimit())
		})
	}
}

func TestConfig_Protected(t *testing.T) {
	assert.False(t, server.Config{}.Protected())
	assert.True(t, server.Config{ApiKey: "secret"}.Protected())
}
