package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	assert.Equal(t, 5, ToInt(5))
	assert.Equal(t, 7, ToInt(int64(7)))
	assert.Equal(t, 3, ToInt(3.9))
	assert.Equal(t, 42, ToInt(" 42 "))
	assert.Equal(t, 9, ToInt([]byte("9")))
	assert.Equal(t, 0, ToInt("abc"))
	assert.Equal(t, 0, ToInt(nil))
}

func TestToBool(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{true, true},
		{false, false},
		{1, true},
		{0, false},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"1", true},
		{"0", false},
		{"", false},
		{[]byte("true"), true},
		{3.5, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ToBool(tt.in), "input %v", tt.in)
	}
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a/1.jpg", "b/2.jpg"}, Dedupe([]string{"a/1.jpg", " ", "b/2.jpg", "a/1.jpg"}))
	assert.Nil(t, Dedupe(nil))
}
