package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPotentialReturn(t *testing.T) {
	assert.Equal(t, int64(750), PotentialReturn(500, 50))
	assert.Equal(t, int64(100), PotentialReturn(100, 0))
	assert.Equal(t, int64(101), PotentialReturn(67, 51))
}

func TestReturnFits(t *testing.T) {
	tests := []struct {
		name    string
		stake   int64
		percent int64
		want    bool
	}{
		{"ordinary", 500, 50, true},
		{"zero profit", math.MaxInt64, 0, true},
		{"huge profit small stake", 5000, 9_000_000_000_000_000, false},
		{"product overflows", math.MaxInt64 / 2, 3, false},
		{"sum overflows", math.MaxInt64 - 10, 100, false},
		{"intermediate product overflows", math.MaxInt64 / 2, 100, false},
		{"large stake at even money", math.MaxInt64 / 200, 100, true},
		{"negative stake", -1, 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReturnFits(tt.stake, tt.percent))
		})
	}
}
