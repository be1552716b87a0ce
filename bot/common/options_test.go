package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitCustomID(t *testing.T) {
	action, payload := SplitCustomID("bj_hit:4f1c")
	assert.Equal(t, "bj_hit", action)
	assert.Equal(t, "4f1c", payload)

	action, payload = SplitCustomID("road_cash")
	assert.Equal(t, "road_cash", action)
	assert.Empty(t, payload)
}
