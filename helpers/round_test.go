package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound1(t *testing.T) {
	// ties round up, not to even
	assert.Equal(t, 1.5, Round1(1.5))
	assert.Equal(t, 2.5, Round1(2.45))
	assert.Equal(t, 4.7, Round1(14.0/3.0))
	assert.Equal(t, 3.0, Round1(3.0))
	assert.Equal(t, 0.3, Round1(0.25))
	assert.Equal(t, 1.0, Round1(1.04))
}
