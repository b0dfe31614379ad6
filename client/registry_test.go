package client

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_RefreshNotCounted(t *testing.T) {
	var r Registry
	r.Initialize()

	// first hit on a unit counts
	assert.True(t, r.Continue("10.0.0.1", "FIT2004"))
	// same client hitting the same page again is just a refresh
	assert.False(t, r.Continue("10.0.0.1", "FIT2004"))
	// a different unit counts again
	assert.True(t, r.Continue("10.0.0.1", "FIT2099"))
	// and going back counts too
	assert.True(t, r.Continue("10.0.0.1", "FIT2004"))
}

func TestRegistry_ClientsIndependent(t *testing.T) {
	var r Registry
	r.Initialize()

	assert.True(t, r.Continue("10.0.0.1", "FIT2004"))
	assert.True(t, r.Continue("10.0.0.2", "FIT2004"))

	assert.Equal(t, 2, r.Count())
}

func TestRegistry_Dump(t *testing.T) {
	var r Registry
	r.Initialize()

	for i := 0; i < 10; i++ {
		r.Continue(fmt.Sprintf("10.0.0.%d", i), "FIT2004")
	}

	assert.Len(t, r.Dump(5), 5)
	assert.Len(t, r.Dump(100), 10)
}
