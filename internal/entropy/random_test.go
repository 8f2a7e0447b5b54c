package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSeedIsPositive(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Positive(t, NewSeed())
	}
}

func TestSeedOrKeepsExplicitSeed(t *testing.T) {
	assert.Equal(t, int64(42), SeedOr(42))
	assert.NotZero(t, SeedOr(0))
}
