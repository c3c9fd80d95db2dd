package apricot

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolSeed(t *testing.T) {
	assert.Equal(t, "POOL__aa", PoolSeed(0))
	assert.Equal(t, "POOL__ah", PoolSeed(7))
	assert.Equal(t, "POOL__ba", PoolSeed(16))
	assert.Equal(t, "POOL__pp", PoolSeed(255))

	pattern := regexp.MustCompile(`^POOL__[a-p][a-p]$`)
	seen := make(map[string]uint8)
	for i := 0; i < 256; i++ {
		seed := PoolSeed(uint8(i))
		assert.Len(t, seed, 8)
		assert.Regexp(t, pattern, seed)

		existing, ok := seen[seed]
		assert.False(t, ok, "pool %d and %d share seed %s", existing, i, seed)
		seen[seed] = uint8(i)
	}
	assert.Len(t, seen, 256)
}

func TestUsersPageSeed(t *testing.T) {
	assert.Equal(t, "UsersPage_0", UsersPageSeed(0))
	assert.Equal(t, "UsersPage_17", UsersPageSeed(17))
	assert.Equal(t, "UsersPage_65534", UsersPageSeed(65534))
}
