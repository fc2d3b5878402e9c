package cryptox

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyPassword(t *testing.T) {
	hasher := NewHasher(4, 1)
	defer hasher.Close()

	hash, err := hasher.Hash("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, VerifyPassword("hunter2", hash))
	assert.False(t, VerifyPassword("wrong", hash))
	assert.False(t, VerifyPassword("hunter2", "not-a-hash"))
}

func TestHasher(t *testing.T) {
	hasher := NewHasher(4, 2)
	defer hasher.Close()

	hash, err := hasher.Hash("hunter2")
	require.NoError(t, err)

	assert.True(t, hasher.Verify("hunter2", hash))
	assert.False(t, hasher.Verify("wrong", hash))
}

func TestHasherConcurrent(t *testing.T) {
	hasher := NewHasher(4, 4)
	defer hasher.Close()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hash, err := hasher.Hash("hunter2")
			assert.NoError(t, err)
			assert.True(t, hasher.Verify("hunter2", hash))
		}()
	}
	wg.Wait()
}

func TestHasherClampsInvalidCost(t *testing.T) {
	// Out-of-range costs fall back to the bcrypt default instead of failing
	hasher := NewHasher(99, 1)
	defer hasher.Close()

	hash, err := hasher.Hash("pw")
	require.NoError(t, err)
	assert.True(t, hasher.Verify("pw", hash))
}
