package cryptox

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/ezbase/ezbase/pkg/utils"
)

// VerifyPassword compares a plain password with a hashed password
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Hasher dispatches bcrypt work to a bounded worker pool. bcrypt is
// intentionally slow; running it inline would stall the request goroutine
// and everything queued behind the collection locks it holds.
type Hasher struct {
	pool *utils.WorkerPool
	cost int
}

// NewHasher creates a hasher with the given bcrypt cost backed by a pool of
// the given size
func NewHasher(cost, workers int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{
		pool: utils.NewWorkerPool(workers),
		cost: cost,
	}
}

// Hash computes the bcrypt hash of password on a pool worker
func (h *Hasher) Hash(password string) (string, error) {
	type result struct {
		hash string
		err  error
	}
	done := make(chan result, 1)
	h.pool.AddTask(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
		done <- result{hash: string(hash), err: err}
	})
	r := <-done
	return r.hash, r.err
}

// Verify checks password against hash on a pool worker
func (h *Hasher) Verify(password, hash string) bool {
	done := make(chan bool, 1)
	h.pool.AddTask(func() {
		done <- VerifyPassword(password, hash)
	})
	return <-done
}

// Close releases the worker pool
func (h *Hasher) Close() {
	h.pool.Close()
}
