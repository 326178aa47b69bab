package matcher

import (
	"errors"
	"sync"

	"github.com/gofrs/flock"
)

// ErrAlreadyRunning is returned when an enrichment pass is requested while
// another pass holds the lease. The request is rejected, not queued.
var ErrAlreadyRunning = errors.New("enrichment pass already running")

// Lease guards the single-instance enrichment pass. It is injectable so
// tests can run passes without cross-test interference.
type Lease interface {
	TryAcquire() (bool, error)
	Release() error
}

// MemoryLease is an in-process lease.
type MemoryLease struct {
	mu   sync.Mutex
	held bool
}

// NewMemoryLease creates an in-process lease.
func NewMemoryLease() *MemoryLease {
	return &MemoryLease{}
}

// TryAcquire takes the lease if free. It never blocks.
func (l *MemoryLease) TryAcquire() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held {
		return false, nil
	}
	l.held = true
	return true, nil
}

// Release frees the lease.
func (l *MemoryLease) Release() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held = false
	return nil
}

// FileLease is a cross-process lease backed by an advisory file lock,
// for deployments where the daemon and the CLI may both trigger a pass.
type FileLease struct {
	lock *flock.Flock
}

// NewFileLease creates a lease backed by the given lock file path.
func NewFileLease(path string) *FileLease {
	return &FileLease{lock: flock.New(path)}
}

// TryAcquire attempts to take the file lock without blocking.
func (l *FileLease) TryAcquire() (bool, error) {
	return l.lock.TryLock()
}

// Release drops the file lock.
func (l *FileLease) Release() error {
	return l.lock.Unlock()
}
