// Package filex holds the small file-system helpers used by the flat-file
// stores: creating an empty backing file on first access and serializing
// writers with an advisory lock file.
package filex

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 25 * time.Millisecond

// EnsureFile creates path (and its parent directory) as an empty file if it
// does not exist yet. An existing file is left untouched.
func EnsureFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil
		}
		return fmt.Errorf("create %s: %w", path, err)
	}
	return f.Close()
}

// AppendLine appends line to path in a single write.
func AppendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Lock is an exclusive advisory lock held on "<path>.lock".
type Lock struct {
	fl *flock.Flock
}

// AcquireLock blocks until the lock for path is held, ctx is done or
// timeout elapses. A zero timeout waits for ctx only.
func AcquireLock(ctx context.Context, path string, timeout time.Duration) (*Lock, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	fl := flock.New(path + ".lock")
	ok, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("lock %s: not acquired", path)
	}
	return &Lock{fl: fl}, nil
}

// Release drops the lock. The lock file itself is kept for the next writer.
func (l *Lock) Release() error {
	return l.fl.Unlock()
}
