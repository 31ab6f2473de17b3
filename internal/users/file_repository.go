package users

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/volt/internal/common"
	"github.com/dmitrijs2005/volt/internal/filex"
	"github.com/dmitrijs2005/volt/internal/logging"
)

const maxLineSize = 1 << 20

// FileRepository keeps accounts in a flat, append-only text file.
//
// The file is the source of truth. An index keyed by lowercased username is
// rebuilt whenever the file changed on disk since it was last read, and is
// updated after every write. The first record of a username wins.
//
// Create holds an exclusive lock on the file while it re-reads, checks and
// appends, so concurrent volt processes cannot register the same name twice.
type FileRepository struct {
	path        string
	lockTimeout time.Duration
	log         logging.Logger

	index     map[string]*User
	count     int
	loadedAt  time.Time
	loadedLen int64
	loaded    bool
}

// NewFileRepository opens the credential file at path, creating an empty
// one if it does not exist, and builds the index.
func NewFileRepository(ctx context.Context, path string, lockTimeout time.Duration, log logging.Logger) (*FileRepository, error) {
	if err := filex.EnsureFile(path); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}

	r := &FileRepository{
		path:        path,
		lockTimeout: lockTimeout,
		log:         log.With("store", "users", "path", path),
	}
	if err := r.load(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// Create appends user unless its username is already taken.
func (r *FileRepository) Create(ctx context.Context, user *User) error {
	lock, err := filex.AcquireLock(ctx, r.path, r.lockTimeout)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	defer func() {
		if err := lock.Release(); err != nil {
			r.log.Warn(ctx, "lock release failed", "error", err)
		}
	}()

	if err := r.load(ctx); err != nil {
		return err
	}

	k := key(user.UserName)
	if _, ok := r.index[k]; ok {
		return common.ErrUsernameTaken
	}

	if err := filex.AppendLine(r.path, user.line()); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}

	stored := *user
	r.index[k] = &stored
	r.count++
	if err := r.snapshot(); err != nil {
		return err
	}

	r.log.Info(ctx, "user record appended", "user", user.UserName)
	return nil
}

// GetUserByName returns the first record whose username matches userName
// case-insensitively.
func (r *FileRepository) GetUserByName(ctx context.Context, userName string) (*User, error) {
	if err := r.refresh(ctx); err != nil {
		return nil, err
	}

	u, ok := r.index[key(userName)]
	if !ok {
		return nil, common.ErrUserNotFound
	}
	found := *u
	return &found, nil
}

// Count returns the number of well-formed records in the file, duplicates
// included.
func (r *FileRepository) Count(ctx context.Context) (int, error) {
	if err := r.refresh(ctx); err != nil {
		return 0, err
	}
	return r.count, nil
}

// refresh reloads the index when the file size or modification time moved
// since the last load.
func (r *FileRepository) refresh(ctx context.Context) error {
	info, err := os.Stat(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.reset()
			r.loaded = false
			return nil
		}
		return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	if r.loaded && info.Size() == r.loadedLen && info.ModTime().Equal(r.loadedAt) {
		return nil
	}
	return r.load(ctx)
}

func (r *FileRepository) reset() {
	r.index = make(map[string]*User)
	r.count = 0
}

// load rebuilds the index from the file. Malformed lines and duplicate
// usernames are skipped and logged. On a read error the previous index is
// kept.
func (r *FileRepository) load(ctx context.Context) error {
	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.reset()
			r.loaded = false
			return nil
		}
		return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	defer f.Close()

	index := make(map[string]*User)
	var count, malformed, duplicates int
	for ln, err := range filex.Lines(f, maxLineSize) {
		if err != nil {
			return fmt.Errorf("%w: read %s: %v", common.ErrStorageUnavailable, r.path, err)
		}
		if ln.TooLong {
			malformed++
			r.log.Warn(ctx, "skipping credential line", "line", ln.No,
				"error", fmt.Errorf("%w: longer than %d bytes", common.ErrMalformedRecord, maxLineSize))
			continue
		}
		u, err := parseLine(ln.Text)
		if err != nil {
			if ln.Text != "" {
				malformed++
				r.log.Warn(ctx, "skipping credential line", "line", ln.No, "error", err)
			}
			continue
		}
		count++

		k := key(u.UserName)
		if _, ok := index[k]; ok {
			duplicates++
			r.log.Warn(ctx, "duplicate username record ignored", "line", ln.No, "user", u.UserName)
			continue
		}
		index[k] = u
	}

	if err := r.snapshot(); err != nil {
		return err
	}
	r.index, r.count = index, count
	r.log.Debug(ctx, "credential index rebuilt", "records", count, "malformed", malformed, "duplicates", duplicates)
	return nil
}

func (r *FileRepository) snapshot() error {
	info, err := os.Stat(r.path)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	r.loadedAt = info.ModTime()
	r.loadedLen = info.Size()
	r.loaded = true
	return nil
}
