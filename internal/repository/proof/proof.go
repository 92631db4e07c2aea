package proof

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// PublicPrefix is the URL path uploaded proofs are served under.
const PublicPrefix = "/proofs/"

const maxNameAttempts = 32

var (
	ErrEmptyFileName = errors.New("empty proof file name")
	ErrNameTaken     = errors.New("no free proof file name")
)

// Storage writes uploaded payment screenshots to a directory that is also
// served read-only over HTTP.
type Storage struct {
	dir string
	now func() time.Time
}

func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create proofs dir %q: %w", dir, err)
	}
	return &Storage{
		dir: dir,
		now: time.Now,
	}, nil
}

// Dir is the directory proofs are written to.
func (s *Storage) Dir() string {
	return s.dir
}

// Check reports whether the proofs directory is still usable.
func (s *Storage) Check(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("stat proofs dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("proofs dir %q is not a directory", s.dir)
	}
	return nil
}

// Save stores content as "{unixMillis}-{baseName}" and returns the public
// reference, e.g. "/proofs/1767268800000-receipt.png". When that name is
// taken a counter is inserted ("{unixMillis}-{n}-{baseName}"), so every
// returned reference belongs to exactly one call.
func (s *Storage) Save(ctx context.Context, fileName string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	base := baseName(fileName)
	if base == "" {
		return "", ErrEmptyFileName
	}

	stamp := strconv.FormatInt(s.now().UnixMilli(), 10)

	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name := stamp + "-" + base
		if attempt > 0 {
			name = stamp + "-" + strconv.Itoa(attempt) + "-" + base
		}

		err := s.create(name, content)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		return PublicPrefix + name, nil
	}

	return "", fmt.Errorf("%w: %s-%s", ErrNameTaken, stamp, base)
}

func (s *Storage) create(name string, content []byte) error {
	target := filepath.Join(s.dir, name)

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return err
		}
		return fmt.Errorf("create proof %q: %w", name, err)
	}

	_, err = f.Write(content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(target)
		return fmt.Errorf("write proof %q: %w", name, err)
	}
	return nil
}

// Remove deletes a previously saved proof by its public reference.
func (s *Storage) Remove(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name := baseName(strings.TrimPrefix(ref, PublicPrefix))
	if name == "" {
		return ErrEmptyFileName
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove proof %q: %w", name, err)
	}
	return nil
}

// baseName drops any directory part a client may have put in the file name,
// including Windows separators.
func baseName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	base := path.Base(strings.TrimSpace(name))
	if base == "." || base == "/" || base == ".." {
		return ""
	}
	return base
}
