package settings

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
)

// TokenStore persists the catalog bearer token in a small param file,
// flock-guarded so the browser and a concurrent `estatemap login`
// don't tear each other's writes.
type TokenStore struct {
	path string
}

func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

// Token returns the stored token, or "" when none has been saved yet.
func (t *TokenStore) Token() (string, error) {
	lock := flock.New(t.lockPath())
	if err := lock.RLock(); err != nil {
		return "", errors.Wrap(err, "can't lock token file")
	}
	defer lock.Unlock()

	data, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrap(err, "can't read token file")
	}
	return strings.TrimSpace(string(data)), nil
}

func (t *TokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0o775); err != nil {
		return errors.Wrap(err, "can't create token directory")
	}

	lock := flock.New(t.lockPath())
	if err := lock.Lock(); err != nil {
		return errors.Wrap(err, "can't lock token file")
	}
	defer lock.Unlock()

	if err := os.WriteFile(t.path, []byte(token+"\n"), 0o600); err != nil {
		return errors.Wrap(err, "can't write token file")
	}
	return nil
}

func (t *TokenStore) lockPath() string {
	return t.path + ".lock"
}
