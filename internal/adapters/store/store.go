// Package store persists one layer of command definitions as a checksummed
// JSON file.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/oi/internal/core/domain"
	"go.trai.ch/oi/internal/core/ports"
	"go.trai.ch/zerr"
)

// FormatVersion is the version of the definitions file layout.
const FormatVersion = 1

type envelope struct {
	Version     int             `json:"version"`
	Fingerprint string          `json:"fingerprint,omitempty"`
	Checksum    string          `json:"checksum"`
	Definitions json.RawMessage `json:"definitions"`
}

// Store implements ports.DefinitionStore on the local file system.
type Store struct {
	logger ports.Logger
}

// NewStore creates a new Store.
func NewStore(logger ports.Logger) *Store {
	return &Store{logger: logger}
}

// Load reads the definitions file at path. Files that cannot be trusted are
// reported as absent so the layer is rebuilt.
func (s *Store) Load(path string) (*domain.Cache, string, error) {
	//nolint:gosec // path is a layer directory chosen by the profile locator
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", nil
		}
		return nil, "", zerr.With(zerr.Wrap(domain.ErrStoreReadFailed, err.Error()), "path", path)
	}

	cache, fingerprint, err := decode(data)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("ignoring definitions file %s: %v", path, err))
		return nil, "", nil
	}
	return cache, fingerprint, nil
}

func decode(data []byte) (*domain.Cache, string, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, "", zerr.Wrap(domain.ErrStoreUnmarshalFailed, err.Error())
	}
	if env.Version != FormatVersion {
		return nil, "", zerr.With(zerr.Wrap(domain.ErrVersionMismatch, "decode definitions"), "version", env.Version)
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, env.Definitions); err != nil {
		return nil, "", zerr.Wrap(domain.ErrStoreUnmarshalFailed, err.Error())
	}
	if sum := checksum(compact.Bytes()); sum != env.Checksum {
		return nil, "", zerr.With(zerr.Wrap(domain.ErrChecksumMismatch, "decode definitions"), "checksum", sum)
	}

	cache := domain.NewCache()
	if err := json.Unmarshal(compact.Bytes(), cache); err != nil {
		return nil, "", zerr.Wrap(domain.ErrStoreUnmarshalFailed, err.Error())
	}
	return cache, env.Fingerprint, nil
}

// Save writes cache to path. The file is written next to its destination
// and renamed into place, so readers never observe a partial file.
func (s *Store) Save(path string, cache *domain.Cache, fingerprint string) error {
	defs, err := json.Marshal(cache)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreMarshalFailed, err.Error()), "path", path)
	}

	data, err := json.MarshalIndent(envelope{
		Version:     FormatVersion,
		Fingerprint: fingerprint,
		Checksum:    checksum(defs),
		Definitions: defs,
	}, "", "  ")
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreMarshalFailed, err.Error()), "path", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreCreateFailed, err.Error()), "path", dir)
	}

	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", path)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	wrap := func(cause error) error {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, cause.Error()), "path", path)
	}
	if _, err := tmp.Write(data); err != nil {
		return wrap(err)
	}
	if err := tmp.Sync(); err != nil {
		return wrap(err)
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		return wrap(err)
	}
	if err := tmp.Close(); err != nil {
		return wrap(err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return wrap(err)
	}
	return nil
}

// Remove deletes the definitions file at path.
func (s *Store) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(domain.ErrStoreRemoveFailed, err.Error()), "path", path)
	}
	return nil
}

func checksum(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
