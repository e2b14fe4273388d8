// Package cache persists the compiled automaton bundle across restarts
// and hosts the admin quarantine store, the two distinct jobs the
// teacher's single bbolt-backed Ollama cache is split into here.
package cache

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/filstack/VED-jurchecker/internal/automaton"
	"github.com/filstack/VED-jurchecker/internal/config"
	"github.com/filstack/VED-jurchecker/internal/registry"
)

// BundleStore persists one automaton.Bundle per (csv_stem, strictness
// mode) cache key, as two files: a gob-encoded bundle and a sidecar
// holding the MD5 hash of the CSV bytes it was built from. Generalized
// from the teacher's anonymizer.PersistentCache (Get/Set/Close,
// per-value KV shape) to a whole-bundle snapshot cache, since this
// domain caches one build artifact per key rather than many
// independently-evictable values.
type BundleStore struct {
	dir string
}

// NewBundleStore returns a BundleStore rooted at dir. The directory is
// created if it does not already exist.
func NewBundleStore(dir string) (*BundleStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir %q: %w", dir, err)
	}
	return &BundleStore{dir: dir}, nil
}

func cacheStem(csvPath string) string {
	base := filepath.Base(csvPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (s *BundleStore) bundlePath(csvPath string, mode config.Strictness) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s_automaton.bin", cacheStem(csvPath), mode))
}

func (s *BundleStore) hashPath(csvPath string, mode config.Strictness) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s_hash.txt", cacheStem(csvPath), mode))
}

// Load returns the cached bundle for (csvPath, mode) if both the bundle
// and hash sidecar exist and the sidecar's hash matches the CSV's
// current content hash. A cache miss (a missing file or a stale hash)
// is ok=false with a nil error. err is non-nil only when the CSV cannot
// be hashed or the cached bundle cannot be decoded; ok is then false
// as well.
func (s *BundleStore) Load(csvPath string, mode config.Strictness) (bundle automaton.Bundle, ok bool, err error) {
	currentHash, err := registry.HashFile(csvPath)
	if err != nil {
		return automaton.Bundle{}, false, fmt.Errorf("hash %q: %w", csvPath, err)
	}

	storedHash, err := os.ReadFile(s.hashPath(csvPath, mode))
	if err != nil {
		return automaton.Bundle{}, false, nil
	}
	if strings.TrimSpace(string(storedHash)) != currentHash {
		return automaton.Bundle{}, false, nil
	}

	data, err := os.ReadFile(s.bundlePath(csvPath, mode))
	if err != nil {
		return automaton.Bundle{}, false, nil
	}

	var b automaton.Bundle
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&b); err != nil {
		return automaton.Bundle{}, false, fmt.Errorf("decode cached bundle: %w", err)
	}
	return b, true, nil
}

// Save gob-encodes bundle and writes it alongside a sidecar holding the
// CSV's current content hash, overwriting any previous cache entry for
// this (csvPath, mode) key.
func (s *BundleStore) Save(csvPath string, mode config.Strictness, bundle automaton.Bundle) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(bundle); err != nil {
		return fmt.Errorf("encode bundle: %w", err)
	}
	if err := os.WriteFile(s.bundlePath(csvPath, mode), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write bundle: %w", err)
	}

	hash, err := registry.HashFile(csvPath)
	if err != nil {
		return fmt.Errorf("hash %q: %w", csvPath, err)
	}
	if err := os.WriteFile(s.hashPath(csvPath, mode), []byte(hash), 0o644); err != nil {
		return fmt.Errorf("write hash sidecar: %w", err)
	}
	return nil
}
