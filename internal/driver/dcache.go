package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"tern/internal/project"
	"tern/internal/symbols"
)

// Bump when the payload layout changes; stale entries just miss.
const diskCacheSchemaVersion uint16 = 1

// DiskCache keeps the export surfaces of cleanly canonicalized modules,
// keyed by module hash. A hit lets the driver skip re-canonicalizing a
// module whose own tree and whole dependency closure are unchanged: the
// dependents only ever consume the exports. Thread-safe.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is one cached module. Only modules without problems are ever
// stored, so a hit implies a clean module.
type DiskPayload struct {
	Schema      uint16
	Name        string
	ContentHash project.Digest
	ModuleHash  project.Digest
	Exports     []CachedExport
}

// CachedExport is one export entry with the symbol stripped; symbols are
// re-minted on load since they only need to be unique within a run.
type CachedExport struct {
	Name  string
	Kind  uint8
	Arity int
	Of    string
}

// OpenDiskCache initializes the cache at the standard user location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt initializes the cache at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key project.Digest) string {
	return filepath.Join(c.dir, "mods", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a payload, atomically replacing any previous
// entry under the same key.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(f.Name()) }()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload. A missing entry or a schema mismatch is a miss, not
// an error.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() { _ = f.Close() }()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, nil
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// packExports strips symbols for storage.
func packExports(exports *symbols.Exports) []CachedExport {
	sorted := exports.Sorted()
	out := make([]CachedExport, 0, len(sorted))
	for _, exp := range sorted {
		out = append(out, CachedExport{
			Name:  exp.Name,
			Kind:  uint8(exp.Kind),
			Arity: exp.Arity,
			Of:    exp.Of,
		})
	}
	return out
}

// unpackExports re-mints symbols for a cached export surface.
func unpackExports(store *symbols.Store, module symbols.ModuleID, cached []CachedExport) *symbols.Exports {
	out := symbols.NewExports(module)
	for _, exp := range cached {
		out.Add(symbols.Export{
			Name:   exp.Name,
			Symbol: store.Fresh(module, exp.Name),
			Kind:   symbols.ExportKind(exp.Kind),
			Arity:  exp.Arity,
			Of:     exp.Of,
		})
	}
	return out
}
