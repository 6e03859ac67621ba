package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when CachePayload format changes.
const cacheSchemaVersion uint16 = 1

// Digest is a SHA-256 content digest.
type Digest [32]byte

// DiskCache remembers which content+config combinations are already
// formatted, so unchanged files are skipped on repeat runs.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload stores the formatting parameters a digest was produced
// under.
type CachePayload struct {
	Schema   uint16
	Wrap     int
	TabWidth int
}

// OpenDiskCache initializes and returns a disk cache at the standard
// location.
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

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "fmt", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *CachePayload) error {
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
	defer func() {
		_ = os.Remove(f.Name())
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache. A payload with
// a stale schema is treated as a miss.
func (c *DiskCache) Get(key Digest, out *CachePayload) (bool, error) {
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
	defer func() {
		_ = f.Close()
	}()
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != cacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	return os.RemoveAll(filepath.Join(c.dir, "fmt"))
}

// contentDigest hashes formatted output for use as a cache key component.
func contentDigest(data []byte) Digest {
	return sha256.Sum256(data)
}

// cacheKey derives the cache key from the content digest and every option
// that affects the output bytes.
func cacheKey(content Digest, opts FormatOptions) Digest {
	h := sha256.New()
	h.Write(content[:])

	cfg := opts.wrapConfig()
	var nums [8]byte
	binary.LittleEndian.PutUint32(nums[0:], uint32(cfg.Width))
	binary.LittleEndian.PutUint32(nums[4:], uint32(cfg.TabWidth))
	h.Write(nums[:])

	for _, fam := range opts.Families {
		h.Write([]byte{byte(fam.Kind)})
		h.Write([]byte(fam.Open))
		h.Write([]byte{0})
		h.Write([]byte(fam.Close))
		h.Write([]byte{0})
	}
	for _, b := range opts.Blocks {
		h.Write([]byte(b.Open))
		h.Write([]byte{0})
		h.Write([]byte(b.Close))
		h.Write([]byte{0})
	}

	var key Digest
	copy(key[:], h.Sum(nil))
	return key
}
