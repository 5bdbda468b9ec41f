package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	domainErrors "github.com/sourcepay/prscore/internal/errors"
	"github.com/sourcepay/prscore/internal/models"
)

type CachedResult struct {
	Hash      string             `json:"hash"`
	PR        string             `json:"pr"`
	HeadSHA   string             `json:"head_sha"`
	Result    models.ScoreResult `json:"result"`
	CreatedAt time.Time          `json:"created_at"`
}

// Cache stores score results on disk, one JSON file per pull request head
// commit. A push to the pull request changes the key.
type Cache struct {
	cacheDir string
	ttl      time.Duration
	now      func() time.Time
}

// NewCache creates dir if needed and drops entries older than ttl.
// A zero ttl keeps entries until Clean is called.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, domainErrors.ErrCache.
			WithContext("dir", dir).
			WithError(err)
	}

	c := &Cache{
		cacheDir: dir,
		ttl:      ttl,
		now:      time.Now,
	}

	_ = c.CleanExpired()

	return c, nil
}

// GenerateHash returns the hex SHA-256 of content.
func (c *Cache) GenerateHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// KeyFor hashes owner/repo#number@headSHA.
func (c *Cache) KeyFor(ref models.PullRequestRef, headSHA string) string {
	return c.GenerateHash(ref.String() + "@" + headSHA)
}

// Get returns the result cached for ref at headSHA. Expired entries are
// removed and reported as a miss. An empty headSHA always misses.
func (c *Cache) Get(ref models.PullRequestRef, headSHA string) (*models.ScoreResult, bool, error) {
	if headSHA == "" {
		return nil, false, nil
	}

	filePath := c.path(c.KeyFor(ref, headSHA))

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, domainErrors.ErrCache.
			WithContext("path", filePath).
			WithError(err)
	}

	var cached CachedResult
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false, domainErrors.ErrCache.
			WithContext("path", filePath).
			WithContext("detail", "corrupt entry").
			WithError(err)
	}

	if c.expired(cached.CreatedAt) {
		_ = os.Remove(filePath)
		return nil, false, nil
	}

	if cached.HeadSHA != headSHA {
		return nil, false, nil
	}

	return &cached.Result, true, nil
}

// Set stores result for ref at headSHA. Fallback results and results without
// a head commit are skipped.
func (c *Cache) Set(ref models.PullRequestRef, headSHA string, result models.ScoreResult) error {
	if result.Fallback || headSHA == "" {
		return nil
	}

	hash := c.KeyFor(ref, headSHA)
	cached := CachedResult{
		Hash:      hash,
		PR:        ref.String(),
		HeadSHA:   headSHA,
		Result:    result,
		CreatedAt: c.now(),
	}

	data, err := json.MarshalIndent(cached, "", "  ")
	if err != nil {
		return domainErrors.ErrCache.WithError(err)
	}

	filePath := c.path(hash)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return domainErrors.ErrCache.
			WithContext("path", filePath).
			WithError(err)
	}

	return nil
}

// CleanExpired removes entries whose file is older than the TTL.
func (c *Cache) CleanExpired() error {
	entries, err := os.ReadDir(c.cacheDir)
	if err != nil {
		return domainErrors.ErrCache.
			WithContext("dir", c.cacheDir).
			WithError(err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if c.expired(info.ModTime()) {
			_ = os.Remove(filepath.Join(c.cacheDir, entry.Name()))
		}
	}

	return nil
}

// Clean removes the whole cache directory.
func (c *Cache) Clean() error {
	if err := os.RemoveAll(c.cacheDir); err != nil {
		return domainErrors.ErrCache.
			WithContext("dir", c.cacheDir).
			WithError(err)
	}
	return nil
}

func (c *Cache) Dir() string {
	return c.cacheDir
}

func (c *Cache) expired(createdAt time.Time) bool {
	return c.ttl > 0 && c.now().Sub(createdAt) > c.ttl
}

func (c *Cache) path(hash string) string {
	return filepath.Join(c.cacheDir, hash+".json")
}
