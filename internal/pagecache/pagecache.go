// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pagecache keeps raw fetched pages in a local SQLite database so
// repeated lookups of the same character do not hit the network. Pages are
// stored zstd-compressed. Only source documents are cached; extracted
// records are always recomputed.
package pagecache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
	_ "github.com/mattn/go-sqlite3"
)

const dbFile = "pages.db"

// Cache is a SQLite-backed page store keyed by character.
type Cache struct {
	db     *sql.DB
	maxAge time.Duration

	// now is replaced in tests.
	now func() time.Time
}

// Open opens or creates the cache database under dir. Entries older than
// maxAge are treated as missing; zero means entries never expire.
func Open(dir string, maxAge time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, dbFile)+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	c := &Cache{db: db, maxAge: maxAge, now: time.Now}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return c, nil
}

// Close releases the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) createSchema() error {
	_, err := c.db.Exec(`CREATE TABLE IF NOT EXISTS pages (
		key        TEXT PRIMARY KEY,
		body       BLOB NOT NULL,
		size       INTEGER NOT NULL,
		fetched_at TEXT NOT NULL
	)`)
	return err
}

// Get returns the cached page for key. ok is false when there is no entry
// or the entry has expired.
func (c *Cache) Get(ctx context.Context, key string) (page string, ok bool, err error) {
	var (
		body      []byte
		fetchedAt string
	)
	err = c.db.QueryRowContext(ctx,
		`SELECT body, fetched_at FROM pages WHERE key = ?`, key,
	).Scan(&body, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading cached page %q: %w", key, err)
	}

	if c.maxAge > 0 {
		at, err := time.Parse(time.RFC3339Nano, fetchedAt)
		if err != nil || c.now().Sub(at) > c.maxAge {
			return "", false, nil
		}
	}

	data, err := decompress(body)
	if err != nil {
		return "", false, fmt.Errorf("decompressing cached page %q: %w", key, err)
	}
	return string(data), true, nil
}

// Put stores page under key, replacing any previous entry.
func (c *Cache) Put(ctx context.Context, key, page string) error {
	body := compress([]byte(page))
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO pages (key, body, size, fetched_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET body = excluded.body, size = excluded.size, fetched_at = excluded.fetched_at`,
		key, body, len(page), c.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("writing cached page %q: %w", key, err)
	}
	return nil
}

// Clear removes every entry and returns how many were removed.
func (c *Cache) Clear(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM pages`)
	if err != nil {
		return 0, fmt.Errorf("clearing cache: %w", err)
	}
	return res.RowsAffected()
}

// Stats summarizes the cache contents.
type Stats struct {
	Entries     int64
	RawBytes    int64
	StoredBytes int64
}

// Stats reports the number of entries and their raw and compressed sizes.
func (c *Cache) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := c.db.QueryRowContext(ctx,
		`SELECT count(*), coalesce(sum(size), 0), coalesce(sum(length(body)), 0) FROM pages`,
	).Scan(&s.Entries, &s.RawBytes, &s.StoredBytes)
	if err != nil {
		return Stats{}, fmt.Errorf("reading cache stats: %w", err)
	}
	return s, nil
}

var (
	encoderPool sync.Pool
	decoderPool sync.Pool
)

func compress(data []byte) []byte {
	enc, _ := encoderPool.Get().(*zstd.Encoder)
	if enc == nil {
		enc, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	}
	defer encoderPool.Put(enc)
	return enc.EncodeAll(data, nil)
}

func decompress(data []byte) ([]byte, error) {
	dec, _ := decoderPool.Get().(*zstd.Decoder)
	if dec == nil {
		var err error
		if dec, err = zstd.NewReader(nil); err != nil {
			return nil, err
		}
	}
	defer decoderPool.Put(dec)
	return dec.DecodeAll(data, nil)
}
