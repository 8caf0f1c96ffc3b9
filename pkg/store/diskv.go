package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// Persistence is a string key-value store. A missing key is reported with
// ok=false rather than an error.
type Persistence interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Watch(ctx context.Context) (<-chan Event, error)
}

const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"

	tempDir = ".tmp"
)

// Load creates the Persistence selected by cfg. A nil cfg reads the config
// from the environment.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	switch b := cfg.Backend(); b {
	case "", BackendDiskv:
		return newDiskv(basePath)
	case BackendSQLite:
		return openSQLite(filepath.Join(basePath, sqliteFile))
	default:
		return nil, fmt.Errorf("store: unknown backend %q", b)
	}
}

func newDiskv(basePath string) (*persistence, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		TempDir:           filepath.Join(basePath, tempDir),
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		// Reads must observe writes made by other sessions.
		CacheSizeMax: 0,
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) Get(key string) (string, bool, error) {
	if !p.d.Has(key) {
		return "", false, nil
	}
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("store: read %s: %w", key, err)
	}
	return string(val), true, nil
}

func (p *persistence) Set(key, value string) error {
	if err := p.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	return watchDir(ctx, p.basePath, func(path string) (string, bool) {
		rel, err := filepath.Rel(p.basePath, path)
		if err != nil || rel == "." {
			return "", false
		}
		if strings.HasPrefix(rel, ".") || strings.Contains(rel, string(os.PathSeparator)) {
			return "", false
		}
		return pathToKeyTransform(keyToPathTransform(rel)), true
	})
}

// Keys are stored flat, one file per key.
func keyToPathTransform(s string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: s,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
