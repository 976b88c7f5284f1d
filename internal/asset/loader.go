package asset

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"
)

// ErrNoModel is returned when a bundle or reference contains no glTF scene.
var ErrNoModel = errors.New("asset: no glTF model found")

// DefaultParallel is how many assets a Loader fetches at once unless told otherwise.
const DefaultParallel = 4

// Loader resolves asset references to parsed models. References are http(s) URLs, file://
// URLs or paths; relative paths are taken from BaseDir. Remote files and unpacked bundles
// are kept in CacheDir. A Loader is safe for concurrent use.
type Loader struct {
	BaseDir  string
	CacheDir string
	Client   *http.Client

	sem *semaphore.Weighted
}

// NewLoader returns a loader with a 60 s HTTP timeout fetching at most parallel assets at
// once (DefaultParallel when parallel <= 0).
func NewLoader(baseDir, cacheDir string, parallel int) *Loader {
	if parallel <= 0 {
		parallel = DefaultParallel
	}
	return &Loader{
		BaseDir:  baseDir,
		CacheDir: cacheDir,
		Client:   &http.Client{Timeout: 60 * time.Second},
		sem:      semaphore.NewWeighted(int64(parallel)),
	}
}

// Load fetches (when remote), unpacks (when zipped) and parses the asset at ref. It blocks
// while the loader is at its parallel limit and returns early when ctx is cancelled.
func (l *Loader) Load(ctx context.Context, ref string) (*Model, error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer l.sem.Release(1)

	local, err := l.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(local), ".zip") {
		local, err = l.unpack(local)
		if err != nil {
			return nil, err
		}
	}
	m, err := parseFile(local)
	if err != nil {
		return nil, err
	}
	m.Source = ref
	return m, nil
}

// resolve returns a local path for ref, downloading remote references into CacheDir.
func (l *Loader) resolve(ctx context.Context, ref string) (string, error) {
	u, err := url.Parse(ref)
	if err == nil {
		switch u.Scheme {
		case "http", "https":
			return fetch(ctx, l.Client, ref, l.CacheDir)
		case "file":
			return filepath.FromSlash(u.Path), nil
		}
	}
	p := filepath.FromSlash(ref)
	if !filepath.IsAbs(p) && l.BaseDir != "" {
		p = filepath.Join(l.BaseDir, p)
	}
	if _, err := os.Stat(p); err != nil {
		return "", fmt.Errorf("open %s: %w", ref, err)
	}
	return p, nil
}

// unpack extracts a bundle next to the other cached assets and returns its model file.
func (l *Loader) unpack(zipPath string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(zipPath), filepath.Ext(zipPath))
	dest := filepath.Join(l.CacheDir, "bundles", sanitizeFilename(base))
	if _, err := unzip(zipPath, dest); err != nil {
		return "", err
	}
	return findModel(dest)
}
