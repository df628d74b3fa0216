package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	adapterStorage "github.com/vkarasev/catalog-media/internal/adapter/storage"
	"github.com/vkarasev/catalog-media/internal/domain"
	"github.com/vkarasev/catalog-media/internal/infrastructure/config"
)

// LocalDisk stores objects under a root directory on the local
// filesystem. URLs point at the CDN file endpoint so reads go through
// the edge cache.
type LocalDisk struct {
	root    string
	baseURL string
}

func NewLocalDisk(cfg config.LocalStorageConfig) (*LocalDisk, error) {
	if err := os.MkdirAll(cfg.Root, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage root: %w", err)
	}
	return &LocalDisk{
		root:    cfg.Root,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
	}, nil
}

func (l *LocalDisk) Save(ctx context.Context, p string, reader io.Reader, contentType string, size int64) error {
	full, err := l.resolve(p)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("creating directories: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if _, err := io.Copy(f, reader); err != nil {
		f.Close()
		os.Remove(full)
		return fmt.Errorf("writing file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}
	return nil
}

func (l *LocalDisk) Read(ctx context.Context, p string) ([]byte, error) {
	full, err := l.resolve(p)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", p, domain.ErrFileNotFound)
		}
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return data, nil
}

func (l *LocalDisk) Stat(ctx context.Context, p string) (adapterStorage.ObjectInfo, error) {
	full, err := l.resolve(p)
	if err != nil {
		return adapterStorage.ObjectInfo{}, err
	}

	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return adapterStorage.ObjectInfo{}, fmt.Errorf("%s: %w", p, domain.ErrFileNotFound)
		}
		return adapterStorage.ObjectInfo{}, fmt.Errorf("stat file: %w", err)
	}

	contentType := mime.TypeByExtension(path.Ext(p))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return adapterStorage.ObjectInfo{
		Size:         info.Size(),
		ContentType:  contentType,
		LastModified: info.ModTime(),
	}, nil
}

func (l *LocalDisk) URL(ctx context.Context, p string) (string, error) {
	if _, err := l.resolve(p); err != nil {
		return "", err
	}
	return l.baseURL + "/" + p, nil
}

func (l *LocalDisk) Delete(ctx context.Context, p string) error {
	full, err := l.resolve(p)
	if err != nil {
		return err
	}

	if err := os.Remove(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", p, domain.ErrFileNotFound)
		}
		return fmt.Errorf("deleting file: %w", err)
	}
	return nil
}

func (l *LocalDisk) Exists(ctx context.Context, p string) (bool, error) {
	full, err := l.resolve(p)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat file: %w", err)
	}
	return true, nil
}

// resolve maps an object path onto the root directory, rejecting
// absolute paths and anything that would escape the root.
func (l *LocalDisk) resolve(p string) (string, error) {
	clean := path.Clean(p)
	if clean == "." || clean == ".." || path.IsAbs(clean) || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%s: %w", p, domain.ErrInvalidPath)
	}
	return filepath.Join(l.root, filepath.FromSlash(clean)), nil
}
