package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	adapterStorage "github.com/vkarasev/catalog-media/internal/adapter/storage"
	"github.com/vkarasev/catalog-media/internal/domain"
	"github.com/vkarasev/catalog-media/internal/infrastructure/config"
)

// Runner executes a command and returns its output streams. It exists
// so tests can exercise MinIOCLI without shelling out.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// MinIOCLI drives a MinIO deployment through the mc client instead of
// a native SDK. Uploads stage through a temp file because mc cp wants
// a filesystem source. When cfg.Container is set every invocation runs
// inside that container via docker exec, with docker cp bridging the
// staged file.
type MinIOCLI struct {
	binary      string
	alias       string
	bucket      string
	container   string
	shareExpiry time.Duration
	runner      Runner
}

func NewMinIOCLI(cfg config.MinIOCLIConfig) *MinIOCLI {
	return NewMinIOCLIWithRunner(cfg, execRunner{})
}

func NewMinIOCLIWithRunner(cfg config.MinIOCLIConfig, runner Runner) *MinIOCLI {
	return &MinIOCLI{
		binary:      cfg.Binary,
		alias:       cfg.Alias,
		bucket:      cfg.Bucket,
		container:   cfg.Container,
		shareExpiry: cfg.ShareExpiry,
		runner:      runner,
	}
}

func (m *MinIOCLI) Save(ctx context.Context, p string, reader io.Reader, contentType string, size int64) error {
	tmp, err := os.CreateTemp("", "mc-upload-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		return fmt.Errorf("staging upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("staging upload: %w", err)
	}

	src := tmpPath
	if m.container != "" {
		src = "/tmp/" + filepath.Base(tmpPath)
		if _, stderr, err := m.runner.Run(ctx, "docker", "cp", tmpPath, m.container+":"+src); err != nil {
			return classifyCLI("copying upload into container", stderr, err)
		}
		defer m.runner.Run(ctx, "docker", "exec", m.container, "rm", "-f", src)
	}

	args := []string{"cp"}
	if contentType != "" {
		args = append(args, "--attr", "Content-Type="+contentType)
	}
	args = append(args, src, m.target(p))

	if _, stderr, err := m.mc(ctx, args...); err != nil {
		return classifyCLI("uploading via mc", stderr, err)
	}
	return nil
}

func (m *MinIOCLI) Read(ctx context.Context, p string) ([]byte, error) {
	stdout, stderr, err := m.mc(ctx, "cat", m.target(p))
	if err != nil {
		return nil, classifyCLI("reading via mc", stderr, err)
	}
	return stdout, nil
}

func (m *MinIOCLI) Stat(ctx context.Context, p string) (adapterStorage.ObjectInfo, error) {
	stdout, stderr, err := m.mc(ctx, "stat", "--json", m.target(p))
	if err != nil {
		return adapterStorage.ObjectInfo{}, classifyCLI("stat via mc", stderr, err)
	}

	var stat struct {
		Size         int64             `json:"size"`
		LastModified time.Time         `json:"lastModified"`
		Metadata     map[string]string `json:"metadata"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(stdout), &stat); err != nil {
		return adapterStorage.ObjectInfo{}, fmt.Errorf("parsing mc stat output: %w", err)
	}

	return adapterStorage.ObjectInfo{
		Size:         stat.Size,
		ContentType:  stat.Metadata["Content-Type"],
		LastModified: stat.LastModified,
	}, nil
}

func (m *MinIOCLI) URL(ctx context.Context, p string) (string, error) {
	stdout, stderr, err := m.mc(ctx, "share", "download", "--expire", m.shareExpiry.String(), "--json", m.target(p))
	if err != nil {
		return "", classifyCLI("sharing via mc", stderr, err)
	}

	var share struct {
		Share string `json:"share"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(stdout), &share); err != nil {
		return "", fmt.Errorf("parsing mc share output: %w", err)
	}
	if share.Share == "" {
		return "", fmt.Errorf("mc share returned no link")
	}
	return share.Share, nil
}

func (m *MinIOCLI) Delete(ctx context.Context, p string) error {
	if _, stderr, err := m.mc(ctx, "rm", m.target(p)); err != nil {
		return classifyCLI("deleting via mc", stderr, err)
	}
	return nil
}

func (m *MinIOCLI) Exists(ctx context.Context, p string) (bool, error) {
	_, err := m.Stat(ctx, p)
	if err != nil {
		if errors.Is(err, domain.ErrFileNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (m *MinIOCLI) mc(ctx context.Context, args ...string) ([]byte, []byte, error) {
	if m.container != "" {
		full := append([]string{"exec", m.container, m.binary}, args...)
		return m.runner.Run(ctx, "docker", full...)
	}
	return m.runner.Run(ctx, m.binary, args...)
}

func (m *MinIOCLI) target(p string) string {
	return fmt.Sprintf("%s/%s/%s", m.alias, m.bucket, p)
}

// classifyCLI maps mc stderr text onto domain sentinels. Text matching
// is weaker than typed SDK errors but mc offers nothing better.
func classifyCLI(op string, stderr []byte, err error) error {
	msg := strings.TrimSpace(string(stderr))
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "bucket does not exist"):
		return fmt.Errorf("%s: %w", op, domain.ErrBucketNotFound)
	case strings.Contains(lower, "does not exist"), strings.Contains(lower, "not found"):
		return fmt.Errorf("%s: %w", op, domain.ErrFileNotFound)
	case strings.Contains(lower, "access denied"):
		return fmt.Errorf("%s: %w", op, domain.ErrAccessDenied)
	case msg == "":
		return fmt.Errorf("%s: %w: %w", op, domain.ErrBackendUnavailable, err)
	default:
		return fmt.Errorf("%s: %w: %s", op, domain.ErrBackendUnavailable, msg)
	}
}
