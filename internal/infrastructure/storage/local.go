// Package storage implementa asset.Storage sobre el sistema de archivos local.
// Los archivos se sirven como estáticos bajo ASSET_BASE_URL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/catalogo-api/internal/application/asset"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/imaging"
	"github.com/jhoicas/catalogo-api/pkg/config"
)

var _ asset.Storage = (*LocalStorage)(nil)

// ErrInvalidRef la referencia no tiene la forma {base}/{folder}/{name}.
var ErrInvalidRef = errors.New("referencia de archivo inválida")

// LocalStorage guarda imágenes normalizadas en Root/{folder}/{uuid}.jpg.
type LocalStorage struct {
	root    string
	baseURL string
	timeout time.Duration
}

// NewLocalStorage crea el directorio raíz si no existe.
func NewLocalStorage(cfg config.AssetConfig) (*LocalStorage, error) {
	if err := os.MkdirAll(cfg.Root, 0o755); err != nil {
		return nil, fmt.Errorf("crear %s: %w", cfg.Root, err)
	}
	return &LocalStorage{
		root:    cfg.Root,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
	}, nil
}

// Upload procesa la imagen (ver imaging.Process) y la escribe de forma atómica.
func (s *LocalStorage) Upload(ctx context.Context, r io.Reader, opts asset.UploadOptions) (string, error) {
	if !validSegment(opts.Folder) {
		return "", fmt.Errorf("carpeta %q inválida", opts.Folder)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("procesar imagen: %w", err)
	}

	type result struct {
		img *imaging.Result
		err error
	}
	done := make(chan result, 1)
	go func() {
		img, err := imaging.Process(r, opts.Width)
		done <- result{img, err}
	}()

	var img *imaging.Result
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("procesar imagen: %w", ctx.Err())
	case res := <-done:
		if res.err != nil {
			return "", res.err
		}
		img = res.img
	}

	dir := filepath.Join(s.root, opts.Folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("crear carpeta: %w", err)
	}
	name := uuid.NewString() + imaging.Extension
	if err := writeAtomic(filepath.Join(dir, name), img.Data); err != nil {
		return "", err
	}
	return s.baseURL + "/" + opts.Folder + "/" + name, nil
}

// Delete borra el archivo de ref. Un archivo inexistente no es error.
func (s *LocalStorage) Delete(ctx context.Context, ref string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := ctx.Err(); err != nil {
		return err
	}
	folder, name, err := splitRef(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.root, folder, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("borrar %s/%s: %w", folder, name, err)
	}
	return nil
}

// PublicID identificador del archivo dentro del proveedor: "{folder}/{nombre sin extensión}".
func PublicID(ref string) (string, error) {
	folder, name, err := splitRef(ref)
	if err != nil {
		return "", err
	}
	return folder + "/" + strings.TrimSuffix(name, path.Ext(name)), nil
}

// splitRef toma los dos últimos segmentos del path de la URL.
func splitRef(ref string) (folder, name string, err error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidRef, ref)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidRef, ref)
	}
	folder, name = parts[len(parts)-2], parts[len(parts)-1]
	if !validSegment(folder) || !validSegment(name) {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidRef, ref)
	}
	return folder, name, nil
}

func validSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}

func (s *LocalStorage) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func writeAtomic(dst string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return fmt.Errorf("crear temporal: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("escribir imagen: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cerrar imagen: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
