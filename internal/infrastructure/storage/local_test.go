package storage_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/asset"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/storage"
	"github.com/jhoicas/catalogo-api/pkg/config"
)

func newStorage(t *testing.T) (*storage.LocalStorage, string) {
	t.Helper()
	root := t.TempDir()
	s, err := storage.NewLocalStorage(config.AssetConfig{
		Root:    root,
		BaseURL: "http://localhost:8080/uploads/",
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	return s, root
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadYDelete(t *testing.T) {
	s, root := newStorage(t)
	ctx := context.Background()

	ref, err := s.Upload(ctx, bytes.NewReader(pngBytes(t, 400, 100)), asset.UploadOptions{Folder: asset.FolderVendors, Width: 200})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref, "http://localhost:8080/uploads/vendors/"), ref)
	assert.True(t, strings.HasSuffix(ref, ".jpg"), ref)
	name := filepath.Base(ref)
	_, err = os.Stat(filepath.Join(root, "vendors", name))
	require.NoError(t, err, "el archivo debe existir")

	require.NoError(t, s.Delete(ctx, ref))
	_, err = os.Stat(filepath.Join(root, "vendors", name))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Delete(ctx, ref), "borrar dos veces no es error")
}

func TestUpload_FormatoInvalido(t *testing.T) {
	s, root := newStorage(t)

	_, err := s.Upload(context.Background(), strings.NewReader("texto"), asset.UploadOptions{Folder: asset.FolderProducts})
	require.Error(t, err)

	entries, _ := os.ReadDir(filepath.Join(root, asset.FolderProducts))
	assert.Empty(t, entries, "no debe quedar nada escrito")
}

func TestUpload_CarpetaInvalida(t *testing.T) {
	s, _ := newStorage(t)
	_, err := s.Upload(context.Background(), bytes.NewReader(pngBytes(t, 1, 1)), asset.UploadOptions{Folder: "../etc"})
	assert.Error(t, err)
}

func TestUpload_ContextoCancelado(t *testing.T) {
	s, _ := newStorage(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Upload(ctx, bytes.NewReader(pngBytes(t, 10, 10)), asset.UploadOptions{Folder: asset.FolderVendors})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDelete_ReferenciaInvalida(t *testing.T) {
	s, _ := newStorage(t)
	for _, ref := range []string{"", "sin-carpeta.jpg", "http://x/vendors/..", "http://x/../.."} {
		assert.ErrorIs(t, s.Delete(context.Background(), ref), storage.ErrInvalidRef, ref)
	}
}

func TestPublicID(t *testing.T) {
	id, err := storage.PublicID("https://cdn.example.com/uploads/vendors/3f2a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "vendors/3f2a", id)
}
