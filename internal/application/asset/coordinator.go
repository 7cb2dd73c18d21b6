// Package asset coordina las imágenes del catálogo con el proveedor de
// almacenamiento. Subir es parte del flujo y sus fallas se reportan; borrar es
// siempre best-effort: se registra y se cuenta, nunca se propaga.
package asset

import (
	"context"
	"io"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/pkg/logger"
	"github.com/jhoicas/catalogo-api/pkg/metrics"
)

// Carpetas del proveedor por tipo de recurso.
const (
	FolderVendors  = "vendors"
	FolderProducts = "products"
)

// UploadOptions destino y transformación de una subida.
type UploadOptions struct {
	Folder string
	Width  int // 0 = sin escalar
}

// Storage puerto del proveedor de archivos. Upload devuelve la referencia
// pública (URL) del archivo guardado.
type Storage interface {
	Upload(ctx context.Context, r io.Reader, opts UploadOptions) (string, error)
	Delete(ctx context.Context, ref string) error
}

// Coordinator aplica la política de errores sobre Storage.
type Coordinator struct {
	storage Storage
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewCoordinator construye el coordinador. m puede ser nil.
func NewCoordinator(storage Storage, log *logger.Logger, m *metrics.Metrics) *Coordinator {
	return &Coordinator{storage: storage, log: log.Named("asset"), metrics: m}
}

// Upload sube r. Cualquier falla del proveedor se devuelve como error de subida
// (KindAssetUpload); no hay reintentos.
func (c *Coordinator) Upload(ctx context.Context, r io.Reader, opts UploadOptions) (string, error) {
	ref, err := c.storage.Upload(ctx, r, opts)
	c.metrics.ObserveAsset("upload", err)
	if err != nil {
		c.log.Warn().Err(err).Str("folder", opts.Folder).Msg("subida de imagen fallida")
		return "", domain.NewAssetUpload(err)
	}
	c.log.Debug().Str("ref", ref).Msg("imagen subida")
	return ref, nil
}

// Delete libera ref. Una referencia vacía no hace nada.
func (c *Coordinator) Delete(ctx context.Context, ref string) {
	c.remove(ctx, "delete", ref)
}

// Discard libera un archivo recién subido cuyo registro no llegó a persistirse.
func (c *Coordinator) Discard(ctx context.Context, ref string) {
	c.remove(ctx, "discard", ref)
}

func (c *Coordinator) remove(ctx context.Context, op, ref string) {
	if ref == "" {
		return
	}
	// La petición pudo cancelarse; el borrado sigue acotado por el timeout del proveedor.
	err := c.storage.Delete(context.WithoutCancel(ctx), ref)
	c.metrics.ObserveAsset(op, err)
	if err != nil {
		// El archivo queda huérfano; se deja rastro para limpiarlo a mano.
		c.log.Error().Err(err).Str("op", op).Str("ref", ref).Msg("no se pudo borrar la imagen")
		return
	}
	c.log.Debug().Str("op", op).Str("ref", ref).Msg("imagen borrada")
}
