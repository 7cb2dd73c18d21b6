// Package imaging normaliza las imágenes subidas antes de guardarlas: valida el
// formato por sus bytes, escala al ancho pedido y re-codifica como JPEG.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // registra el decoder PNG
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

// JPEGQuality calidad de salida.
const JPEGQuality = 85

// MIME de salida; toda imagen procesada es JPEG.
const MIME = "image/jpeg"

// Extension extensión de los archivos producidos.
const Extension = ".jpg"

// MaxPixels presupuesto de píxeles declarados; por encima no se decodifica.
const MaxPixels = 40_000_000

var (
	// ErrUnsupportedFormat la entrada no es JPEG ni PNG.
	ErrUnsupportedFormat = errors.New("formato de imagen no soportado")
	// ErrTooManyPixels la cabecera declara más de MaxPixels.
	ErrTooManyPixels = errors.New("dimensiones de imagen demasiado grandes")
)

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Result imagen procesada.
type Result struct {
	Data   []byte
	Width  int
	Height int
}

// Process lee la imagen de r y, si width > 0 y la imagen es más ancha, la escala a
// ese ancho conservando la proporción. Nunca agranda.
func Process(r io.Reader, width int) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer imagen: %w", err)
	}

	// El Content-Type del cliente no es confiable; se detecta por los bytes.
	detected := http.DetectContentType(data)
	if !allowedMIME[detected] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, detected)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decodificar imagen: %w", err)
	}

	img = scaleToWidth(img, width)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("codificar JPEG: %w", err)
	}
	b := img.Bounds()
	return &Result{Data: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}

// scaleToWidth escala con Catmull-Rom. Devuelve img sin cambios si ya cabe.
func scaleToWidth(img image.Image, width int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if width <= 0 || w <= width {
		return img
	}
	newH := max(int(float64(h)*float64(width)/float64(w)), 1)

	dst := image.NewRGBA(image.Rect(0, 0, width, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
