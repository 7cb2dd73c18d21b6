package dto

import (
	"io"
	"time"
)

// ErrorDetails cuerpo de error HTTP. Details solo se llena en errores de validación.
type ErrorDetails struct {
	Message   string            `json:"message"`
	Status    int               `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Path      string            `json:"path"`
	Details   map[string]string `json:"details,omitempty"`
}

// FileInput archivo recibido del cliente, ya abierto por la capa HTTP.
type FileInput struct {
	Name   string
	Size   int64
	Reader io.Reader
}
