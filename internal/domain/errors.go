package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). Los adaptadores devuelven estos
// sentinelas; los casos de uso los elevan a *Error con un mensaje para el cliente.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrAssetUpload  = errors.New("error al subir el archivo")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrInternal     = errors.New("error interno")
)

// Kind clasifica un error de dominio; la capa HTTP lo traduce a un status estable.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindDuplicate
	KindNotFound
	KindAssetUpload
	KindUnauthorized
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDuplicate:
		return "duplicate"
	case KindNotFound:
		return "not_found"
	case KindAssetUpload:
		return "asset_upload"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

var kindSentinel = map[Kind]error{
	KindInternal:     ErrInternal,
	KindValidation:   ErrInvalidInput,
	KindDuplicate:    ErrDuplicate,
	KindNotFound:     ErrNotFound,
	KindAssetUpload:  ErrAssetUpload,
	KindUnauthorized: ErrUnauthorized,
	KindForbidden:    ErrForbidden,
}

// Error es el error tipado que cruza el límite de los casos de uso.
// Message es seguro para mostrar al cliente; Err conserva la causa solo para logs.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string // detalle por campo, solo en KindValidation
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is permite errors.Is(err, domain.ErrDuplicate) sobre un *Error.
func (e *Error) Is(target error) bool {
	return kindSentinel[e.Kind] == target
}

// NewValidation error de validación con detalle por campo (puede ser nil).
func NewValidation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// NewDuplicate violación de unicidad, ej. "Vendor with name=[Acme] has already existed!".
func NewDuplicate(resource, field, value string) *Error {
	return &Error{
		Kind:    KindDuplicate,
		Message: fmt.Sprintf("%s with %s=[%s] has already existed!", resource, field, value),
	}
}

// NewNotFound recurso inexistente por id.
func NewNotFound(resource string, id any) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s with id=[%v] not found!", resource, id),
	}
}

// NewAssetUpload el proveedor de archivos rechazó o falló la subida.
func NewAssetUpload(err error) *Error {
	return &Error{
		Kind:    KindAssetUpload,
		Message: "Uploading image is failed! Try again or use a different file.",
		Err:     err,
	}
}

// NewUnauthorized credenciales o token inválidos.
func NewUnauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// NewForbidden el usuario autenticado no tiene permiso.
func NewForbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NewInternal envuelve una falla inesperada; el mensaje nunca expone la causa.
func NewInternal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal Server Error", Err: err}
}

// AsError extrae el *Error de la cadena, si existe.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// KindOf devuelve la clase de err; cualquier error no tipado es KindInternal.
func KindOf(err error) Kind {
	if de, ok := AsError(err); ok {
		return de.Kind
	}
	return KindInternal
}
