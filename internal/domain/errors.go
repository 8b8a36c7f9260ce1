package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidReference   = errors.New("referencia a entidad inexistente")
	ErrDuplicateName      = errors.New("nombre duplicado")
	ErrTagInUse           = errors.New("etiqueta ya asignada")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrStorageUnavailable = errors.New("almacenamiento no disponible, reintentar")
)
