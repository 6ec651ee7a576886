package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrOverReceipt      = errors.New("recepción excede la cantidad solicitada")
	ErrStoreUnavailable = errors.New("almacén de datos no disponible")
)
