package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// ErrInvalidSortField el campo pedido para ordenar no es una columna reconocida.
	ErrInvalidSortField = errors.New("campo de ordenamiento inválido")
	// ErrStore envuelve cualquier fallo del almacén de registros.
	ErrStore = errors.New("error de almacenamiento")
)

// StoreError marca err como fallo de almacenamiento conservando el detalle.
// errors.Is(err, ErrStore) es verdadero sobre el resultado.
func StoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &storeError{op: op, err: err}
}

type storeError struct {
	op  string
	err error
}

func (e *storeError) Error() string { return e.op + ": " + e.err.Error() }

func (e *storeError) Unwrap() []error { return []error{ErrStore, e.err} }
