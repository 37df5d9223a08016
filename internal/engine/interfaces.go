package engine

import "github.com/Veraticus/pennywise/internal/service"

// CategoryStore is the category lookup the engine needs.
type CategoryStore = service.CategoryReader

// BatchStore is the transaction-scoped collaborator a batch runs against. The caller
// owns the transaction boundary: it commits after a successful batch and rolls back
// otherwise.
type BatchStore interface {
	service.CategoryReader
	service.TransactionWriter
}
