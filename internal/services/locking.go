package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// withUpdateLock adds SELECT ... FOR UPDATE on dialects that support it.
// SQLite, used in tests, serializes writers on its own and rejects the clause.
func withUpdateLock(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
