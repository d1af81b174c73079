package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context bundles a request context with an optional GORM transaction.
// Repos run against Tx when set, otherwise against their own pooled handle.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}
