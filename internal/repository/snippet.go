package repository

import (
	"context"

	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/domain"
)

// SnippetRepository stores saved snippets.
type SnippetRepository interface {
	// Save inserts the snippet and fills in its database-assigned fields.
	Save(ctx context.Context, snippet *domain.Snippet) error
}
