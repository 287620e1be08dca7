package gormpersistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/domain"
)

// GormSnippetRepository is the GORM implementation of SnippetRepository.
type GormSnippetRepository struct {
	db *gorm.DB
}

func NewGormSnippetRepository(db *gorm.DB) *GormSnippetRepository {
	if db == nil {
		panic("database connection cannot be nil for GormSnippetRepository")
	}
	return &GormSnippetRepository{db: db}
}

func (r *GormSnippetRepository) Save(ctx context.Context, snippet *domain.Snippet) error {
	if err := r.db.WithContext(ctx).Create(snippet).Error; err != nil {
		return fmt.Errorf("gorm: save snippet (user %d, title %q): %w", snippet.UserID, snippet.Title, err)
	}
	return nil
}
