package setup

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/domain"
)

// MigrateDB runs the schema migrations. String columns that back indexes
// carry explicit varchar(191) sizes in the model tags, so AutoMigrate is
// safe on MySQL with utf8mb4.
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}
	err := db.AutoMigrate(
		&domain.User{},
		&domain.Room{},
		&domain.Participant{},
		&domain.Change{},
		&domain.Snippet{},
	)
	if err != nil {
		return fmt.Errorf("auto-migrate tables: %w", err)
	}
	return nil
}
