package care

import (
	"log"

	"github.com/SafeCircle/SC-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "care"); err != nil {
		log.Fatal("Failed to ensure schema care: ", err)
	}

	if err := db.DB.AutoMigrate(&Ward{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
