package location

import (
	"log"

	"github.com/SafeCircle/SC-Backend/internal/db"
)

// Init migrates the tracking schema and installs the ingestion service the
// HTTP handlers delegate to.
func Init(service *Service) {
	if err := db.EnsureSchema(db.DB, "tracking"); err != nil {
		log.Fatal("Failed to ensure schema tracking: ", err)
	}

	if err := db.DB.AutoMigrate(&Position{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}

	svc = service
}
