package alerts

import (
	"log"

	"github.com/SafeCircle/SC-Backend/internal/care"
	"github.com/SafeCircle/SC-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "alerting"); err != nil {
		log.Fatal("Failed to ensure schema alerting: ", err)
	}

	if err := db.DB.AutoMigrate(&Alert{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}

// WardDirectory adapts the care package to the WardNamer interface.
type WardDirectory struct{}

func (WardDirectory) WardName(wardID string) (string, error) {
	ward, err := care.FindByID(wardID)
	if err != nil {
		return "", err
	}
	return ward.Name, nil
}
