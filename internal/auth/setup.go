package auth

import (
	"log"

	"github.com/SafeCircle/SC-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "care_auth"); err != nil {
		log.Fatal("Failed to ensure schema care_auth: ", err)
	}

	if err := db.DB.AutoMigrate(&User{}, &Session{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
