package notify

import (
	"log"

	"github.com/SafeCircle/SC-Backend/internal/care"
	"github.com/SafeCircle/SC-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "push"); err != nil {
		log.Fatal("Failed to ensure schema push: ", err)
	}

	if err := db.DB.AutoMigrate(&PushToken{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}

// CareResolver adapts the care package to the SupervisorResolver interface.
type CareResolver struct{}

func (CareResolver) SupervisorOf(wardID string) (string, error) {
	return care.SupervisorOf(wardID)
}

// TokenStore adapts the gorm-backed token table to the TokenDirectory
// interface.
type TokenStore struct{}

func (TokenStore) ActiveTokensFor(userID string) ([]string, error) {
	return ActiveTokensFor(userID)
}
