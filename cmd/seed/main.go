// Command seed loads a demo supervisor, ward, and safe zone into a fresh
// database. Intended for local development and staging only.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// CLI flags
var (
	dsn      = flag.String("dsn", os.Getenv("DATABASE_URL"), "Postgres DSN (default: env DATABASE_URL)")
	username = flag.String("username", "demo-supervisor", "Username for the demo supervisor")
	password = flag.String("password", "demo-password", "Password for the demo supervisor")
	wardName = flag.String("ward", "Alex", "Display name for the demo ward")
	confirm  = flag.Bool("confirm", false, "Required to write to the database")
)

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()

	if *dsn == "" {
		fatalf("--dsn not provided and DATABASE_URL not set")
	}
	if !*confirm {
		fatalf("refusing to write without --confirm")
	}

	conn, err := sql.Open("pgx", *dsn)
	if err != nil {
		fatalf("open database: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		fatalf("ping database: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fatalf("hash password: %v", err)
	}

	userID := uuid.NewString()
	wardID := uuid.NewString()
	deviceCode := strings.ReplaceAll(uuid.NewString(), "-", "")

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		fatalf("begin tx: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO care_auth.users (user_id, username, hashed_password, display_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username) DO NOTHING
	`, userID, *username, string(hashed), "Demo Supervisor"); err != nil {
		fatalf("insert user: %v", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO care.wards (ward_id, name, care_level, pairing_status, device_code, created_by_user_id, created_at)
		VALUES ($1, $2, 1, 'paired', $3, $4, NOW())
	`, wardID, *wardName, deviceCode, userID); err != nil {
		fatalf("insert ward: %v", err)
	}

	// 100 m zone around Seoul City Hall, the location the demo clients use.
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO care.safe_zones (zone_id, ward_id, zone_name, center_lat, center_lng, radius_meters, is_active)
		VALUES ($1, $2, 'Home', 37.5665, 126.9780, 100, TRUE)
	`, uuid.NewString(), wardID); err != nil {
		fatalf("insert safe zone: %v", err)
	}

	if err := tx.Commit(); err != nil {
		fatalf("commit: %v", err)
	}

	fmt.Printf("Seeded supervisor %q (user_id=%s)\n", *username, userID)
	fmt.Printf("Seeded ward %q (ward_id=%s)\n", *wardName, wardID)
	fmt.Printf("Wearable device code: %s\n", deviceCode)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
