package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/SafeCircle/SC-Backend/internal/alerts"
	"github.com/SafeCircle/SC-Backend/internal/auth"
	"github.com/SafeCircle/SC-Backend/internal/care"
	"github.com/SafeCircle/SC-Backend/internal/db"
	"github.com/SafeCircle/SC-Backend/internal/location"
	"github.com/SafeCircle/SC-Backend/internal/middleware"
	"github.com/SafeCircle/SC-Backend/internal/notify"
	"github.com/SafeCircle/SC-Backend/internal/safezone"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	auth.Init()
	care.Init()
	safezone.Init()
	alerts.Init()
	notify.Init()

	policy, err := alerts.LoadPolicy()
	if err != nil {
		log.Fatal("Failed to load alert policy: ", err)
	}

	// The push sender is built once here and injected; without credentials
	// it stays nil and delivery degrades to alert persistence only.
	sender, err := notify.NewFCMSender(context.Background())
	if err != nil {
		log.Fatal("Failed to initialize push sender: ", err)
	}
	if sender == nil {
		log.Println("FIREBASE_CREDENTIALS_FILE not set, push delivery disabled")
	}

	var pushSender notify.Sender
	if sender != nil {
		pushSender = sender
	}
	notifier := notify.NewNotifier(pushSender, notify.CareResolver{}, notify.TokenStore{})
	deduper := alerts.NewDeduper(alerts.GormStore{}, alerts.WardDirectory{}, policy)
	service := location.NewService(
		location.Store{},
		safezone.Directory{},
		deduper,
		notifier,
		alerts.WardDirectory{},
		policy,
	)
	location.Init(service)

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Get("/", RootHandler)

	r.Mount("/auth", auth.SetupRoutes())
	r.Mount("/care", care.SetupRoutes())
	r.Mount("/safe-zone", safezone.SetupRoutes())
	r.Mount("/location", location.SetupRoutes())
	r.Mount("/alerts", alerts.SetupRoutes())
	r.Mount("/push", notify.SetupRoutes())

	fmt.Println("Server listening on port :" + port + "...")

	http.ListenAndServe("0.0.0.0:"+port, r)
}
