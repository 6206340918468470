package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielAfitsinski/wad-portfolio/dbhelper"
	"github.com/DanielAfitsinski/wad-portfolio/middlewares"
	"github.com/DanielAfitsinski/wad-portfolio/routes"
	"github.com/DanielAfitsinski/wad-portfolio/utils"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	// Setting up environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Setting up logs
	if path := os.Getenv(utils.ENV_LOG_FILE); path != "" {
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
		if err != nil {
			log.Fatal(err)
		}
		defer file.Close()
		log.SetOutput(file)
	}

	// Setting up database
	db, err := dbhelper.Open()
	if err != nil {
		log.Fatal("[db] connect failed: ", err)
	}
	if err := dbhelper.Migrate(db); err != nil {
		log.Fatal("[db] migrate failed: ", err)
	}
	if err := dbhelper.SeedAdmin(db); err != nil {
		log.Fatal(err)
	}

	api := routes.NewAPI(db, dbhelper.LogNotifier{}, dbhelper.VerifyGoogleIdentity)

	r := mux.NewRouter()
	r.StrictSlash(true)
	routes.CreateRoutes(r, api)

	handler := handlers.RecoveryHandler()(
		handlers.LoggingHandler(os.Stdout, middlewares.RequestID(r)),
	)

	srv := &http.Server{
		Addr:         ":" + utils.EnvOr(utils.ENV_PORT, "5005"),
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("[http] listening on", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Println("[http] shutdown error:", err)
	}
}
