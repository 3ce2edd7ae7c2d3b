package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"hostel-client/internal/bootstrap"
	"hostel-client/internal/stubapi"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	server := stubapi.New(logger)
	// A couple of accounts so a fresh checkout is usable immediately.
	server.SeedStudent("Arun Kumar", "CS101", "R55", "A-101")
	server.SeedStudent("Priya S", "EC204", "R91", "B-210")

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	bootstrap.StartHTTPServer(
		server.Router(),
		bootstrap.ServerConfig{
			Port:         port,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	)
}
