package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/calebwray/community-events/internal/server"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	if err := server.Start(); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
