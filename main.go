package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/spigell/resume-screener/cmd"
)

func main() {
	// RESUME_SCREENER_* variables may come from a local .env file.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
