package main

import (
	"github.com/joho/godotenv"

	"github.com/example/table-booker/cmd"
)

func main() {
	// Best effort; a missing .env just means plain environment config.
	_ = godotenv.Load()
	cmd.Execute()
}
