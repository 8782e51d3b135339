package main

import (
	"github.com/joho/godotenv"

	"github.com/nikogura/resume-parser/cmd"
)

func main() {
	// A .env file is optional; real environment variables always win.
	_ = godotenv.Load()

	cmd.Execute()
}
