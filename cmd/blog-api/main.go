package main

import (
	"log"

	"blog-api/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("blog-api failed to start: %v", err)
	}
}
