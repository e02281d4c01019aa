package main

import (
	"log"
	"os"

	"github.com/roeliffah/freestay-live-sub000/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
