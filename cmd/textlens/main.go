package main

import (
	"os"

	"horse.fit/textlens/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
