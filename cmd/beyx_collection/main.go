package main

import (
	"os"

	"github.com/mattabott/beyblade-x-collection/internal/app"
)

func main() {
	os.Exit(app.Execute())
}
