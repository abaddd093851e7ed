package main

import (
	"github.com/lotwise/backend/cmd/app"
)

func main() {
	app.Run()
}
