package main

import (
	"github.com/haguru/booknest/config"
	"github.com/haguru/booknest/internal/app"
)

func main() {
	// create and initialize the app
	app, err := app.NewApp(config.CONFIG_PATH)
	if err != nil {
		panic(err)
	}

	// run the app: starts the server and blocks serving requests.
	err = app.Run()
	if err != nil {
		panic(err)
	}
}
