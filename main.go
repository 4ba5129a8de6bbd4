package main

import (
	"os"

	"github.com/jlsurveying/jls-web/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
