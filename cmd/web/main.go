package main

import "findthem_backend/internal/app"

func main() {
	app.Run()
}
