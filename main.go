package main

import "bagel-backend/internal/app"

func main() {
	app.Run()
}
