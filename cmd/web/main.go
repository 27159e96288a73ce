package main

import "careconnect_web/internal/app"

func main() {
	app.Run()
}
