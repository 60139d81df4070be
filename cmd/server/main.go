package main

import "github.com/ckaracaev/slack-sales-task/internal/app"

func main() {
	app.Run()
}
