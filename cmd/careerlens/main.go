package main

import (
	"careerlens/cmd/handlers"
	"careerlens/internal/logger"
)

func main() {
	logger.Init()
	handlers.Execute()
}
