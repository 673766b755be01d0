package main

import (
	"log"

	_ "codeflow/docs"
	"codeflow/internal/config"
	"codeflow/internal/server"
)

// @title           CodeFlow API
// @version         1.0
// @description     API for project collaboration: kanban boards and version-controlled file repositories.

// @host      localhost:5000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("server initialization failed: %v", err)
	}

	s.Run()
}
