package main

import (
	_ "github.com/voiceforge/clone-backend/docs"
	"github.com/voiceforge/clone-backend/internal/bootstrap"
)

// @title Voice Clone TTS API
// @version 1.0.0
// @description HTTP API for voice-cloned speech synthesis: register a reference voice, then generate speech in that voice.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey APIKeyAuth
// @in header
// @name X-API-Key

func main() {
	bootstrap.Run()
}
