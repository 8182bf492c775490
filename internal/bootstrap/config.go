package bootstrap

import (
	"os"
)

type Config struct {
	ServerAddr string

	APIKey string

	SpeakersDir string
	TempDir     string

	NATSURL       string
	AudioBucket   string
	PublicBaseURL string

	TranscoderBinary string
	SynthesisBinary  string
	SynthesisModels  string

	LogLevel string
}

func LoadConfig() *Config {
	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),

		APIKey: getEnv("API_KEY", ""),

		SpeakersDir: getEnv("SPEAKERS_DIR", "/var/lib/voiceforge/speakers"),
		TempDir:     getEnv("TEMP_DIR", os.TempDir()),

		NATSURL:       getEnv("NATS_URL", "nats://localhost:4222"),
		AudioBucket:   getEnv("AUDIO_BUCKET", "tts-audio"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080/audio"),

		TranscoderBinary: getEnv("TRANSCODER_BINARY", "ffmpeg"),
		SynthesisBinary:  getEnv("SYNTHESIS_BINARY", "xtts-cli"),
		SynthesisModels:  getEnv("SYNTHESIS_MODELS", "/var/lib/voiceforge/models"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
