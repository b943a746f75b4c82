package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Backend string // "flatfile" or "sqlite"
	DataDir string
	DBDSN   string
	LogFile string
	Prompt  string
}

func Load() Config {
	// A .env in the working directory overrides nothing already exported.
	_ = godotenv.Load()

	backend := os.Getenv("STORE_BACKEND")
	if backend == "" {
		backend = "flatfile"
	}
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "tradepost.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./tradepost.log" // default log sink in project root
	}
	prompt := os.Getenv("PROMPT")
	if prompt == "" {
		prompt = "# "
	}

	cfg := Config{Backend: backend, DataDir: dataDir, DBDSN: dsn, LogFile: logFile, Prompt: prompt}
	log.Printf("[config] STORE_BACKEND=%s DATA_DIR=%s DB_DSN=%s LOG_FILE=%s", cfg.Backend, cfg.DataDir, cfg.DBDSN, cfg.LogFile)
	return cfg
}
