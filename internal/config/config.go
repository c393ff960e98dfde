package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	DBDSN       string
	LogFile     string
	SendDelay   time.Duration // simulated latency for sending a code
	VerifyDelay time.Duration // simulated latency for checking a code
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "boutique.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./boutique.log"
	}

	cfg := Config{
		Port:        port,
		DBDSN:       dsn,
		LogFile:     logFile,
		SendDelay:   delayMs("SEND_DELAY_MS", 1500),
		VerifyDelay: delayMs("VERIFY_DELAY_MS", 1000),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s SEND_DELAY=%s VERIFY_DELAY=%s",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.SendDelay, cfg.VerifyDelay)
	return cfg
}

func delayMs(key string, def int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return time.Duration(n) * time.Millisecond
		}
		log.Printf("[config] ignoring bad %s=%q", key, v)
	}
	return time.Duration(def) * time.Millisecond
}
