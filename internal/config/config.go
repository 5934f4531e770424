package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	LogFile   string
	KVBackend string // sqlite | redis
	DBDSN     string
	RedisAddr string
	DataDir   string // overrides for products.json / stock.json / delivery.yaml
	PageSize  int
	CartKey   string
}

func Load() Config {
	// .env is optional; real env always wins.
	_ = godotenv.Load()

	cfg := Config{
		Port:      getenv("PORT", "8080"),
		LogFile:   getenv("LOG_FILE", "./swiftkart.log"),
		KVBackend: getenv("KV_BACKEND", "sqlite"),
		DBDSN:     getenv("DB_DSN", "swiftkart.db"),
		RedisAddr: getenv("REDIS_ADDR", "localhost:6379"),
		DataDir:   os.Getenv("DATA_DIR"),
		CartKey:   getenv("CART_KEY", "cart"),
		PageSize:  20,
	}
	if s := os.Getenv("PAGE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			cfg.PageSize = n
		}
	}
	log.Printf("[config] PORT=%s KV_BACKEND=%s DB_DSN=%s DATA_DIR=%s PAGE_SIZE=%d LOG_FILE=%s",
		cfg.Port, cfg.KVBackend, cfg.DBDSN, cfg.DataDir, cfg.PageSize, cfg.LogFile)
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
