package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
)

const (
	defaultPort        = "3000"
	defaultAppEnv      = "local"
	defaultMongoDB     = "blooddonationdb"
	defaultRedisAddr   = "localhost:6379"
	defaultTokenSecret = "change-me-in-production"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load reads .env once and merges it over the defaults. Real environment
// variables win over both, so deployments never depend on a file being
// present.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFile(".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"DB_USER":             "",
		"DB_PASS":             "",
		"MONGO_URI":           "",
		"MONGO_DB":            defaultMongoDB,
		"ACCESS_TOKEN_SECRET": defaultTokenSecret,
		"STRIPE_SECRET_KEY":   "",
		"PORT":                defaultPort,
		"APP_ENV":             defaultAppEnv,
		"REDIS_ADDR":          defaultRedisAddr,
		"REDIS_PASSWORD":      "",
		"STORAGE_DISK":        "local",
	}
}

// MongoURI builds the connection string from DB_USER/DB_PASS unless a full
// MONGO_URI override is configured.
func MongoURI() string {
	_ = Load()

	if override := get("MONGO_URI", ""); override != "" {
		return override
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@hero.3n4q6b5.mongodb.net/?appName=Hero",
		get("DB_USER", ""), get("DB_PASS", ""))
}

func MongoDatabase() string {
	_ = Load()
	return get("MONGO_DB", defaultMongoDB)
}

func TokenSecret() string {
	_ = Load()
	return get("ACCESS_TOKEN_SECRET", defaultTokenSecret)
}

func StripeSecretKey() string {
	_ = Load()
	return get("STRIPE_SECRET_KEY", "")
}

func Port() string {
	_ = Load()
	return get("PORT", defaultPort)
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

func RedisAddr() string {
	_ = Load()
	return get("REDIS_ADDR", defaultRedisAddr)
}

func RedisPassword() string {
	_ = Load()
	return get("REDIS_PASSWORD", "")
}

// ── Storage ──────────────────────────────────────────────────────────────────

func StorageDefault() string {
	_ = Load()
	return get("STORAGE_DISK", "local")
}

func StorageLocalRoot() string {
	_ = Load()
	return get("STORAGE_LOCAL_ROOT", "storage")
}

func StorageURL() string {
	_ = Load()
	return get("STORAGE_URL", "http://localhost:3000/storage")
}

func StorageS3Bucket() string   { _ = Load(); return get("S3_BUCKET", "") }
func StorageS3Region() string   { _ = Load(); return get("S3_REGION", "us-east-1") }
func StorageS3Key() string      { _ = Load(); return get("S3_KEY", "") }
func StorageS3Secret() string   { _ = Load(); return get("S3_SECRET", "") }
func StorageS3Endpoint() string { _ = Load(); return get("S3_ENDPOINT", "") }
func StorageS3URL() string      { _ = Load(); return get("S3_URL", "") }

func loadFromFile(envPath string) error {
	loaded := defaultValues()

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

func get(key, fallback string) string {
	if env := strings.TrimSpace(os.Getenv(key)); env != "" {
		return env
	}

	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

// Get reads any config key by name with an optional fallback.
// Keys from .env are available after config.Load().
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}
