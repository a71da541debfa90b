package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/nbutton23/zxcvbn-go"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverBadger = "badger"

	minSecretStrengthScore = 3
)

// Config holds the application's configuration values.
type Config struct {
	HostIP            string  // Host IP for the server
	RESTPort          int     // Port for the REST API
	GinMode           string  // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret         string  // Secret key for JWT signing
	JWTIssuer         string  // Issuer claim for JWTs
	StoreDriver       string  // Layout store backend, "mongo" or "badger"
	DBHost            string  // Hostname or IP address for the database
	DBPort            int     // Port number for the database
	DBUser            string  // Username for the database
	DBPassword        string  // Password for the database
	DBName            string  // Name of the database
	BadgerPath        string  // Badger directory, empty keeps the store in memory
	RedisAddr         string  // Redis address, empty disables caching
	RedisPassword     string  // Redis password
	RedisDB           int     // Redis logical database
	CacheTTLSeconds   int     // Lifetime of cached layouts
	MazeMaxDimension  int     // Largest accepted row or column count
	MazeUnitWidth     float64 // Width of one cell in arena coordinates
	MazeUnitHeight    float64 // Height of one cell in arena coordinates
	MazeWallThickness float64 // Thickness of inner walls in arena coordinates
}

// Envs holds the application's configuration once Init has run.
var Envs Config

// Init loads the configuration into Envs, exiting the process on failure.
func Init() {
	c, err := Load()
	if err != nil {
		log.Fatalf("[APP] [FATAL] %v", err)
	}
	Envs = c
}

// Load reads the configuration from environment variables.
// It loads a .env file first if one is available.
func Load() (Config, error) {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	r := &reader{}
	c := Config{
		HostIP:            r.mustGetEnv("HOST_IP"),
		RESTPort:          r.mustGetEnvAsInt("REST_PORT"),
		GinMode:           getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:         r.mustGetEnv("JWT_SECRET"),
		JWTIssuer:         r.mustGetEnv("JWT_ISSUER"),
		StoreDriver:       strings.ToLower(getEnvWithDefault("STORE_DRIVER", StoreDriverBadger)),
		BadgerPath:        getEnvWithDefault("BADGER_PATH", ""),
		RedisAddr:         getEnvWithDefault("REDIS_ADDR", ""),
		RedisPassword:     getEnvWithDefault("REDIS_PASSWORD", ""),
		RedisDB:           r.getEnvAsIntWithDefault("REDIS_DB", 0),
		CacheTTLSeconds:   r.getEnvAsIntWithDefault("CACHE_TTL_SECONDS", 600),
		MazeMaxDimension:  r.getEnvAsIntWithDefault("MAZE_MAX_DIMENSION", 100),
		MazeUnitWidth:     r.getEnvAsFloatWithDefault("MAZE_UNIT_WIDTH", 40),
		MazeUnitHeight:    r.getEnvAsFloatWithDefault("MAZE_UNIT_HEIGHT", 40),
		MazeWallThickness: r.getEnvAsFloatWithDefault("MAZE_WALL_THICKNESS", 5),
	}

	switch c.StoreDriver {
	case StoreDriverMongo:
		c.DBHost = r.mustGetEnv("DB_HOST")
		c.DBPort = r.mustGetEnvAsInt("DB_PORT")
		c.DBUser = r.mustGetEnv("DB_USER")
		c.DBPassword = r.mustGetEnv("DB_PASS")
		c.DBName = r.mustGetEnv("DB_NAME")
	case StoreDriverBadger:
	default:
		r.fail(fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreDriverMongo, StoreDriverBadger, c.StoreDriver))
	}

	if c.JWTSecret != "" {
		if result := zxcvbn.PasswordStrength(c.JWTSecret, []string{c.JWTIssuer}); result.Score < minSecretStrengthScore {
			r.fail(fmt.Errorf("JWT_SECRET is too weak (score %d, need %d)", result.Score, minSecretStrengthScore))
		}
	}

	if c.MazeMaxDimension < 1 {
		r.fail(fmt.Errorf("MAZE_MAX_DIMENSION must be positive, got %d", c.MazeMaxDimension))
	}

	if r.err != nil {
		return Config{}, r.err
	}
	return c, nil
}

// reader keeps the first error met while reading variables.
type reader struct {
	err error
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// mustGetEnv retrieves the value of an environment variable, recording an error if not set.
func (r *reader) mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		r.fail(fmt.Errorf("environment variable %s is not set", key))
	}
	return value
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer.
func (r *reader) mustGetEnvAsInt(key string) int {
	valueStr := r.mustGetEnv(key)
	if valueStr == "" {
		return 0
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		r.fail(fmt.Errorf("environment variable %s must be an integer: %w", key, err))
	}
	return value
}

// getEnvAsIntWithDefault retrieves an integer environment variable or returns defaultValue if not set.
func (r *reader) getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		r.fail(fmt.Errorf("environment variable %s must be an integer: %w", key, err))
	}
	return value
}

// getEnvAsFloatWithDefault retrieves a float environment variable or returns defaultValue if not set.
func (r *reader) getEnvAsFloatWithDefault(key string, defaultValue float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		r.fail(fmt.Errorf("environment variable %s must be a number: %w", key, err))
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
