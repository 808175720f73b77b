package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/graph"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Routing  RoutingConfig
	App      AppConfig
}

type ServerConfig struct {
	Port string
	// RouteRateLimit is route requests per second across the process; 0
	// disables limiting.
	RouteRateLimit float64
	RouteRateBurst int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	// DSN, when set, is used for the pgx health pool. Leave DB_HOST empty to
	// run without a database.
	DSN string
}

// Enabled reports whether a waypoint database is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RoutingConfig struct {
	Graph        graph.Config
	WalkingSpeed float64
	SweepSpec    string
}

type AppConfig struct {
	Environment  string
	Version      string
	DemoBuilding bool
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FromEnv reads the configuration from the process environment without
// touching .env files or validating.
func FromEnv() *Config {
	def := graph.DefaultConfig()

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RouteRateLimit: getEnvAsFloat("ROUTE_RATE_LIMIT", 50),
			RouteRateBurst: getEnvAsInt("ROUTE_RATE_BURST", 100),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "indoor_nav"),
			DSN:      getEnv("DB_DSN", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Routing: RoutingConfig{
			Graph: graph.Config{
				ProximityThreshold: getEnvAsFloat("PROXIMITY_THRESHOLD", def.ProximityThreshold),
				FloorChangePenalty: getEnvAsFloat("FLOOR_CHANGE_PENALTY", def.FloorChangePenalty),
				ClusterCellSize:    getEnvAsFloat("CLUSTER_CELL_SIZE", def.ClusterCellSize),
				StairFloorUnit:     getEnvAsFloat("STAIR_FLOOR_UNIT", def.StairFloorUnit),
				ElevatorFloorUnit:  getEnvAsFloat("ELEVATOR_FLOOR_UNIT", def.ElevatorFloorUnit),
			},
			WalkingSpeed: getEnvAsFloat("WALKING_SPEED", 1.4),
			SweepSpec:    getEnv("CLOSURE_SWEEP_SPEC", "0 * * * * *"),
		},
		App: AppConfig{
			Environment:  getEnv("APP_ENV", "development"),
			Version:      getEnv("APP_VERSION", "1.0.0"),
			DemoBuilding: getEnvAsBool("DEMO_BUILDING", true),
		},
	}
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if err := c.Routing.Graph.Validate(); err != nil {
		return fmt.Errorf("routing config: %w", err)
	}

	if c.Routing.WalkingSpeed <= 0 {
		return fmt.Errorf("WALKING_SPEED must be positive")
	}

	if !c.Database.Enabled() && !c.App.DemoBuilding {
		return fmt.Errorf("DB_HOST is required when DEMO_BUILDING is disabled")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(valueStr), 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}
