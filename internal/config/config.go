package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/calendar"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/geo"
	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Backend  BackendConfig
	Geocoder GeocoderConfig
	Geofence GeofenceConfig
	Punch    PunchConfig
	Capture  CaptureConfig
	Calendar CalendarConfig
	Leave    LeaveConfig
	Store    StoreConfig
	Database DatabaseConfig
	Mongo    MongoConfig
	Session  SessionConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// BackendConfig points at the remote attendance API
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type GeocoderConfig struct {
	URL       string
	UserAgent string
	Timeout   time.Duration
}

// GeofenceConfig holds the permitted radius and the fallback reference set
type GeofenceConfig struct {
	RadiusMeters      float64
	FallbackLocations []geo.Fence
}

// PunchConfig decides what a punch-out has to prove
type PunchConfig struct {
	OutRequiresSelfie   bool
	OutRequiresGeofence bool
}

type CaptureConfig struct {
	JPEGQuality  int
	MaxDimension int
	// ViewIdle is how long an untouched punch screen keeps its camera
	ViewIdle time.Duration
}

type CalendarConfig struct {
	HolidaysFile string
	Holidays     []calendar.Holiday
}

type LeaveConfig struct {
	PaidAllowance float64
}

// StoreConfig selects where device app state lives: memory, postgres or mongo
type StoreConfig struct {
	Type       string
	StaleTTL   time.Duration
	PruneEvery time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

type SessionConfig struct {
	DeviceCookieName   string
	DeviceCookieSecret string
	DeviceCookieMaxAge time.Duration
	SecureCookie       bool
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// Backend configuration
	backendTimeout, err := time.ParseDuration(getEnv("BACKEND_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid BACKEND_TIMEOUT: %w", err)
	}

	config.Backend = BackendConfig{
		BaseURL: strings.TrimRight(getEnv("BACKEND_BASE_URL", ""), "/"),
		Timeout: backendTimeout,
	}

	// Reverse geocoding
	geocoderTimeout, err := time.ParseDuration(getEnv("GEOCODER_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid GEOCODER_TIMEOUT: %w", err)
	}

	config.Geocoder = GeocoderConfig{
		URL:       strings.TrimRight(getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org"), "/"),
		UserAgent: getEnv("GEOCODER_USER_AGENT", "selfie-punch/1.0"),
		Timeout:   geocoderTimeout,
	}

	// Geofence
	radius, err := strconv.ParseFloat(getEnv("GEOFENCE_RADIUS_METERS", "15000"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid GEOFENCE_RADIUS_METERS: %w", err)
	}

	fallback, err := ParseFences(getEnv("GEOFENCE_FALLBACK_LOCATIONS", "21.2467:81.6624"))
	if err != nil {
		return nil, fmt.Errorf("invalid GEOFENCE_FALLBACK_LOCATIONS: %w", err)
	}

	config.Geofence = GeofenceConfig{
		RadiusMeters:      radius,
		FallbackLocations: fallback,
	}

	// Punch-out policy
	config.Punch = PunchConfig{
		OutRequiresSelfie:   getEnvBool("PUNCH_OUT_REQUIRE_SELFIE", false),
		OutRequiresGeofence: getEnvBool("PUNCH_OUT_REQUIRE_GEOFENCE", false),
	}

	quality, err := strconv.Atoi(getEnv("CAPTURE_JPEG_QUALITY", "80"))
	if err != nil {
		return nil, fmt.Errorf("invalid CAPTURE_JPEG_QUALITY: %w", err)
	}
	maxDimension, err := strconv.Atoi(getEnv("CAPTURE_MAX_DIMENSION", "1280"))
	if err != nil {
		return nil, fmt.Errorf("invalid CAPTURE_MAX_DIMENSION: %w", err)
	}
	viewIdle, err := time.ParseDuration(getEnv("CAPTURE_VIEW_IDLE", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CAPTURE_VIEW_IDLE: %w", err)
	}
	config.Capture = CaptureConfig{JPEGQuality: quality, MaxDimension: maxDimension, ViewIdle: viewIdle}

	// Holiday calendar
	config.Calendar = CalendarConfig{
		HolidaysFile: getEnv("HOLIDAYS_FILE", "holidays.json"),
		Holidays:     calendar.ParseList(getEnv("HOLIDAYS", "")),
	}
	fromFile, err := calendar.LoadFile(config.Calendar.HolidaysFile)
	switch {
	case err == nil:
		config.Calendar.Holidays = append(config.Calendar.Holidays, fromFile...)
	case errors.Is(err, os.ErrNotExist):
		slog.Warn("Holiday file not found, continuing without festival holidays", "path", config.Calendar.HolidaysFile)
	default:
		return nil, err
	}

	allowance, err := strconv.ParseFloat(getEnv("LEAVE_PAID_ALLOWANCE", "12"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid LEAVE_PAID_ALLOWANCE: %w", err)
	}
	config.Leave = LeaveConfig{PaidAllowance: allowance}

	// App-state store
	staleTTL, err := time.ParseDuration(getEnv("STORE_STALE_TTL", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_STALE_TTL: %w", err)
	}
	pruneEvery, err := time.ParseDuration(getEnv("STORE_PRUNE_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_PRUNE_INTERVAL: %w", err)
	}

	config.Store = StoreConfig{
		Type:       getEnv("STORE_TYPE", "memory"),
		StaleTTL:   staleTTL,
		PruneEvery: pruneEvery,
	}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "selfie_punch"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	config.Mongo = MongoConfig{
		URI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		Database:   getEnv("MONGO_DATABASE", "selfie_punch"),
		Collection: getEnv("MONGO_COLLECTION", "app_state"),
	}

	// Session configuration
	cookieMaxAge, err := time.ParseDuration(getEnv("DEVICE_COOKIE_MAX_AGE", "8760h"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEVICE_COOKIE_MAX_AGE: %w", err)
	}

	config.Session = SessionConfig{
		DeviceCookieName:   getEnv("DEVICE_COOKIE_NAME", "device_id"),
		DeviceCookieSecret: getEnv("DEVICE_COOKIE_SECRET", ""),
		DeviceCookieMaxAge: cookieMaxAge,
		SecureCookie:       config.App.Env == "production",
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if c.Session.DeviceCookieSecret == "" {
		return fmt.Errorf("DEVICE_COOKIE_SECRET is required")
	}
	if c.Geofence.RadiusMeters <= 0 {
		return fmt.Errorf("GEOFENCE_RADIUS_METERS must be positive")
	}
	if c.Capture.JPEGQuality < 1 || c.Capture.JPEGQuality > 100 {
		return fmt.Errorf("CAPTURE_JPEG_QUALITY must be between 1 and 100")
	}
	if c.Capture.MaxDimension < 0 {
		return fmt.Errorf("CAPTURE_MAX_DIMENSION must not be negative")
	}
	if c.Capture.ViewIdle <= 0 {
		return fmt.Errorf("CAPTURE_VIEW_IDLE must be positive")
	}

	switch c.Store.Type {
	case "memory", "mongo":
	case "postgres":
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	default:
		return fmt.Errorf("unsupported STORE_TYPE: %s", c.Store.Type)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL onto a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseFences parses "lat:lon[:radius];lat:lon" lists.
func ParseFences(s string) ([]geo.Fence, error) {
	var fences []geo.Fence
	for _, item := range strings.Split(s, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parts := strings.Split(item, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, fmt.Errorf("location %q must be lat:lon or lat:lon:radius", item)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("location %q: %w", item, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("location %q: %w", item, err)
		}
		fence := geo.Fence{Point: geo.Point{Latitude: lat, Longitude: lon}}
		if len(parts) == 3 {
			fence.RadiusMeters, err = strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
			if err != nil {
				return nil, fmt.Errorf("location %q: %w", item, err)
			}
		}
		fences = append(fences, fence)
	}
	return fences, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvSlice(key, fallback string) []string {
	value := getEnv(key, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
