package config

import (
	"os"
	"strconv"
	"time"

	apperr "stayscan/hotelworker/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// Search parameters
	City     string
	CheckIn  string
	CheckOut string
	Limit    int
	BaseURL  string

	// Browser configuration
	Headless        bool
	UserAgent       string
	WindowWidth     int
	WindowHeight    int
	PageLoadTimeout time.Duration

	// Wait and retry configuration
	ElementTimeout  time.Duration
	PollInterval    time.Duration
	StaleRetries    int
	StaleRetryDelay time.Duration
	LoadRetries     int

	// Memcache configuration
	MemcacheAddr string
	BlockTime    time.Duration

	// Redis configuration
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamCount     int
	RedisStreamMaxLength int
	PublishEnabled       bool

	// Postgres configuration
	PostgresDSN string

	// Output configuration
	DataDir    string
	OutputFile string

	// Environment
	Environment string
}

const dateLayout = "2006-01-02"

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	limit, _ := strconv.Atoi(getEnv("HOTEL_LIMIT", "0"))
	windowWidth, _ := strconv.Atoi(getEnv("BROWSER_WINDOW_WIDTH", "1920"))
	windowHeight, _ := strconv.Atoi(getEnv("BROWSER_WINDOW_HEIGHT", "1080"))
	pageTimeout, _ := strconv.Atoi(getEnv("PAGE_LOAD_TIMEOUT_SECONDS", "600"))
	elementTimeout, _ := strconv.Atoi(getEnv("ELEMENT_TIMEOUT_SECONDS", "10"))
	pollInterval, _ := strconv.Atoi(getEnv("POLL_INTERVAL_MS", "500"))
	staleRetries, _ := strconv.Atoi(getEnv("STALE_RETRIES", "3"))
	staleDelay, _ := strconv.Atoi(getEnv("STALE_RETRY_DELAY_SECONDS", "2"))
	loadRetries, _ := strconv.Atoi(getEnv("LOAD_RETRIES", "3"))
	blockTime, _ := strconv.Atoi(getEnv("BLOCK_TIME_SECONDS", "600"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamCount, _ := strconv.Atoi(getEnv("REDIS_STREAM_COUNT", "1"))
	streamMaxLen, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "500"))

	return Config{
		City:     getEnv("HOTEL_CITY", ""),
		CheckIn:  getEnv("HOTEL_CHECK_IN", ""),
		CheckOut: getEnv("HOTEL_CHECK_OUT", ""),
		Limit:    limit,
		BaseURL:  getEnv("HOTEL_BASE_URL", "https://www.kayak.com/hotels"),

		Headless: getEnv("BROWSER_HEADLESS", "true") == "true",
		UserAgent: getEnv("BROWSER_USER_AGENT",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		WindowWidth:     windowWidth,
		WindowHeight:    windowHeight,
		PageLoadTimeout: time.Duration(pageTimeout) * time.Second,

		ElementTimeout:  time.Duration(elementTimeout) * time.Second,
		PollInterval:    time.Duration(pollInterval) * time.Millisecond,
		StaleRetries:    staleRetries,
		StaleRetryDelay: time.Duration(staleDelay) * time.Second,
		LoadRetries:     loadRetries,

		MemcacheAddr: getEnv("MEMCACHE_ADDR", ""),
		BlockTime:    time.Duration(blockTime) * time.Second,

		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "hotels"),
		RedisStreamCount:     streamCount,
		RedisStreamMaxLength: streamMaxLen,
		PublishEnabled:       getEnv("PUBLISH_ENABLED", "false") == "true",

		PostgresDSN: getEnv("POSTGRES_DSN", ""),

		DataDir:    getEnv("DATA_DIR", "data"),
		OutputFile: getEnv("OUTPUT_FILE", "hotel_data.json"),

		Environment: getEnv("HOTEL_ENVIRONMENT", "development"),
	}
}

// Validate checks that the configuration is usable for a crawl
func (c Config) Validate() error {
	if c.City == "" {
		return apperr.NewValidation("city", "HOTEL_CITY is required")
	}
	checkIn, err := time.Parse(dateLayout, c.CheckIn)
	if err != nil {
		return apperr.New(apperr.ErrorTypeValidation, "check_in", "HOTEL_CHECK_IN must be YYYY-MM-DD", err)
	}
	checkOut, err := time.Parse(dateLayout, c.CheckOut)
	if err != nil {
		return apperr.New(apperr.ErrorTypeValidation, "check_out", "HOTEL_CHECK_OUT must be YYYY-MM-DD", err)
	}
	if !checkOut.After(checkIn) {
		return apperr.NewValidation("check_out", "check-out date must be after check-in date")
	}
	if c.Limit < 0 {
		return apperr.NewValidation("limit", "HOTEL_LIMIT must not be negative")
	}
	if c.LoadRetries < 1 {
		return apperr.NewValidation("load_retries", "LOAD_RETRIES must be at least 1")
	}
	if c.PublishEnabled && c.RedisAddr == "" {
		return apperr.NewValidation("redis", "REDIS_ADDR is required when PUBLISH_ENABLED is true")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
