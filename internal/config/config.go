package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Notification binding transports.
const (
	TransportHTTP  = "http"
	TransportKafka = "kafka"
)

// Device kinds. Virtual devices cannot receive push tokens.
const (
	DevicePhysical = "physical"
	DeviceVirtual  = "virtual"
)

// Config holds all picker settings, populated from environment variables.
type Config struct {
	APIBaseURL    string
	LocationsPath string
	OfficesPath   string
	// Local fixture files replace the API sources when set.
	LocationsFile string
	OfficesFile   string
	HTTPTimeout   time.Duration
	// LoadTimeout bounds the startup hierarchy load. Zero waits indefinitely.
	LoadTimeout time.Duration

	ContentBaseURL string
	StateDBPath    string

	// Notification binding.
	NotifyTransport    string
	NotifyRegisterPath string
	KafkaBrokers       []string
	KafkaBindingTopic  string

	// Push token minting.
	PushProjectID string
	PushTokenURL  string
	DeviceKind    string
	DeviceOS      string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// LoadDotEnv merges a .env file into the environment when it exists.
// Variables already set take precedence.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	httpTimeout, err := parseDuration("HTTP_TIMEOUT", "10s", false)
	if err != nil {
		return nil, err
	}

	loadTimeout, err := parseDuration("LOAD_TIMEOUT", "15s", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIBaseURL:    sharedcfg.EnvOrDefault("API_BASE_URL", "https://allplace.online"),
		LocationsPath: sharedcfg.EnvOrDefault("LOCATIONS_PATH", "/api/locations/countries"),
		OfficesPath:   sharedcfg.EnvOrDefault("OFFICES_PATH", "/api/offices"),
		LocationsFile: os.Getenv("LOCATIONS_FILE"),
		OfficesFile:   os.Getenv("OFFICES_FILE"),
		HTTPTimeout:   httpTimeout,
		LoadTimeout:   loadTimeout,

		ContentBaseURL: sharedcfg.EnvOrDefault("CONTENT_BASE_URL", "https://allplace.online/en/items-list"),
		StateDBPath:    sharedcfg.EnvOrDefault("STATE_DB_PATH", "office-picker.db"),

		NotifyTransport:    sharedcfg.EnvOrDefault("NOTIFY_TRANSPORT", TransportHTTP),
		NotifyRegisterPath: sharedcfg.EnvOrDefault("NOTIFY_REGISTER_PATH", "/api/notifications/register"),
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaBindingTopic:  sharedcfg.EnvOrDefault("KAFKA_BINDING_TOPIC", "notification-bindings"),

		PushProjectID: os.Getenv("PUSH_PROJECT_ID"),
		PushTokenURL:  sharedcfg.EnvOrDefault("PUSH_TOKEN_URL", "https://exp.host/--/api/v2/push/getExpoPushToken"),
		DeviceKind:    sharedcfg.EnvOrDefault("DEVICE_KIND", DevicePhysical),
		DeviceOS:      sharedcfg.EnvOrDefault("DEVICE_OS", runtime.GOOS),

		HTTPAddr:        os.Getenv("HTTP_ADDR"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		ShutdownTimeout: shutdownTimeout,
	}

	switch cfg.NotifyTransport {
	case TransportHTTP:
	case TransportKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when NOTIFY_TRANSPORT is kafka")
		}
	default:
		return nil, fmt.Errorf("invalid NOTIFY_TRANSPORT %q: want http or kafka", cfg.NotifyTransport)
	}
	if cfg.DeviceKind != DevicePhysical && cfg.DeviceKind != DeviceVirtual {
		return nil, fmt.Errorf("invalid DEVICE_KIND %q: want physical or virtual", cfg.DeviceKind)
	}

	return cfg, nil
}

func parseDuration(key, def string, allowZero bool) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d < 0 || (d == 0 && !allowZero) {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}
