package application

import (
	"os"
	"strconv"
	"strings"

	"vitalink/internal/shared/validation"
	sourceinfra "vitalink/internal/source/infrastructure"
)

// RuntimeConfig holds all runtime configuration from CLI flags, environment variables, and .env file
type RuntimeConfig struct {
	// API Configuration
	APIKey  string
	APIPort string

	// Development Mode
	DevMode bool

	// Logging Configuration
	LogLevel  string
	LogFormat string
	LogOutput string

	// Session recording; empty disables recording
	DBPath string

	// Hardware discovery: 16-bit UUIDs as hex text, optional pinned
	// device address
	ServiceUUID        string
	CharacteristicUUID string
	DeviceAddress      string

	// Start the demo generator immediately on boot
	DemoOnStart bool
}

// Flags bundles the CLI flag values fed into LoadRuntimeConfig.
type Flags struct {
	APIKey             string
	Port               string
	LogLevel           string
	LogFormat          string
	LogOutput          string
	DBPath             string
	ServiceUUID        string
	CharacteristicUUID string
	DeviceAddress      string
	DevMode            bool
	DemoOnStart        bool
}

// LoadRuntimeConfig loads configuration with precedence: CLI flags > env vars > .env file > defaults
func LoadRuntimeConfig(flags Flags) *RuntimeConfig {
	cfg := &RuntimeConfig{
		APIKey:             getValue(flags.APIKey, "VITALINK_API_KEY", ""),
		APIPort:            getValue(flags.Port, "VITALINK_API_PORT", "8080"),
		DevMode:            flags.DevMode || getBoolEnv("VITALINK_DEV_MODE", false),
		LogLevel:           getValue(flags.LogLevel, "VITALINK_LOG_LEVEL", "INFO"),
		LogFormat:          getValue(flags.LogFormat, "VITALINK_LOG_FORMAT", "text"),
		LogOutput:          getValue(flags.LogOutput, "VITALINK_LOG_OUTPUT", "stdout"),
		DBPath:             getValue(flags.DBPath, "VITALINK_DB_PATH", ""),
		ServiceUUID:        getValue(flags.ServiceUUID, "VITALINK_BLE_SERVICE", "ffe0"),
		CharacteristicUUID: getValue(flags.CharacteristicUUID, "VITALINK_BLE_CHARACTERISTIC", "ffe1"),
		DeviceAddress:      getValue(flags.DeviceAddress, "VITALINK_BLE_ADDRESS", ""),
		DemoOnStart:        flags.DemoOnStart || getBoolEnv("VITALINK_DEMO", false),
	}

	return cfg
}

// getValue returns the first non-empty value from CLI flag, env var, or default
func getValue(cliValue, envKey, defaultValue string) string {
	if cliValue != "" {
		return cliValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolEnv gets a boolean environment variable
func getBoolEnv(key string, defaultValue bool) bool {
	value := strings.ToLower(os.Getenv(key))
	if value == "true" || value == "1" || value == "yes" {
		return true
	}
	if value == "false" || value == "0" || value == "no" {
		return false
	}
	return defaultValue
}

// Validate checks that required configuration is present and well-formed
func (c *RuntimeConfig) Validate() error {
	problems := make(map[string]string, 3)

	if c.APIKey == "" && !c.DevMode {
		problems["api-key"] = "API key is required (set VITALINK_API_KEY, use --api-key, or run with --dev)"
	}

	if c.APIPort != "" {
		if port, err := strconv.Atoi(c.APIPort); err != nil || port < 1 || port > 65535 {
			problems["port"] = "port must be a number between 1 and 65535"
		}
	}

	if _, err := sourceinfra.ParseUUID16(c.ServiceUUID); err != nil {
		problems["ble-service"] = err.Error()
	}

	if _, err := sourceinfra.ParseUUID16(c.CharacteristicUUID); err != nil {
		problems["ble-characteristic"] = err.Error()
	}

	if len(problems) > 0 {
		return validation.NewValidationError(problems, "runtime")
	}
	return nil
}

// BLEConfig translates the textual discovery settings into the hardware
// source configuration. Call Validate first; parse errors surface there.
func (c *RuntimeConfig) BLEConfig() sourceinfra.BLEConfig {
	serviceUUID, _ := sourceinfra.ParseUUID16(c.ServiceUUID)
	characteristicUUID, _ := sourceinfra.ParseUUID16(c.CharacteristicUUID)
	return sourceinfra.BLEConfig{
		ServiceUUID:        serviceUUID,
		CharacteristicUUID: characteristicUUID,
		DeviceAddress:      c.DeviceAddress,
	}
}
