package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"vendorhub/internal/core/application/usecases/commands"
	"vendorhub/internal/jobs"
	"vendorhub/internal/pkg/errs"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// OrderStoreTimeout bounds every order store round trip, reads included.
	OrderStoreTimeout       time.Duration
	OrderUpdateMaxAttempts  int
	OrderSettlementSchedule string

	LogLevel slog.Level
}

// LoadConfig reads the configuration through getenv. Unset tuning values
// fall back to their defaults; malformed ones are reported together.
func LoadConfig(getenv func(string) string) (Config, error) {
	config := Config{
		HTTPPort:                withDefault(getenv("HTTP_PORT"), "8082"),
		DBHost:                  getenv("DB_HOST"),
		DBPort:                  withDefault(getenv("DB_PORT"), "5432"),
		DBUser:                  getenv("DB_USER"),
		DBPassword:              getenv("DB_PASSWORD"),
		DBName:                  getenv("DB_NAME"),
		DBSslMode:               withDefault(getenv("DB_SSLMODE"), "disable"),
		OrderStoreTimeout:       commands.DefaultStoreTimeout,
		OrderUpdateMaxAttempts:  commands.DefaultUpdateMaxAttempts,
		OrderSettlementSchedule: withDefault(getenv("ORDER_SETTLEMENT_SCHEDULE"), jobs.DefaultSettlementSchedule),
		LogLevel:                slog.LevelInfo,
	}

	var failures []error
	if v := getenv("ORDER_STORE_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		switch {
		case err != nil:
			failures = append(failures, errs.NewValueIsInvalidErrorWithCause("ORDER_STORE_TIMEOUT", err))
		case timeout <= 0:
			failures = append(failures, errs.NewValueIsOutOfRangeError("ORDER_STORE_TIMEOUT", v, "1ns", "unbounded"))
		default:
			config.OrderStoreTimeout = timeout
		}
	}
	if v := getenv("ORDER_UPDATE_MAX_ATTEMPTS"); v != "" {
		attempts, err := strconv.Atoi(v)
		switch {
		case err != nil:
			failures = append(failures, errs.NewValueIsInvalidErrorWithCause("ORDER_UPDATE_MAX_ATTEMPTS", err))
		case attempts < 1:
			failures = append(failures, errs.NewValueIsOutOfRangeError("ORDER_UPDATE_MAX_ATTEMPTS", attempts, 1, "unbounded"))
		default:
			config.OrderUpdateMaxAttempts = attempts
		}
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		if err := config.LogLevel.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
			failures = append(failures, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err))
		}
	}

	if err := errors.Join(failures...); err != nil {
		return Config{}, err
	}
	return config, nil
}

// DSN is the connection string for gorm.io/driver/postgres.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
