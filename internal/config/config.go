package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	// PenaltyDailyRate is the flat daily rate applied to the unpaid EMI
	// balance of an overdue installment.
	PenaltyDailyRate decimal.Decimal

	// Provisioning rates per NPA category.
	ProvisionSubStandard decimal.Decimal
	ProvisionDoubtful    decimal.Decimal
	ProvisionLoss        decimal.Decimal

	TxTimeout    time.Duration
	TxMaxRetries uint64

	PortfolioCacheTTL time.Duration
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getdec(k, d string) decimal.Decimal {
	raw := getenv(k, d)
	if v, err := decimal.NewFromString(raw); err == nil {
		return v
	}
	return decimal.RequireFromString(d)
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	return &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "creditrisk"),
		MySQLUser: getenv("MYSQL_USER", "creditrisk"),
		MySQLPass: getenv("MYSQL_PASS", "creditrisk"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:   getint("REDIS_DB", 0),

		IdempTTLSecs: getint("IDEMPOTENCY_TTL_SECONDS", 300),

		PenaltyDailyRate:     getdec("PENALTY_DAILY_RATE", "0.0005"),
		ProvisionSubStandard: getdec("PROVISION_SUBSTANDARD", "0.15"),
		ProvisionDoubtful:    getdec("PROVISION_DOUBTFUL", "0.40"),
		ProvisionLoss:        getdec("PROVISION_LOSS", "1.00"),

		TxTimeout:    time.Duration(getint("TX_TIMEOUT_SECONDS", 5)) * time.Second,
		TxMaxRetries: uint64(getint("TX_MAX_RETRIES", 3)),

		PortfolioCacheTTL: time.Duration(getint("PORTFOLIO_CACHE_TTL_SECONDS", 30)) * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.PenaltyDailyRate.IsNegative() {
		return errors.New("PENALTY_DAILY_RATE must not be negative")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
