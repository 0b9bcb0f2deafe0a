package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"pizza-store/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds everything needed to reach the database and run the client.
// DBName, Port and User come from the positional arguments, the rest from the environment.
type Config struct {
	DBName     string
	Port       string
	User       string
	Password   string
	Host       string
	Driver     string
	SQLitePath string
	// AutoMigrate creates the tables when they are missing. Always on for sqlite.
	AutoMigrate bool
	Env         string
	JWTSecret   []byte
	// CORSOrigins are the browser origins the API answers; "*" allows any.
	CORSOrigins []string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Load reads an optional .env file and builds a Config around the given connection arguments.
func Load(dbname, port, user string) Config {
	// a missing .env is fine, the process environment still applies
	_ = godotenv.Load()

	return Config{
		DBName:      dbname,
		Port:        port,
		User:        user,
		Password:    getEnv("PIZZA_DB_PASSWORD", ""),
		Host:        getEnv("PIZZA_DB_HOST", "localhost"),
		Driver:      getEnv("PIZZA_DB_DRIVER", DriverPostgres),
		SQLitePath:  getEnv("PIZZA_SQLITE_PATH", "pizza_store.db"),
		AutoMigrate: getEnvBool("PIZZA_AUTO_MIGRATE", false),
		Env:         getEnv("PIZZA_ENV", "development"),
		JWTSecret:   []byte(getEnv("JWT_SECRET", "pizza_store_dev_secret")),
		CORSOrigins: splitList(getEnv("PIZZA_CORS_ORIGINS", "*")),
	}
}

// DSN returns the connection string for the configured driver.
func (c Config) DSN() string {
	if c.Driver == DriverSQLite {
		return c.SQLitePath
	}
	dsn := fmt.Sprintf("host=%s port=%s dbname=%s user=%s sslmode=disable", c.Host, c.Port, c.DBName, c.User)
	if c.Password != "" {
		dsn += " password=" + c.Password
	}
	return dsn
}

// URL is the human-readable location printed while connecting.
func (c Config) URL() string {
	if c.Driver == DriverSQLite {
		return "sqlite://" + c.SQLitePath
	}
	return fmt.Sprintf("postgresql://%s:%s/%s", c.Host, c.Port, c.DBName)
}

// OpenDB connects to the configured database and migrates it when asked to.
func OpenDB(c Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch c.Driver {
	case DriverPostgres:
		dialector = postgres.Open(c.DSN())
	case DriverSQLite:
		dialector = sqlite.Open(c.DSN())
	default:
		return nil, fmt.Errorf("unknown database driver %q", c.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", c.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("underlying handle: %w", err)
	}
	// one connection for the lifetime of the process
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping %s: %w", c.Driver, err)
	}

	if c.AutoMigrate || c.Driver == DriverSQLite {
		if err := db.AutoMigrate(models.AllModels()...); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return db, nil
}

// CloseDB releases the underlying connection.
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
