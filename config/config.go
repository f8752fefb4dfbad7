package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"resto/cart"
)

type Server struct {
	Port           string   `yaml:"port"`
	GinMode        string   `yaml:"gin_mode"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Storage struct {
	// Driver is one of memory, bolt, postgres or sqlite.
	Driver string `yaml:"driver"`
	// Path is the bolt file or the sqlite database file.
	Path string `yaml:"path"`
	DSN  string `yaml:"dsn"`
	// Persist overrides which entities are written to slots.
	Persist map[string]bool `yaml:"persist"`
}

type Logger struct {
	Level      string `yaml:"level"`
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type Auth struct {
	JWTSecret string `yaml:"jwt_secret"`
	// DefaultPermissions are granted to requests without a session token.
	DefaultPermissions []string `yaml:"default_permissions"`
	// RolePermissions maps an employee role to the permissions of its session.
	RolePermissions map[string][]string `yaml:"role_permissions"`
}

type Tables struct {
	ResizeSeats bool `yaml:"resize_seats"`
}

type Cart struct {
	Tax float64 `yaml:"tax"`
}

type Events struct {
	AMQPURL  string `yaml:"amqp_url"`
	Exchange string `yaml:"exchange"`
}

type Jobs struct {
	// InventorySweep is the cron spec of the low stock and expiry sweep.
	InventorySweep string `yaml:"inventory_sweep"`
}

type AppConfig struct {
	ServiceName string  `yaml:"service_name"`
	Server      Server  `yaml:"server"`
	Storage     Storage `yaml:"storage"`
	Logger      Logger  `yaml:"logger"`
	Auth        Auth    `yaml:"auth"`
	Tables      Tables  `yaml:"tables"`
	Cart        Cart    `yaml:"cart"`
	Events      Events  `yaml:"events"`
	Jobs        Jobs    `yaml:"jobs"`
}

// Default returns a configuration that runs a bolt backed service on 8083.
func Default() *AppConfig {
	return &AppConfig{
		ServiceName: "resto",
		Server: Server{
			Port:           "8083",
			GinMode:        "debug",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Storage: Storage{
			Driver: "bolt",
			Path:   "data/pos.db",
		},
		Logger: Logger{
			Level:    "info",
			Mode:     "development",
			Filename: "logs/resto.log",
		},
		Auth: Auth{
			JWTSecret:          "resto-dev-secret",
			DefaultPermissions: []string{"edit_employees", "delete_employees"},
			RolePermissions: map[string][]string{
				"Manager": {"edit_employees", "delete_employees"},
			},
		},
		Tables: Tables{ResizeSeats: true},
		Cart:   Cart{Tax: cart.DefaultTax},
		Events: Events{Exchange: "pos_events"},
		Jobs:   Jobs{InventorySweep: "@every 5m"},
	}
}

// Load reads path over the defaults when the file exists, then applies the
// environment.
func Load(path string) (*AppConfig, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config %s", path)
			}
		case !os.IsNotExist(err):
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *AppConfig) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.GinMode = getEnv("GIN_MODE", c.Server.GinMode)
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = splitList(origins)
	}
	c.Storage.Driver = getEnv("STORAGE_DRIVER", c.Storage.Driver)
	c.Storage.Path = getEnv("STORAGE_PATH", c.Storage.Path)
	c.Storage.DSN = getEnv("DATABASE_DSN", c.Storage.DSN)
	c.Logger.Level = getEnv("LOG_LEVEL", c.Logger.Level)
	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)
	c.Events.AMQPURL = getEnv("AMQP_URL", c.Events.AMQPURL)
	if v := os.Getenv("TABLES_RESIZE_SEATS"); v != "" {
		c.Tables.ResizeSeats = cast.ToBool(v)
	}
	if v := os.Getenv("CART_TAX"); v != "" {
		c.Cart.Tax = cast.ToFloat64(v)
	}
}

var drivers = map[string]bool{"memory": true, "bolt": true, "postgres": true, "sqlite": true}

func (c *AppConfig) Validate() error {
	if !drivers[c.Storage.Driver] {
		return errors.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == "postgres" && c.Storage.DSN == "" {
		return errors.New("DATABASE_DSN is required for the postgres driver")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.Cart.Tax < 0 {
		return errors.New("cart tax must not be negative")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
