package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the settings of the census service.
type Config struct {
	// Host is the address the HTTP server listens on.
	Host string

	// Mode is the gin mode (debug, release or test).
	Mode string

	// DBDriver selects the database dialect: postgres, mysql or sqlite.
	DBDriver string

	// DBDSN is the connection string handed to the driver.
	DBDSN string

	// JWTSecret signs login tokens.
	JWTSecret string

	// TokenTTL is the lifetime of a login token and its session.
	TokenTTL time.Duration

	// PageSize is the number of copies in one page of search results.
	PageSize int

	// ExcludedTitles are titles whose copies never show up in search.
	ExcludedTitles []string

	// AutofillLimit caps the number of suggestions returned by autofill.
	AutofillLimit int

	// AllowOrigins lists the origins accepted by the CORS middleware.
	AllowOrigins []string

	// DriveCredentialsPath points to a Google service account file.
	DriveCredentialsPath string

	// DriveCredentialsJSON holds service account credentials inline.
	DriveCredentialsJSON string

	// AdminUsername and AdminPassword describe the account created by seed.
	AdminUsername string
	AdminPassword string
}

// Option type allows to change settings for Config.
type Option func(*Config)

// OptHost sets the listening address.
func OptHost(h string) Option {
	return func(cfg *Config) {
		cfg.Host = h
	}
}

// OptDatabase sets the database driver and DSN.
func OptDatabase(driver, dsn string) Option {
	return func(cfg *Config) {
		cfg.DBDriver = driver
		cfg.DBDSN = dsn
	}
}

// OptJWTSecret sets the token signing key.
func OptJWTSecret(s string) Option {
	return func(cfg *Config) {
		cfg.JWTSecret = s
	}
}

// OptTokenTTL sets the token lifetime.
func OptTokenTTL(d time.Duration) Option {
	return func(cfg *Config) {
		cfg.TokenTTL = d
	}
}

// OptPageSize sets the search page size. Values below 1 are ignored.
func OptPageSize(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.PageSize = n
		}
	}
}

// OptExcludedTitles sets titles hidden from search results.
func OptExcludedTitles(titles []string) Option {
	return func(cfg *Config) {
		cfg.ExcludedTitles = titles
	}
}

// OptAutofillLimit sets the autofill cap. Values below 1 are ignored.
func OptAutofillLimit(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.AutofillLimit = n
		}
	}
}

// OptAllowOrigins sets CORS origins.
func OptAllowOrigins(origins []string) Option {
	return func(cfg *Config) {
		cfg.AllowOrigins = origins
	}
}

// OptDriveCredentials sets Google Drive service account credentials.
func OptDriveCredentials(path, json string) Option {
	return func(cfg *Config) {
		cfg.DriveCredentialsPath = path
		cfg.DriveCredentialsJSON = json
	}
}

// OptAdmin sets the seeded admin account.
func OptAdmin(username, password string) Option {
	return func(cfg *Config) {
		cfg.AdminUsername = username
		cfg.AdminPassword = password
	}
}

// New creates a Config with defaults, modified by given options.
func New(opts ...Option) *Config {
	cfg := &Config{
		Host:          ":8080",
		Mode:          "release",
		DBDriver:      "postgres",
		TokenTTL:      12 * time.Hour,
		PageSize:      20,
		AutofillLimit: 50,
		AllowOrigins:  []string{"http://localhost:8080", "http://127.0.0.1:8080"},
		AdminUsername: "admin",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Load reads settings from .env, an optional wheatley.yaml file and the
// environment. An explicit cfgFile must exist; otherwise the file is looked
// up in the working directory and in ~/.config.
func Load(cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("cannot read .env: %w", err)
	}

	v := viper.New()
	def := New()
	v.SetDefault("server.host", def.Host)
	v.SetDefault("server.mode", def.Mode)
	v.SetDefault("database.driver", def.DBDriver)
	v.SetDefault("database.dsn", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", def.TokenTTL)
	v.SetDefault("search.page_size", def.PageSize)
	v.SetDefault("search.excluded_titles", []string{})
	v.SetDefault("autofill.limit", def.AutofillLimit)
	v.SetDefault("cors.allow_origins", def.AllowOrigins)
	v.SetDefault("google_drive.credentials_path", "")
	v.SetDefault("google_drive.credentials_json", "")
	v.SetDefault("seed.admin_username", def.AdminUsername)
	v.SetDefault("seed.admin_password", "")

	v.SetEnvPrefix("wheatley")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// variable names kept from earlier deployments
	legacy := map[string]string{
		"server.host":                   "SERVER_HOST",
		"database.dsn":                  "DB_DSN",
		"auth.jwt_secret":               "JWT_SECRET",
		"google_drive.credentials_path": "GOOGLE_DRIVE_CREDENTIALS_PATH",
		"google_drive.credentials_json": "GOOGLE_DRIVE_CREDENTIALS_JSON",
	}
	for key, env := range legacy {
		prefixed := "WHEATLEY_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, err
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("wheatley")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("cannot read config: %w", err)
		}
	}

	cfg := New(
		OptHost(v.GetString("server.host")),
		OptDatabase(v.GetString("database.driver"), v.GetString("database.dsn")),
		OptJWTSecret(v.GetString("auth.jwt_secret")),
		OptTokenTTL(v.GetDuration("auth.token_ttl")),
		OptPageSize(v.GetInt("search.page_size")),
		OptExcludedTitles(titleList(v, "search.excluded_titles")),
		OptAutofillLimit(v.GetInt("autofill.limit")),
		OptAllowOrigins(v.GetStringSlice("cors.allow_origins")),
		OptDriveCredentials(
			v.GetString("google_drive.credentials_path"),
			v.GetString("google_drive.credentials_json"),
		),
		OptAdmin(v.GetString("seed.admin_username"), v.GetString("seed.admin_password")),
	)
	cfg.Mode = v.GetString("server.mode")
	return cfg, nil
}

// titleList reads a list of titles. Titles hold spaces and commas, so a
// value given as one string (an environment variable) is split on ";".
func titleList(v *viper.Viper, key string) []string {
	raw, ok := v.Get(key).(string)
	if !ok {
		return v.GetStringSlice(key)
	}
	var titles []string
	for _, t := range strings.Split(raw, ";") {
		if t = strings.TrimSpace(t); t != "" {
			titles = append(titles, t)
		}
	}
	return titles
}
