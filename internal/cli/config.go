package cli

import (
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/friendsofgo/errors"
	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"

	paging "github.com/nrfta/rdb-paging-go"
)

const (
	maxWalkDepth = 25
)

// Config represents the rdbpaging configuration from rdbpaging.yaml.
type Config struct {
	// Schema is the order by schema file.
	Schema string `mapstructure:"schema" json:"schema"`

	// Dialect names the SQL dialect, see dialect.Names.
	Dialect string `mapstructure:"dialect" json:"dialect"`

	Database DatabaseConfig `mapstructure:"database" json:"database"`
	Paging   PagingConfig   `mapstructure:"paging" json:"paging"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// Driver overrides the database/sql driver picked from the dialect.
	Driver   string `mapstructure:"driver" json:"driver,omitempty"`
	URL      string `mapstructure:"url" json:"url,omitempty"`
	Path     string `mapstructure:"path" json:"path,omitempty"`
	Host     string `mapstructure:"host" json:"host,omitempty"`
	Port     int    `mapstructure:"port" json:"port,omitempty"`
	Name     string `mapstructure:"name" json:"name,omitempty"`
	User     string `mapstructure:"user" json:"user,omitempty"`
	Password string `mapstructure:"password" json:"-"`
	SSLMode  string `mapstructure:"sslmode" json:"sslmode,omitempty"`
}

// PagingConfig holds page size limits.
type PagingConfig struct {
	DefaultItemsPerPage int `mapstructure:"default_items_per_page" json:"default_items_per_page"`
	MaxItemsPerPage     int `mapstructure:"max_items_per_page" json:"max_items_per_page"`
}

// PaginateOptions returns the page size limits as paginate options.
func (c PagingConfig) PaginateOptions() []paging.PaginateOption {
	return []paging.PaginateOption{
		paging.WithDefaultItemsPerPage(c.DefaultItemsPerPage),
		paging.WithMaxItemsPerPage(c.MaxItemsPerPage),
	}
}

// LoadConfig discovers and loads configuration with proper precedence:
// flags > env > config file > defaults.
//
// Returns the loaded config, the path to the config file (empty if none found),
// and any error encountered.
func LoadConfig(explicitConfigPath string) (*Config, string, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("RDBPAGING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath, err := findConfigFile(explicitConfigPath)
	if err != nil {
		return nil, "", err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, errors.Wrap(err, "unmarshaling config")
	}

	return &cfg, configPath, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("schema", "orderby.yaml")
	v.SetDefault("dialect", "postgres")

	v.SetDefault("database.driver", "")
	v.SetDefault("database.url", "")
	v.SetDefault("database.path", "")
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 0)
	v.SetDefault("database.name", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.sslmode", "prefer")

	v.SetDefault("paging.default_items_per_page", paging.DefaultItemsPerPage)
	v.SetDefault("paging.max_items_per_page", paging.DefaultMaxItemsPerPage)
}

// findConfigFile finds the config file to use.
// If explicitPath is provided, it validates the file exists.
// Otherwise, it walks up from cwd looking for rdbpaging.yaml or rdbpaging.yml,
// stopping at a .git directory or after maxWalkDepth levels.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", errors.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "getting cwd")
	}

	dir := cwd
	for i := 0; i < maxWalkDepth; i++ {
		for _, name := range []string{"rdbpaging.yaml", "rdbpaging.yml"} {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", nil
}

// DriverName returns the database/sql driver for dialect: database.driver when
// set, otherwise pgx for postgres, mysql for mysql and sqlite for sqlite.
func (c *Config) DriverName(dialect string) (string, error) {
	if c.Database.Driver != "" {
		return c.Database.Driver, nil
	}

	switch strings.ToLower(dialect) {
	case "postgres", "postgresql":
		return "pgx", nil
	case "mysql":
		return "mysql", nil
	case "sqlite", "sqlite3":
		return "sqlite", nil
	}
	return "", errors.Errorf("no database driver for dialect %q, set database.driver", dialect)
}

// DSN returns the database connection string for dialect.
// If database.url is set, it's returned directly. SQLite uses database.path.
// Otherwise, builds a DSN from discrete fields.
func (c *Config) DSN(dialect string) (string, error) {
	db := c.Database

	if db.URL != "" {
		return db.URL, nil
	}

	switch strings.ToLower(dialect) {
	case "sqlite", "sqlite3":
		if db.Path == "" {
			return "", errors.New("database.path is required for sqlite when database.url is not set")
		}
		return db.Path, nil
	case "mysql", "postgres", "postgresql":
	default:
		return "", errors.Errorf("database.url is required for dialect %q", dialect)
	}

	if db.Host == "" {
		return "", errors.New("database.host is required when database.url is not set")
	}
	if db.Name == "" {
		return "", errors.New("database.name is required when database.url is not set")
	}
	if db.User == "" {
		return "", errors.New("database.user is required when database.url is not set")
	}

	if strings.ToLower(dialect) == "mysql" {
		return c.mysqlDSN(), nil
	}
	return c.postgresDSN(), nil
}

func (c *Config) mysqlDSN() string {
	db := c.Database
	port := db.Port
	if port == 0 {
		port = 3306
	}

	mc := mysql.NewConfig()
	mc.User = db.User
	mc.Passwd = db.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(db.Host, strconv.Itoa(port))
	mc.DBName = db.Name
	return mc.FormatDSN()
}

func (c *Config) postgresDSN() string {
	db := c.Database
	port := db.Port
	if port == 0 {
		port = 5432
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(db.Host, strconv.Itoa(port)),
		Path:   "/" + db.Name,
	}

	if db.Password != "" {
		u.User = url.UserPassword(db.User, db.Password)
	} else {
		u.User = url.User(db.User)
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	return u.String()
}

// ResolvedSchema returns the schema path, with the flag value taking
// precedence over the config.
func (c *Config) ResolvedSchema(flag string) string {
	if flag != "" {
		return flag
	}
	return c.Schema
}

// ResolvedDialect returns the dialect name, with the flag value taking
// precedence over the config.
func (c *Config) ResolvedDialect(flag string) string {
	if flag != "" {
		return flag
	}
	return c.Dialect
}
