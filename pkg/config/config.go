package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Site          SiteConfig
	Media         MediaConfig
	CORS          CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PLAINDES_APP_ENV" required:"true"`
	Port         string `envconfig:"PLAINDES_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PLAINDES_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PLAINDES_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PLAINDES_DB_DSN"`
	Driver string `envconfig:"PLAINDES_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PLAINDES_DB_HOST"`
	LegacyPort     int    `envconfig:"PLAINDES_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PLAINDES_DB_USER"`
	LegacyPassword string `envconfig:"PLAINDES_DB_PASSWORD"`
	LegacyName     string `envconfig:"PLAINDES_DB_NAME"`
	LegacySSLMode  string `envconfig:"PLAINDES_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PLAINDES_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PLAINDES_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PLAINDES_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PLAINDES_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PLAINDES_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PLAINDES_REDIS_ADDR"`
	Password     string        `envconfig:"PLAINDES_REDIS_PASSWORD"`
	DB           int           `envconfig:"PLAINDES_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PLAINDES_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PLAINDES_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PLAINDES_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PLAINDES_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PLAINDES_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"PLAINDES_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"PLAINDES_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"PLAINDES_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// AccessTokenTTL returns the configured token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	MinLength        int `envconfig:"PLAINDES_PASSWORD_MIN_LENGTH" default:"6"`
	ArgonMemoryKB    int `envconfig:"PLAINDES_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PLAINDES_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PLAINDES_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PLAINDES_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PLAINDES_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"PLAINDES_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"PLAINDES_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"PLAINDES_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"PLAINDES_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"PLAINDES_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"PLAINDES_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"PLAINDES_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"PLAINDES_AUTO_MIGRATE" default:"false"`
}

type SiteConfig struct {
	DefaultKey string `envconfig:"PLAINDES_SITE_KEY" default:"main"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"PLAINDES_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type MediaConfig struct {
	UploadDir      string `envconfig:"PLAINDES_MEDIA_UPLOAD_DIR" default:"./uploads"`
	PublicBaseURL  string `envconfig:"PLAINDES_MEDIA_PUBLIC_BASE_URL" default:"/uploads"`
	MaxUploadBytes int64  `envconfig:"PLAINDES_MEDIA_MAX_UPLOAD_BYTES" default:"10485760"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
