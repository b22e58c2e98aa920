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
	CORS          CORSConfig
	Storage       StorageConfig
	Media         MediaConfig
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
	Env          string `envconfig:"ACADEMYCMS_APP_ENV" required:"true"`
	Port         string `envconfig:"ACADEMYCMS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ACADEMYCMS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ACADEMYCMS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ACADEMYCMS_DB_DSN"`
	Driver string `envconfig:"ACADEMYCMS_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"ACADEMYCMS_DB_HOST"`
	Port     int    `envconfig:"ACADEMYCMS_DB_PORT" default:"5432"`
	User     string `envconfig:"ACADEMYCMS_DB_USER"`
	Password string `envconfig:"ACADEMYCMS_DB_PASSWORD"`
	Name     string `envconfig:"ACADEMYCMS_DB_NAME"`
	SSLMode  string `envconfig:"ACADEMYCMS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ACADEMYCMS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ACADEMYCMS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ACADEMYCMS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ACADEMYCMS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ACADEMYCMS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ACADEMYCMS_REDIS_ADDR"`
	Password     string        `envconfig:"ACADEMYCMS_REDIS_PASSWORD"`
	DB           int           `envconfig:"ACADEMYCMS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ACADEMYCMS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ACADEMYCMS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ACADEMYCMS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ACADEMYCMS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ACADEMYCMS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"ACADEMYCMS_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"ACADEMYCMS_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"ACADEMYCMS_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"ACADEMYCMS_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ACADEMYCMS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ACADEMYCMS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ACADEMYCMS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ACADEMYCMS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ACADEMYCMS_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"ACADEMYCMS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"ACADEMYCMS_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"ACADEMYCMS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ACADEMYCMS_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"ACADEMYCMS_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type StorageConfig struct {
	Bucket                 string `envconfig:"ACADEMYCMS_STORAGE_BUCKET" required:"true"`
	PublicBaseURL          string `envconfig:"ACADEMYCMS_STORAGE_PUBLIC_BASE_URL"`
	CredentialsJSON        string `envconfig:"ACADEMYCMS_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"ACADEMYCMS_GOOGLE_APPLICATION_CREDENTIALS"`
}

type MediaConfig struct {
	MaxUploadMB   int    `envconfig:"ACADEMYCMS_MEDIA_MAX_UPLOAD_MB" default:"25"`
	DefaultFolder string `envconfig:"ACADEMYCMS_MEDIA_DEFAULT_FOLDER" default:"site-assets"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
