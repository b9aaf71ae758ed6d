package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит всю конфигурацию приложения
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	CORS         CORSConfig
	JWT          JWTConfig
	Email        EmailConfig
	Storage      StorageConfig
	Notification NotificationConfig
	Roles        RolesConfig
	Frontend     FrontendConfig
	Seed         SeedConfig
	PublicURL    string // Публичный адрес API, используется в ссылках из писем
	AppEnv       string // Окружение приложения: development, production, etc.
}

// ServerConfig хранит конфигурацию сервера
type ServerConfig struct {
	Host string
	Port string
}

// DatabaseConfig хранит конфигурацию базы данных
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int           // Максимальное количество открытых соединений
	MaxIdleConns    int           // Максимальное количество неактивных соединений
	ConnMaxLifetime time.Duration // Максимальное время жизни соединения
	ConnMaxIdleTime time.Duration // Максимальное время простоя соединения
	AutoMigrate     bool          // Применять миграции при старте сервера
}

// CORSConfig хранит настройки Cross-Origin Resource Sharing
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// JWTConfig хранит настройки выпуска access/refresh токенов
type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	Issuer        string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// EmailConfig хранит настройки отправки писем.
// Provider: smtp (по умолчанию) или sendgrid.
type EmailConfig struct {
	Provider        string
	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	SMTPImplicitTLS bool // SSL сразу при подключении (порт 465)
	SendGridAPIKey  string
	FromEmail       string
	FromName        string
	// VerificationTTL — время жизни токена подтверждения email
	VerificationTTL time.Duration
	// VerificationMaxAttempts — сколько раз можно ошибиться токеном
	VerificationMaxAttempts int
}

// StorageConfig хранит настройки S3-совместимого хранилища картинок курсов
type StorageConfig struct {
	Bucket          string
	Region          string
	Endpoint        string // Для S3-совместимых хранилищ (MinIO и т.п.), пусто для AWS
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// NotificationConfig хранит настройки напоминаний о старте курсов
type NotificationConfig struct {
	Enabled      bool
	Days         []int  // За сколько дней до старта напоминать
	Hour         int    // Час отправки (UTC)
	Minute       int    // Минута отправки
	CronSpec     string // Расписание ежедневного запуска планировщика
	RunOnStart   bool
	PollInterval time.Duration
	BatchSize    int
	Concurrency  int
	MaxAttempts  int
	RetryBackoff time.Duration
	LeaseTimeout time.Duration // Через сколько зависшая в processing задача забирается повторно
}

// RolesConfig хранит имена ролей
type RolesConfig struct {
	Admin string
	User  string
}

// FrontendConfig хранит адреса фронтенда для редиректов
type FrontendConfig struct {
	BaseURL           string
	EmailVerifiedPath string
}

// SeedConfig хранит настройки начального наполнения БД
type SeedConfig struct {
	Enabled       bool
	AdminEmail    string
	AdminUsername string
	AdminPassword string
}

// DSN возвращает строку подключения к базе данных
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Address возвращает адрес сервера (host:port)
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// EmailVerifiedURL возвращает адрес страницы фронтенда, куда ведёт ссылка подтверждения email.
func (f *FrontendConfig) EmailVerifiedURL() string {
	return strings.TrimRight(f.BaseURL, "/") + "/" + strings.TrimLeft(f.EmailVerifiedPath, "/")
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Загружаем .env файл (если существует)
	// В production переменные окружения должны быть установлены напрямую
	_ = godotenv.Load()

	cfg := &Config{}

	// Загружаем конфигурацию сервера
	cfg.Server.Host = getEnv("SERVER_HOST", "localhost")
	cfg.Server.Port = getEnv("SERVER_PORT", "8080")

	// Загружаем конфигурацию базы данных
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnv("DB_PORT", "5432")
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "")
	cfg.Database.DBName = getEnv("DB_NAME", "course_platform")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")

	// Загружаем настройки пула соединений
	cfg.Database.MaxOpenConns = getEnvAsInt("DB_MAX_OPEN_CONNS", 25)
	cfg.Database.MaxIdleConns = getEnvAsInt("DB_MAX_IDLE_CONNS", 5)
	cfg.Database.ConnMaxLifetime = getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	cfg.Database.ConnMaxIdleTime = getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", 10*time.Minute)
	cfg.Database.AutoMigrate = getEnvAsBool("DB_AUTO_MIGRATE", true)

	// CORS
	cfg.CORS.AllowedOrigins = getEnvAsSlice("CORS_ALLOWED_ORIGINS", nil)
	cfg.CORS.AllowedMethods = getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	cfg.CORS.AllowedHeaders = getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Authorization"})
	cfg.CORS.ExposedHeaders = getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length"})
	cfg.CORS.AllowCredentials = getEnvAsBool("CORS_ALLOW_CREDENTIALS", false)
	cfg.CORS.MaxAge = getEnvAsDuration("CORS_MAX_AGE", 12*time.Hour)

	// JWT
	cfg.JWT.AccessSecret = getEnv("JWT_ACCESS_SECRET", "")
	cfg.JWT.RefreshSecret = getEnv("JWT_REFRESH_SECRET", "")
	cfg.JWT.Issuer = getEnv("JWT_ISSUER", "course-platform")
	cfg.JWT.AccessTTL = getEnvAsDuration("JWT_ACCESS_TTL", 15*time.Minute)
	cfg.JWT.RefreshTTL = getEnvAsDuration("JWT_REFRESH_TTL", 30*24*time.Hour)

	// Почта
	cfg.Email.Provider = strings.ToLower(getEnv("EMAIL_PROVIDER", "smtp"))
	cfg.Email.SMTPHost = getEnv("SMTP_HOST", "localhost")
	cfg.Email.SMTPPort = getEnvAsInt("SMTP_PORT", 465)
	cfg.Email.SMTPUsername = getEnv("SMTP_USERNAME", "")
	cfg.Email.SMTPPassword = getEnv("SMTP_PASSWORD", "")
	cfg.Email.SMTPImplicitTLS = getEnvAsBool("SMTP_IMPLICIT_TLS", true)
	cfg.Email.SendGridAPIKey = getEnv("SENDGRID_API_KEY", "")
	cfg.Email.FromEmail = getEnv("EMAIL_FROM", "no-reply@course-platform.local")
	cfg.Email.FromName = getEnv("EMAIL_FROM_NAME", "Course Platform")
	cfg.Email.VerificationTTL = getEnvAsDuration("EMAIL_VERIFICATION_TTL", 24*time.Hour)
	cfg.Email.VerificationMaxAttempts = getEnvAsInt("EMAIL_VERIFICATION_MAX_ATTEMPTS", 5)

	// Хранилище картинок
	cfg.Storage.Bucket = getEnv("S3_BUCKET", "")
	cfg.Storage.Region = getEnv("S3_REGION", "eu-central-1")
	cfg.Storage.Endpoint = getEnv("S3_ENDPOINT", "")
	cfg.Storage.AccessKeyID = getEnv("S3_ACCESS_KEY_ID", "")
	cfg.Storage.SecretAccessKey = getEnv("S3_SECRET_ACCESS_KEY", "")
	cfg.Storage.UsePathStyle = getEnvAsBool("S3_USE_PATH_STYLE", false)

	// Напоминания о старте курсов
	cfg.Notification.Enabled = getEnvAsBool("NOTIFY_ENABLED", true)
	cfg.Notification.Days = getEnvAsIntSlice("NOTIFY_DAYS", []int{7, 3, 1})
	cfg.Notification.Hour = getEnvAsInt("NOTIFY_HOUR", 17)
	cfg.Notification.Minute = getEnvAsInt("NOTIFY_MINUTE", 48)
	cfg.Notification.CronSpec = getEnv("NOTIFY_CRON", "@daily")
	cfg.Notification.RunOnStart = getEnvAsBool("NOTIFY_RUN_ON_START", false)
	cfg.Notification.PollInterval = getEnvAsDuration("NOTIFY_WORKER_POLL_INTERVAL", 30*time.Second)
	cfg.Notification.BatchSize = getEnvAsInt("NOTIFY_WORKER_BATCH", 50)
	cfg.Notification.Concurrency = getEnvAsInt("NOTIFY_WORKER_CONCURRENCY", 4)
	cfg.Notification.MaxAttempts = getEnvAsInt("NOTIFY_WORKER_MAX_ATTEMPTS", 5)
	cfg.Notification.RetryBackoff = getEnvAsDuration("NOTIFY_WORKER_RETRY_BACKOFF", time.Minute)
	cfg.Notification.LeaseTimeout = getEnvAsDuration("NOTIFY_WORKER_LEASE_TIMEOUT", 10*time.Minute)

	// Роли
	cfg.Roles.Admin = getEnv("ROLE_ADMIN", "Admin")
	cfg.Roles.User = getEnv("ROLE_USER", "User")

	// Фронтенд
	cfg.Frontend.BaseURL = getEnv("FRONTEND_URL", "http://localhost:5173")
	cfg.Frontend.EmailVerifiedPath = getEnv("FRONTEND_EMAIL_VERIFIED_PATH", "/email-verified")

	// Начальное наполнение
	cfg.Seed.Enabled = getEnvAsBool("SEED_ENABLED", true)
	cfg.Seed.AdminEmail = getEnv("SEED_ADMIN_EMAIL", "")
	cfg.Seed.AdminUsername = getEnv("SEED_ADMIN_USERNAME", "admin")
	cfg.Seed.AdminPassword = getEnv("SEED_ADMIN_PASSWORD", "")

	// Загружаем окружение приложения
	cfg.AppEnv = getEnv("APP_ENV", "development")
	cfg.PublicURL = getEnv("PUBLIC_URL", "http://"+cfg.Server.Address())

	// Валидируем конфигурацию
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("ошибка валидации конфигурации: %w", err)
	}

	return cfg, nil
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return fmt.Errorf("SERVER_HOST не может быть пустым")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT не может быть пустым")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST не может быть пустым")
	}
	if c.Database.User == "" {
		return fmt.Errorf("DB_USER не может быть пустым")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("DB_NAME не может быть пустым")
	}
	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET и JWT_REFRESH_SECRET должны быть заданы")
	}
	if c.Roles.Admin == "" || c.Roles.User == "" {
		return fmt.Errorf("ROLE_ADMIN и ROLE_USER не могут быть пустыми")
	}
	if strings.EqualFold(c.Roles.Admin, c.Roles.User) {
		return fmt.Errorf("ROLE_ADMIN и ROLE_USER должны различаться")
	}
	switch c.Email.Provider {
	case "smtp":
	case "sendgrid":
		if c.Email.SendGridAPIKey == "" {
			return fmt.Errorf("SENDGRID_API_KEY обязателен для EMAIL_PROVIDER=sendgrid")
		}
	default:
		return fmt.Errorf("неизвестный EMAIL_PROVIDER: %s", c.Email.Provider)
	}
	if c.Notification.Hour < 0 || c.Notification.Hour > 23 {
		return fmt.Errorf("NOTIFY_HOUR должен быть в диапазоне 0..23")
	}
	if c.Notification.Minute < 0 || c.Notification.Minute > 59 {
		return fmt.Errorf("NOTIFY_MINUTE должен быть в диапазоне 0..59")
	}
	for _, d := range c.Notification.Days {
		if d <= 0 {
			return fmt.Errorf("NOTIFY_DAYS должны быть положительными, получено %d", d)
		}
	}
	if c.Notification.Concurrency <= 0 || c.Notification.BatchSize <= 0 {
		return fmt.Errorf("NOTIFY_WORKER_CONCURRENCY и NOTIFY_WORKER_BATCH должны быть положительными")
	}
	return nil
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt получает переменную окружения как int или возвращает значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvAsBool получает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

// getEnvAsDuration получает переменную окружения как time.Duration или возвращает значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

// getEnvAsSlice разбирает список через запятую
func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

// getEnvAsIntSlice разбирает список целых чисел через запятую.
// При любой ошибке разбора возвращается значение по умолчанию.
func getEnvAsIntSlice(key string, defaultValue []int) []int {
	parts := getEnvAsSlice(key, nil)
	if len(parts) == 0 {
		return defaultValue
	}
	result := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return defaultValue
		}
		result = append(result, n)
	}
	return result
}
