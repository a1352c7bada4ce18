package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string
	BaseURL string

	SecretKey     []byte
	BcryptCost    int
	ResetTokenTTL time.Duration

	SessionTTL  time.Duration
	RememberTTL time.Duration

	PostsPerPage int
	AvatarDir    string

	MailFrom     string
	SMTPAddr     string
	SMTPUser     string
	SMTPPassword string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads configuration from the environment (optionally seeded from a
// .env file) and returns it as an explicit struct. Callers pass the struct,
// or the relevant pieces of it, into constructors; there is no package-level
// configuration state.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		APIPort:       getEnv("API_PORT", "8080"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:8080"),
		SecretKey:     []byte(getEnv("SECRET_KEY", "defaultsecret")),
		BcryptCost:    getEnvAsInt("BCRYPT_COST", 0), // 0 means bcrypt.DefaultCost
		ResetTokenTTL: time.Duration(getEnvAsInt("RESET_TOKEN_TTL_MINUTES", 30)) * time.Minute,
		SessionTTL:    time.Duration(getEnvAsInt("SESSION_TTL_HOURS", 6)) * time.Hour,
		RememberTTL:   time.Duration(getEnvAsInt("REMEMBER_TTL_HOURS", 24*30)) * time.Hour,
		PostsPerPage:  getEnvAsInt("POSTS_PER_PAGE", 5),
		AvatarDir:     getEnv("AVATAR_DIR", "static/profilepics"),
		MailFrom:      getEnv("MAIL_FROM", "no-reply@inkwell.local"),
		SMTPAddr:      getEnv("SMTP_ADDR", ""),
		SMTPUser:      getEnv("SMTP_USER", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "user"),
		DBPassword:    getEnv("DB_PASSWORD", "password"),
		DBName:        getEnv("DB_NAME", "inkwell_db"),
		DBSslMode:     getEnv("DB_SSLMODE", "disable"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
	}

	cfg.DBConnStr = "host=" + cfg.DBHost +
		" port=" + cfg.DBPort +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" sslmode=" + cfg.DBSslMode

	return cfg
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
