package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env           string              `yaml:"env" env:"ENV" env-default:"local"`
	DSN           string              `yaml:"dsn" env:"DATABASE_URL" env-required:"true"`
	TokenSecret   string              `yaml:"token_secret" env:"SECRET_KEY" env-required:"true"`
	TokenTTL      time.Duration       `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"30m"`
	PublicBaseURL string              `yaml:"public_base_url" env:"API_BASE_URL" env-default:"http://localhost:8000"`
	HTTP          HTTPConfig          `yaml:"http"`
	ObjectStorage ObjectStorageConfig `yaml:"object_storage"`
	Redis         RedisConf           `yaml:"redis"`
	CORS          CORSConfig          `yaml:"cors"`
	PasswordGate  PasswordGateConfig  `yaml:"password_gate"`
}

type HTTPConfig struct {
	Host      string `yaml:"host" env:"HTTP_HOST"`
	Port      string `yaml:"port" env:"HTTP_PORT" env-default:"8000"`
	BodyLimit string `yaml:"body_limit" env:"HTTP_BODY_LIMIT" env-default:"50M"`
}

// ObjectStorageConfig описывает хранилище фотографий.
// Driver "minio" используется в dev/prod, "local" пишет файлы в BaseDir.
type ObjectStorageConfig struct {
	Driver    string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"minio"`
	Endpoint  string `yaml:"endpoint" env:"MINIO_ENDPOINT" env-default:"localhost:9000"`
	AccessKey string `yaml:"access_key" env:"MINIO_ROOT_USER" env-default:"minioadmin"`
	SecretKey string `yaml:"secret_key" env:"MINIO_ROOT_PASSWORD" env-default:"minioadmin"`
	Bucket    string `yaml:"bucket" env:"MINIO_BUCKET_NAME" env-default:"yougallery"`
	Secure    bool   `yaml:"secure" env:"MINIO_SECURE" env-default:"false"`
	BaseDir   string `yaml:"base_dir" env:"STORAGE_BASE_DIR" env-default:"./uploads"`
}

type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"REDIS_DB" env-default:"0"`
}

type CORSConfig struct {
	Origins   []string `yaml:"origins" env:"CORS_ORIGINS" env-separator:"," env-default:"http://localhost:3000,http://127.0.0.1:3000"`
	TunnelURL string   `yaml:"tunnel_url" env:"NGROK_URL"`
}

// PasswordGateConfig управляет проверкой пароля на публичных эндпоинтах.
// При Enforce=false пароль проверяется только через check-password.
type PasswordGateConfig struct {
	Enforce       bool   `yaml:"enforce" env:"PASSWORD_GATE_ENFORCE" env-default:"false"`
	SessionSecret string `yaml:"session_secret" env:"SESSION_SECRET"`
}

// AllowedOrigins возвращает список origin для CORS.
// Адрес туннеля добавляется в вариантах http и https.
func (c *Config) AllowedOrigins() []string {
	seen := make(map[string]struct{}, len(c.CORS.Origins)+2)
	origins := make([]string, 0, len(c.CORS.Origins)+2)

	add := func(origin string) {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin == "" {
			return
		}
		if _, ok := seen[origin]; ok {
			return
		}
		seen[origin] = struct{}{}
		origins = append(origins, origin)
	}

	for _, o := range c.CORS.Origins {
		add(o)
	}

	if tunnel := strings.TrimSpace(c.CORS.TunnelURL); tunnel != "" {
		host := strings.TrimPrefix(strings.TrimPrefix(tunnel, "https://"), "http://")
		add("http://" + host)
		add("https://" + host)
	}

	return origins
}

// SessionKey возвращает ключ подписи cookie сессии.
func (c *Config) SessionKey() []byte {
	if c.PasswordGate.SessionSecret != "" {
		return []byte(c.PasswordGate.SessionSecret)
	}

	return []byte(c.TokenSecret)
}

func MustLoad() *Config {
	// .env is optional
	_ = godotenv.Load()

	path := fetchConfigPath()
	if path == "" {
		return MustLoadEnv()
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

func MustLoadEnv() *Config {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic("cannot read config from env: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
