package config

import (
	"errors"
	"os"
	"time"

	"github.com/Nycles/chat-service/internal/pg"

	"gopkg.in/yaml.v3"
)

type HTTP struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

type Logging struct {
	Env       string `yaml:"env"`       // dev|stage|prod
	Service   string `yaml:"service"`   // chat-service
	Version   string `yaml:"version"`   // v0.1.0
	Backend   string `yaml:"backend"`   // std|zap
	AddSource bool   `yaml:"addSource"` // false|true
	Debug     bool   `yaml:"debug"`     // false|true
}

type Postgres struct {
	DSN               string        `yaml:"dsn"`
	MaxConns          int32         `yaml:"maxConns"`
	MinConns          int32         `yaml:"minConns"`
	MaxConnLifetime   time.Duration `yaml:"maxConnLifetime"`
	MaxConnIdleTime   time.Duration `yaml:"maxConnIdleTime"`
	HealthCheckPeriod time.Duration `yaml:"healthCheckPeriod"`
	ApplicationName   string        `yaml:"applicationName"`
}

func (p Postgres) Validate() error {
	if p.DSN == "" {
		return errors.New("postgres.dsn is required")
	}

	return nil
}

func (p Postgres) ToPGConfig() pg.Config {
	return pg.Config{
		DSN:               p.DSN,
		MaxConns:          p.MaxConns,
		MinConns:          p.MinConns,
		MaxConnLifetime:   p.MaxConnLifetime,
		MaxConnIdleTime:   p.MaxConnIdleTime,
		HealthCheckPeriod: p.HealthCheckPeriod,
		ApplicationName:   p.ApplicationName,
	}
}

type JWT struct {
	Secret    string        `yaml:"secret"`    // общий ключ подписи, обязательно
	Issuer    string        `yaml:"issuer"`    // обязательно
	AccessTTL time.Duration `yaml:"accessTTL"` // напр. 168h
	ClockSkew time.Duration `yaml:"clockSkew"` // напр. 30s
}

func (j JWT) Validate() error {
	if j.Secret == "" {
		return errors.New("security.jwt.secret is required")
	}
	if j.Issuer == "" {
		return errors.New("security.jwt.issuer is required")
	}
	if j.AccessTTL <= 0 {
		return errors.New("security.jwt.accessTTL must be > 0")
	}
	if j.ClockSkew < 0 || j.ClockSkew > time.Minute {
		return errors.New("security.jwt.clockSkew must be in [0..1m]")
	}

	return nil
}

type Password struct {
	MinLength  int `yaml:"minLength"`
	BcryptCost int `yaml:"bcryptCost"`
}

func (p Password) Validate() error {
	if p.MinLength < 4 {
		return errors.New("security.password.minLength must be >= 4")
	}
	if p.BcryptCost != 0 && (p.BcryptCost < 4 || p.BcryptCost > 18) {
		return errors.New("security.password.bcryptCost must be in [4..18]")
	}

	return nil
}

type Security struct {
	JWT      JWT      `yaml:"jwt"`
	Password Password `yaml:"password"`
}

func (s Security) Validate() error {
	if err := s.JWT.Validate(); err != nil {
		return err
	}
	if err := s.Password.Validate(); err != nil {
		return err
	}

	return nil
}

type S3 struct {
	Endpoint      string `yaml:"endpoint"`
	Region        string `yaml:"region"`
	AccessKey     string `yaml:"accessKey"`
	SecretKey     string `yaml:"secretKey"`
	Bucket        string `yaml:"bucket"`
	UseSSL        bool   `yaml:"useSSL"`
	PublicBaseURL string `yaml:"publicBaseURL"`
}

func (s S3) Validate() error {
	if s.Endpoint == "" {
		return errors.New("s3.endpoint is required")
	}
	if s.Bucket == "" {
		return errors.New("s3.bucket is required")
	}

	return nil
}

type Uploads struct {
	MaxSizeBytes int64    `yaml:"maxSizeBytes"` // default 2MB
	AllowedMime  []string `yaml:"allowedMime"`  // default image/jpeg, image/png
}

type Config struct {
	HTTP     HTTP     `yaml:"http"`
	Logging  Logging  `yaml:"logging"`
	Postgres Postgres `yaml:"postgres"`
	Security Security `yaml:"security"`
	S3       S3       `yaml:"s3"`
	Uploads  Uploads  `yaml:"uploads"`
}

func LoadConfig() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		c.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if err := c.Postgres.Validate(); err != nil {
		return err
	}
	if err := c.Security.Validate(); err != nil {
		return err
	}
	if err := c.S3.Validate(); err != nil {
		return err
	}

	// установка дефолтов, если значения не указаны
	if c.Logging.Service == "" {
		c.Logging.Service = "chat-service"
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "dev"
	}
	if c.Logging.Version == "" {
		c.Logging.Version = "v0.1.0"
	}
	if c.Logging.Backend == "" {
		c.Logging.Backend = "std"
	}
	if c.Uploads.MaxSizeBytes <= 0 {
		c.Uploads.MaxSizeBytes = 2 << 20
	}
	if len(c.Uploads.AllowedMime) == 0 {
		c.Uploads.AllowedMime = []string{"image/jpeg", "image/png"}
	}

	return nil
}
