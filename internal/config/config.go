package config

import (
	"log"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Env        string
	HTTPServer HTTPServer
	Database   Database
	Storage    Storage
	Upload     Upload
	Redis      Redis
	Prometheus Prometheus
}

type HTTPServer struct {
	Address string
	Port    int
}

type Database struct {
	Username       string
	Password       string
	Host           string
	Port           string
	DbName         string
	MigrationsPath string
}

type Storage struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
	UseSSL        bool
}

type Upload struct {
	MaxFileSize int64
	MaxFiles    int
	Concurrency int
}

type Redis struct {
	Address  string
	Port     int
	Password string
	DB       int
	PoolSize int
}

type Prometheus struct {
	Address string
	Port    int
}

func MustLoad() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")

	viper.SetDefault("env", "dev")

	viper.SetDefault("http_server.address", "0.0.0.0")
	viper.SetDefault("http_server.port", 8082)

	viper.SetDefault("database.username", "postgres")
	viper.SetDefault("database.password", "admin")
	viper.SetDefault("database.host", "gallery-db")
	viper.SetDefault("database.port", "5432")
	viper.SetDefault("database.db_name", "galleryservice")
	viper.SetDefault("database.migrations_path", "migrations")

	viper.SetDefault("storage.endpoint", "minio:9000")
	viper.SetDefault("storage.access_key", "minioadmin")
	viper.SetDefault("storage.secret_key", "minioadmin")
	viper.SetDefault("storage.bucket", "images")
	viper.SetDefault("storage.public_base_url", "http://minio:9000")
	viper.SetDefault("storage.use_ssl", false)

	viper.SetDefault("upload.max_file_size", 6*1024*1024)
	viper.SetDefault("upload.max_files", 10)
	viper.SetDefault("upload.concurrency", 4)

	viper.SetDefault("redis.address", "redis")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.pool_size", 10)

	viper.SetDefault("prometheus.address", "0.0.0.0")
	viper.SetDefault("prometheus.port", 9104)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Error reading config file: %s", err)
		os.Exit(1)
	}

	config := &Config{
		Env: viper.GetString("env"),
		HTTPServer: HTTPServer{
			Address: viper.GetString("http_server.address"),
			Port:    viper.GetInt("http_server.port"),
		},
		Database: Database{
			Username:       viper.GetString("database.username"),
			Password:       viper.GetString("database.password"),
			Host:           viper.GetString("database.host"),
			Port:           viper.GetString("database.port"),
			DbName:         viper.GetString("database.db_name"),
			MigrationsPath: viper.GetString("database.migrations_path"),
		},
		Storage: Storage{
			Endpoint:      viper.GetString("storage.endpoint"),
			AccessKey:     viper.GetString("storage.access_key"),
			SecretKey:     viper.GetString("storage.secret_key"),
			Bucket:        viper.GetString("storage.bucket"),
			PublicBaseURL: viper.GetString("storage.public_base_url"),
			UseSSL:        viper.GetBool("storage.use_ssl"),
		},
		Upload: Upload{
			MaxFileSize: viper.GetInt64("upload.max_file_size"),
			MaxFiles:    viper.GetInt("upload.max_files"),
			Concurrency: viper.GetInt("upload.concurrency"),
		},
		Redis: Redis{
			Address:  viper.GetString("redis.address"),
			Port:     viper.GetInt("redis.port"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
			PoolSize: viper.GetInt("redis.pool_size"),
		},
		Prometheus: Prometheus{
			Address: viper.GetString("prometheus.address"),
			Port:    viper.GetInt("prometheus.port"),
		},
	}

	return config
}
