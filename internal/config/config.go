package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Redis        Redis        `mapstructure:",squash"`
	Meta         Meta         `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	SnapshotSync SnapshotSync `mapstructure:",squash"`
	SecretKey    string       `mapstructure:"secret_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Redis struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

type Meta struct {
	BaseURL        string    `mapstructure:"meta_base_url"`
	URL            string    `mapstructure:"meta_url"`
	Version        string    `mapstructure:"meta_version"`
	AccessToken    string    `mapstructure:"meta_access_token"`
	AppID          string    `mapstructure:"meta_app_id"`
	AppSecret      string    `mapstructure:"meta_app_secret"`
	LongLivedToken string    `mapstructure:"meta_long_lived_token"`
	TokenExpiresAt time.Time `mapstructure:"-"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// SnapshotSync parametriza o poll de snapshots e o cache. PollInterval é o
// passo do scheduler; CacheTTL é a validade de uma entrada no Redis;
// ConsumerWindow é o tempo sem consumo de uma chave após o qual o poll
// deixa de renová-la.
type SnapshotSync struct {
	PollInterval   time.Duration `mapstructure:"snapshot_sync_poll_interval"`
	CacheTTL       time.Duration `mapstructure:"snapshot_cache_ttl"`
	ConsumerWindow time.Duration `mapstructure:"snapshot_sync_consumer_window"`
	Enabled        bool          `mapstructure:"snapshot_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/adsmanager")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_URL", "https://graph.facebook.com/v22.0")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_APP_ID", "your_app_id")
	viper.SetDefault("META_APP_SECRET", "your_app_secret")
	viper.SetDefault("META_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	// Defaults do poll de snapshots
	viper.SetDefault("SNAPSHOT_SYNC_POLL_INTERVAL", "15s")  // Passo do scheduler
	viper.SetDefault("SNAPSHOT_CACHE_TTL", "5m")            // Validade do cache
	viper.SetDefault("SNAPSHOT_SYNC_CONSUMER_WINDOW", "2m") // Janela sem consumo antes de parar de renovar
	viper.SetDefault("SNAPSHOT_SYNC_ENABLED", true)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
