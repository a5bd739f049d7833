package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Database   Database   `mapstructure:",squash"`
	Meta       Meta       `mapstructure:",squash"`
	Render     Render     `mapstructure:",squash"`
	Auth       Auth       `mapstructure:",squash"`
	MetricSync MetricSync `mapstructure:",squash"`
	KPIWarmup  KPIWarmup  `mapstructure:",squash"`
	KPI        KPI        `mapstructure:",squash"`
	Redis      Redis      `mapstructure:",squash"`
	Report     Report     `mapstructure:",squash"`
	SecretKey  string     `mapstructure:"secret_key"`
}

type Server struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"server_shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN           string `mapstructure:"-"`
	Driver        string `mapstructure:"database_driver"`
	Password      string `mapstructure:"database_password"`
	URL           string `mapstructure:"database_url"`
	User          string `mapstructure:"database_user"`
	RunMigrations bool   `mapstructure:"database_run_migrations"`
}

type Meta struct {
	BaseURL        string        `mapstructure:"meta_base_url"`
	URL            string        `mapstructure:"meta_url"`
	Version        string        `mapstructure:"meta_version"`
	AccessToken    string        `mapstructure:"meta_access_token"`
	RequestsPerSec float64       `mapstructure:"meta_requests_per_second"`
	MaxRetries     int           `mapstructure:"meta_max_retries"`
	RetryWait      time.Duration `mapstructure:"meta_retry_wait"`
	Timeout        time.Duration `mapstructure:"meta_timeout"`
	SyncBatchDays  int           `mapstructure:"meta_sync_batch_days"`
	Breakdowns     []string      `mapstructure:"meta_breakdowns"`
}

type Render struct {
	APIKey    string `mapstructure:"render_api_key"`
	ServiceID string `mapstructure:"render_service_id"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	TokenTTL time.Duration `mapstructure:"auth_token_ttl"`
}

type MetricSync struct {
	CronSchedule      string `mapstructure:"metric_sync_cron"`
	LookbackDays      int    `mapstructure:"metric_sync_lookback_days"`
	MaxConcurrentJobs int    `mapstructure:"metric_sync_max_concurrent_jobs"`
	Enabled           bool   `mapstructure:"metric_sync_enabled"`
}

type KPIWarmup struct {
	CronSchedule string `mapstructure:"kpi_warmup_cron"`
	Days         int    `mapstructure:"kpi_warmup_days"`
	Enabled      bool   `mapstructure:"kpi_warmup_enabled"`
}

// KPI guarda as listas de precedência usadas pelo resolvedor de conversões
type KPI struct {
	PrimaryActions  []string `mapstructure:"kpi_primary_actions"`
	FallbackActions []string `mapstructure:"kpi_fallback_actions"`
	RevenueActions  []string `mapstructure:"kpi_revenue_actions"`
	DefaultDays     int      `mapstructure:"kpi_default_days"`
	MaxDays         int      `mapstructure:"kpi_max_days"`
}

type Redis struct {
	Enabled bool          `mapstructure:"redis_enabled"`
	URL     string        `mapstructure:"redis_url"`
	TTL     time.Duration `mapstructure:"redis_kpi_ttl"`
}

type Report struct {
	S3Enabled    bool   `mapstructure:"report_s3_enabled"`
	Bucket       string `mapstructure:"report_s3_bucket"`
	Region       string `mapstructure:"report_s3_region"`
	Endpoint     string `mapstructure:"report_s3_endpoint"`
	UsePathStyle bool   `mapstructure:"report_s3_use_path_style"`
	PublicURL    string `mapstructure:"report_public_url"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "15s")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:4001"})

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/traffic_kpi?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "")
	viper.SetDefault("DATABASE_RUN_MIGRATIONS", true)

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_ACCESS_TOKEN", "")
	viper.SetDefault("META_REQUESTS_PER_SECOND", 2.0)
	viper.SetDefault("META_MAX_RETRIES", 3)
	viper.SetDefault("META_RETRY_WAIT", "10s")
	viper.SetDefault("META_TIMEOUT", "60s")
	viper.SetDefault("META_SYNC_BATCH_DAYS", 7)
	viper.SetDefault("META_BREAKDOWNS", []string{
		"age", "gender", "age_gender", "country", "device_platform", "publisher_platform", "impression_device",
	})

	viper.SetDefault("SECRET_KEY", "")
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")

	viper.SetDefault("RENDER_API_KEY", "")
	viper.SetDefault("RENDER_SERVICE_ID", "")

	// Sincronização das métricas da Meta
	viper.SetDefault("METRIC_SYNC_CRON", "0 3 * * *")      // Todos os dias às 3h da manhã
	viper.SetDefault("METRIC_SYNC_LOOKBACK_DAYS", 3)       // Meta ainda ajusta atribuições dos últimos dias
	viper.SetDefault("METRIC_SYNC_MAX_CONCURRENT_JOBS", 3) // 3 contas em paralelo
	viper.SetDefault("METRIC_SYNC_ENABLED", false)

	// Pré-cálculo dos KPIs em cache
	viper.SetDefault("KPI_WARMUP_CRON", "30 4 * * *")
	viper.SetDefault("KPI_WARMUP_DAYS", 7)
	viper.SetDefault("KPI_WARMUP_ENABLED", false)

	viper.SetDefault("KPI_PRIMARY_ACTIONS", []string{
		"onsite_conversion.messaging_conversation_started_7d",
		"onsite_conversion.total_messaging_connection",
		"onsite_conversion.messaging_first_reply",
		"offsite_conversion.fb_pixel_lead",
		"lead",
		"omni_purchase",
	})
	viper.SetDefault("KPI_FALLBACK_ACTIONS", []string{
		"action.conversion",
		"lead_generation",
		"onsite_conversion.lead",
	})
	viper.SetDefault("KPI_REVENUE_ACTIONS", []string{
		"omni_purchase",
		"purchase",
		"offsite_conversion.fb_pixel_purchase",
	})
	viper.SetDefault("KPI_DEFAULT_DAYS", 7)
	viper.SetDefault("KPI_MAX_DAYS", 90)

	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("REDIS_KPI_TTL", "10m")

	viper.SetDefault("REPORT_S3_ENABLED", false)
	viper.SetDefault("REPORT_S3_BUCKET", "")
	viper.SetDefault("REPORT_S3_REGION", "us-east-1")
	viper.SetDefault("REPORT_S3_ENDPOINT", "")
	viper.SetDefault("REPORT_S3_USE_PATH_STYLE", false)
	viper.SetDefault("REPORT_PUBLIC_URL", "")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

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

	if config.Render.ServiceID != "" {
		secrets, err := NewRenderClient(config).ListSecrets(context.Background(), config.Render.ServiceID)
		if err != nil {
			logrus.Error("Erro ao obter secrets do Render:", err)
			return nil, err
		}
		applySecrets(config, secrets)
	}

	finalize(config)

	return config, nil
}

// applySecrets só preenche o que não veio do ambiente
func applySecrets(config *Config, secrets map[string]string) {
	if token, ok := secrets["meta_access_token"]; ok && config.Meta.AccessToken == "" {
		config.Meta.AccessToken = strings.TrimSpace(token)
	}
	if secretKey, ok := secrets["secret_key"]; ok && config.SecretKey == "" {
		config.SecretKey = strings.TrimSpace(secretKey)
	}
	if password, ok := secrets["database_password"]; ok && config.Database.Password == "" {
		config.Database.Password = strings.TrimSpace(password)
	}
}

func finalize(config *Config) {
	config.Meta.URL = fmt.Sprintf("%s/%s", strings.TrimRight(config.Meta.BaseURL, "/"), config.Meta.Version)
	config.Meta.Breakdowns = trimAll(config.Meta.Breakdowns)
	config.KPI.PrimaryActions = trimAll(config.KPI.PrimaryActions)
	config.KPI.FallbackActions = trimAll(config.KPI.FallbackActions)
	config.KPI.RevenueActions = trimAll(config.KPI.RevenueActions)

	if config.KPI.MaxDays <= 0 {
		config.KPI.MaxDays = 90
	}
	if config.KPI.DefaultDays <= 0 || config.KPI.DefaultDays > config.KPI.MaxDays {
		config.KPI.DefaultDays = 7
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)
}

func trimAll(values []string) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			result = append(result, value)
		}
	}
	return result
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
