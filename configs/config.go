// =====================================================================
// ⚙️ КОНФИГУРАЦИЯ ПРИЛОЖЕНИЯ - Управление настройками системы
// =====================================================================
//
// Этот файл содержит всю конфигурацию для tender-sniper.
// Следует принципам 12-factor app:
// 1. Конфигурация хранится в переменных окружения
// 2. Строгое разделение между кодом и конфигурацией
// 3. Дефолтные значения для development окружения
// 4. Валидация критически важных настроек
//
// TODO: При расширении функциональности добавить:
// - Конфигурацию для нескольких портальных площадок одновременно
// - Настройки для нескольких LLM провайдеров с fallback-цепочкой

package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// =====================================================================
// 📊 ОСНОВНАЯ СТРУКТУРА КОНФИГУРАЦИИ
// =====================================================================

// Config содержит всю конфигурацию приложения
type Config struct {
	// 🖥️ Настройки HTTP сервера
	Server ServerConfig `mapstructure:"server" validate:"required"`

	// 🗃️ Настройки базы данных
	Database DatabaseConfig `mapstructure:"database" validate:"required"`

	// 🤖 Настройки AI интеграции (LLM collaborator)
	AI AIConfig `mapstructure:"ai" validate:"required"`

	// 🕷️ Настройки доступа к порталу закупок
	Portal PortalConfig `mapstructure:"portal" validate:"required"`

	// 📝 Настройки логирования
	Logging LoggingConfig `mapstructure:"logging" validate:"required"`

	// 🎯 Бизнес-логика настройки (квоты, интервалы, тиры)
	Business BusinessConfig `mapstructure:"business" validate:"required"`

	// 📨 Настройки доставки уведомлений (chat collaborator)
	Notify NotifyConfig `mapstructure:"notify" validate:"required"`

	// 📊 Настройки мониторинга / health
	Monitoring MonitoringConfig `mapstructure:"monitoring" validate:"required"`
}

// =====================================================================
// 🖥️ КОНФИГУРАЦИЯ HTTP СЕРВЕРА
// =====================================================================

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Host string `mapstructure:"host" validate:"required" default:"0.0.0.0"`
	Port int    `mapstructure:"port" validate:"required,min=1,max=65535" default:"8080"`

	ReadTimeout     time.Duration `mapstructure:"read_timeout" default:"30s"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" default:"30s"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" default:"10s"`

	Mode string `mapstructure:"mode" validate:"oneof=debug release test" default:"debug"`
}

// GetAddress возвращает полный адрес сервера
func (s ServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// =====================================================================
// 🗃️ КОНФИГУРАЦИЯ БАЗЫ ДАННЫХ
// =====================================================================

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string `mapstructure:"host" validate:"required" default:"localhost"`
	Port     int    `mapstructure:"port" validate:"required,min=1,max=65535" default:"5432"`
	User     string `mapstructure:"user" validate:"required" default:"postgres"`
	Password string `mapstructure:"password" validate:"required"`
	DBName   string `mapstructure:"dbname" validate:"required" default:"tender_sniper"`
	SSLMode  string `mapstructure:"sslmode" validate:"oneof=disable require verify-ca verify-full" default:"disable"`

	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"min=1" default:"25"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"min=1" default:"5"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" default:"1h"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time" default:"30m"`

	ConnectTimeout time.Duration `mapstructure:"connect_timeout" default:"10s"`
	QueryTimeout   time.Duration `mapstructure:"query_timeout" default:"30s"`
}

// GetDSN возвращает Data Source Name для подключения к PostgreSQL
func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// =====================================================================
// 🤖 КОНФИГУРАЦИЯ AI ИНТЕГРАЦИИ (LLM collaborator)
// =====================================================================

// AIConfig содержит настройки для работы с LLM-коллаборатором (intent/relevance/extract)
type AIConfig struct {
	// APIKey — ключ провайдера (OPENAI_API_KEY или эквивалент). Пусто ⇒ AI отключен,
	// AI Relevance Checker работает в режиме fallback (см. internal/ai).
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model" default:"claude-3-5-haiku-20241022"`

	Timeout    time.Duration `mapstructure:"timeout" default:"20s"`
	MaxRetries int           `mapstructure:"max_retries" validate:"min=0" default:"3"`
	RetryDelay time.Duration `mapstructure:"retry_delay" default:"2s"`

	// RelevanceConfidenceFloor — confidence < 85 переворачивает is_relevant
	// в false.
	RelevanceConfidenceFloor int `mapstructure:"relevance_confidence_floor" validate:"min=0,max=100" default:"85"`

	// SmartMatcherBypassScore — score ≥ этого значения пропускает AI Relevance
	// Checker целиком (ai_skipped=true).
	SmartMatcherBypassScore int `mapstructure:"smart_matcher_bypass_score" validate:"min=0,max=100" default:"85"`

	RelevanceCacheTTL  time.Duration `mapstructure:"relevance_cache_ttl" default:"24h"`
	RelevanceCacheCap  int           `mapstructure:"relevance_cache_cap" validate:"min=1" default:"10000"`
	EnrichmentCacheTTL time.Duration `mapstructure:"enrichment_cache_ttl" default:"168h"` // 7 days
}

// =====================================================================
// 🕷️ КОНФИГУРАЦИЯ ДОСТУПА К ПОРТАЛУ ЗАКУПОК
// =====================================================================

// PortalConfig содержит настройки для RSS-опроса и обогащения карточек zakupki.gov.ru
type PortalConfig struct {
	BaseURL   string `mapstructure:"base_url" validate:"required,url" default:"https://zakupki.gov.ru"`
	UserAgent string `mapstructure:"user_agent" default:"Mozilla/5.0 (compatible; TenderSniper/1.0)"`
	ProxyURL  string `mapstructure:"proxy_url"`

	MaxConcurrent int `mapstructure:"max_concurrent" validate:"min=1,max=64" default:"8"`

	MaxRetries int           `mapstructure:"max_retries" validate:"min=0" default:"3"`
	RetryBase  time.Duration `mapstructure:"retry_base" default:"2s"`

	RSSTimeout  time.Duration `mapstructure:"rss_timeout" default:"30s"`
	CardTimeout time.Duration `mapstructure:"card_timeout" default:"30s"`

	MaxTendersPerPoll int `mapstructure:"max_tenders_per_poll" validate:"min=1" default:"100"`
}

// =====================================================================
// 📝 КОНФИГУРАЦИЯ ЛОГИРОВАНИЯ
// =====================================================================

// LoggingConfig содержит настройки системы логирования
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error fatal" default:"info"`
	Format string `mapstructure:"format" validate:"oneof=json console" default:"json"`

	EnableCaller     bool `mapstructure:"enable_caller" default:"true"`
	EnableStacktrace bool `mapstructure:"enable_stacktrace" default:"false"`
}

// =====================================================================
// 🎯 КОНФИГУРАЦИЯ БИЗНЕС-ЛОГИКИ
// =====================================================================

// BusinessConfig содержит настройки бизнес-логики: квоты, интервалы, пороги скоринга.
type BusinessConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval" default:"5m"`

	// MonitoringMaxTenders — сколько тендеров обрабатывает один проход
	// Monitoring Loop на фильтр.
	MonitoringMaxTenders int `mapstructure:"monitoring_max_tenders" validate:"min=1" default:"5"`

	// MatchScoreThreshold — тендеры с score ниже этого порога отбрасываются.
	MatchScoreThreshold int `mapstructure:"match_score_threshold" validate:"min=0,max=100" default:"60"`

	// WorkerPoolSize — размер bounded worker pool для Monitoring Loop (C8).
	WorkerPoolSize int `mapstructure:"worker_pool_size" validate:"min=1" default:"16"`

	// TransliterationSubConcurrency — concurrency внутри одного filter worker
	// при переборе транслитерационных вариантов ключевого слова.
	TransliterationSubConcurrency int `mapstructure:"transliteration_sub_concurrency" validate:"min=1,max=16" default:"4"`

	// ConsecutiveTransientLimit — после стольких подряд transient-ошибок
	// Monitoring Loop ставит фильтр на паузу.
	ConsecutiveTransientLimit int `mapstructure:"consecutive_transient_limit" validate:"min=1" default:"3"`

	SessionEnrichmentCacheCap int           `mapstructure:"session_enrichment_cache_cap" validate:"min=1" default:"500"`
	TenderCacheTTL            time.Duration `mapstructure:"tender_cache_ttl" default:"24h"`
}

// TierLimits возвращает (filters_limit, daily_notifications_limit) по тиру.
func (b BusinessConfig) TierLimits(tier string) (filtersLimit, dailyNotificationsLimit int) {
	switch tier {
	case "trial":
		return 1, 20
	case "basic":
		return 5, 100
	case "premium":
		return 30, 10000
	case "admin":
		return 1000, 100000
	default:
		return 1, 20
	}
}

// AIQuotaDaily возвращает дневную квоту AI Relevance Checker по тиру.
func (b BusinessConfig) AIQuotaDaily(tier string) int {
	switch tier {
	case "trial":
		return 20
	case "basic":
		return 100
	case "premium":
		return 10000
	case "admin":
		return 100000
	default:
		return 20
	}
}

// =====================================================================
// 📨 КОНФИГУРАЦИЯ ДОСТАВКИ УВЕДОМЛЕНИЙ (chat + spreadsheet collaborators)
// =====================================================================

// NotifyConfig содержит настройки отправки уведомлений и экспорта в таблицы.
type NotifyConfig struct {
	BotToken    string        `mapstructure:"bot_token"`
	SendTimeout time.Duration `mapstructure:"send_timeout" default:"10s"`
	MaxRetries  int           `mapstructure:"max_retries" validate:"min=0" default:"3"`

	SpreadsheetID         string `mapstructure:"spreadsheet_id"`
	SpreadsheetEnabled    bool   `mapstructure:"spreadsheet_enabled" default:"false"`
	SheetsCredentialsFile string `mapstructure:"sheets_credentials_file"`

	AdminUserID  string   `mapstructure:"admin_user_id"`
	AllowedUsers []string `mapstructure:"allowed_users"`
}

// =====================================================================
// 📊 КОНФИГУРАЦИЯ МОНИТОРИНГА / HEALTH
// =====================================================================

// MonitoringConfig содержит настройки health-check поверхности.
type MonitoringConfig struct {
	HealthCheckPath string `mapstructure:"health_check_path" default:"/health"`
	ReadyPath       string `mapstructure:"ready_path" default:"/ready"`
	LivePath        string `mapstructure:"live_path" default:"/live"`
}

// =====================================================================
// 🔧 ФУНКЦИИ ЗАГРУЗКИ И ВАЛИДАЦИИ КОНФИГУРАЦИИ
// =====================================================================

// Load загружает конфигурацию из переменных окружения и .env файла.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read .env: %w", err)
		}
	}

	setDefaults()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults устанавливает дефолтные значения для всех настроек.
func setDefaults() {
	// 🖥️ Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.shutdown_timeout", "10s")
	viper.SetDefault("server.mode", "debug")

	// 🗃️ Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.dbname", "tender_sniper")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", "1h")
	viper.SetDefault("database.conn_max_idle_time", "30m")
	viper.SetDefault("database.connect_timeout", "10s")
	viper.SetDefault("database.query_timeout", "30s")

	// 🤖 AI defaults
	viper.SetDefault("ai.model", "claude-3-5-haiku-20241022")
	viper.SetDefault("ai.timeout", "20s")
	viper.SetDefault("ai.max_retries", 3)
	viper.SetDefault("ai.retry_delay", "2s")
	viper.SetDefault("ai.relevance_confidence_floor", 85)
	viper.SetDefault("ai.smart_matcher_bypass_score", 85)
	viper.SetDefault("ai.relevance_cache_ttl", "24h")
	viper.SetDefault("ai.relevance_cache_cap", 10000)
	viper.SetDefault("ai.enrichment_cache_ttl", "168h")

	// 🕷️ Portal defaults
	viper.SetDefault("portal.base_url", "https://zakupki.gov.ru")
	viper.SetDefault("portal.user_agent", "Mozilla/5.0 (compatible; TenderSniper/1.0)")
	viper.SetDefault("portal.max_concurrent", 8)
	viper.SetDefault("portal.max_retries", 3)
	viper.SetDefault("portal.retry_base", "2s")
	viper.SetDefault("portal.rss_timeout", "30s")
	viper.SetDefault("portal.card_timeout", "30s")
	viper.SetDefault("portal.max_tenders_per_poll", 100)

	// 📝 Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.enable_caller", true)
	viper.SetDefault("logging.enable_stacktrace", false)

	// 🎯 Business defaults
	viper.SetDefault("business.poll_interval", "5m")
	viper.SetDefault("business.monitoring_max_tenders", 5)
	viper.SetDefault("business.match_score_threshold", 60)
	viper.SetDefault("business.worker_pool_size", 16)
	viper.SetDefault("business.transliteration_sub_concurrency", 4)
	viper.SetDefault("business.consecutive_transient_limit", 3)
	viper.SetDefault("business.session_enrichment_cache_cap", 500)
	viper.SetDefault("business.tender_cache_ttl", "24h")

	// 📨 Notify defaults
	viper.SetDefault("notify.send_timeout", "10s")
	viper.SetDefault("notify.max_retries", 3)
	viper.SetDefault("notify.spreadsheet_enabled", false)

	// 📊 Monitoring defaults
	viper.SetDefault("monitoring.health_check_path", "/health")
	viper.SetDefault("monitoring.ready_path", "/ready")
	viper.SetDefault("monitoring.live_path", "/live")
}

// validateConfig валидирует загруженную конфигурацию.
func validateConfig(config *Config) error {
	validate := validator.New()

	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if config.Database.Password == "" {
		return fmt.Errorf("database password is required")
	}

	// Отсутствие AI.APIKey не fatal: AI Relevance Checker и Query Expander
	// деградируют до fallback-режима; явное предупреждение
	// об этом логирует вызывающий код при старте (cmd/api/main.go).

	return nil
}

// =====================================================================
// 🔧 ВСПОМОГАТЕЛЬНЫЕ ФУНКЦИИ
// =====================================================================

// IsProduction проверяет, запущено ли приложение в production режиме
func (c *Config) IsProduction() bool {
	return strings.ToLower(c.Server.Mode) == "release"
}

// IsDevelopment проверяет, запущено ли приложение в development режиме
func (c *Config) IsDevelopment() bool {
	return strings.ToLower(c.Server.Mode) == "debug"
}
