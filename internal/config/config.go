package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App       App
	Log       Log
	Store     Store
	Steam     Steam
	Scoring   Scoring
	Scheduler Scheduler
	Server    Server
	Redis     Redis
	Kafka     Kafka
	Bot       Bot
}

type App struct {
	Name    string `env:"APP_NAME" envDefault:"card-market"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

type Store struct {
	Driver          string        `env:"STORE_DRIVER" envDefault:"sqlite"`
	DSN             string        `env:"STORE_DSN" envDefault:"data/games.db" json:"-"`
	MaxIdleConns    int           `env:"STORE_MAX_IDLE_CONNS" envDefault:"5"`
	MaxOpenConns    int           `env:"STORE_MAX_OPEN_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"STORE_CONN_MAX_LIFETIME" envDefault:"5m"`
}

type Steam struct {
	StoreURL       string        `env:"STEAM_STORE_URL" envDefault:"https://store.steampowered.com"`
	CommunityURL   string        `env:"STEAM_COMMUNITY_URL" envDefault:"https://steamcommunity.com"`
	CountryCode    string        `env:"STEAM_COUNTRY_CODE" envDefault:"ar"`
	Currency       int           `env:"STEAM_CURRENCY" envDefault:"34"`
	Language       string        `env:"STEAM_LANGUAGE" envDefault:"spanish"`
	Cookies        string        `env:"STEAM_COOKIES" json:"-"`
	UserAgent      string        `env:"STEAM_USER_AGENT" envDefault:"Mozilla/5.0 (X11; Linux x86_64) card-market"`
	RequestTimeout time.Duration `env:"STEAM_REQUEST_TIMEOUT" envDefault:"30s"`
	RetryInitial   time.Duration `env:"STEAM_RETRY_INITIAL" envDefault:"5s"`
	MaxPrice       float64       `env:"STEAM_CRAWLER_MAX_PRICE" envDefault:"16"`
	CrawlerRetries int           `env:"STEAM_CRAWLER_RETRIES" envDefault:"0"`
	CrawlerPages   int           `env:"STEAM_CRAWLER_MAX_PAGES" envDefault:"100"`
	HistogramPause time.Duration `env:"STEAM_HISTOGRAM_PAUSE" envDefault:"1s"`
	NameIDTTL      time.Duration `env:"STEAM_NAMEID_TTL" envDefault:"24h"`
	DebugHTTP      bool          `env:"STEAM_DEBUG_HTTP" envDefault:"false"`
}

type Scoring struct {
	EmptyPolicy    string  `env:"SCORING_EMPTY_POLICY" envDefault:"skip"`
	ExcludeAppIDs  []int64 `env:"SCORING_EXCLUDE_APPIDS" envSeparator:","`
	InstantTopN    int     `env:"SCORING_INSTANT_TOP_N" envDefault:"10"`
	FastModeLimit  int     `env:"SCORING_FAST_MODE_LIMIT" envDefault:"250"`
	InstantRetries int     `env:"SCORING_INSTANT_RETRIES" envDefault:"3"`
}

type Scheduler struct {
	Enabled    bool   `env:"SCHEDULER_ENABLED" envDefault:"true"`
	Spec       string `env:"SCHEDULER_SPEC" envDefault:"@every 1h"`
	RunOnStart bool   `env:"SCHEDULER_RUN_ON_START" envDefault:"true"`
}

type Server struct {
	Addr            string        `env:"SERVER_ADDR" envDefault:":8080"`
	ProbeAddr       string        `env:"SERVER_PROBE_ADDR" envDefault:":8081"`
	MetricsAddr     string        `env:"SERVER_METRICS_ADDR" envDefault:":9090"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type Redis struct {
	Address  string `env:"REDIS_ADDRESS"`
	Username string `env:"REDIS_USERNAME"`
	Password string `env:"REDIS_PASSWORD" json:"-"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
}

func (r Redis) Enabled() bool {
	return r.Address != ""
}

type Kafka struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic   string   `env:"KAFKA_TOPIC" envDefault:"games.scored"`
}

func (k Kafka) Enabled() bool {
	return len(k.Brokers) > 0
}

type Bot struct {
	Token   string  `env:"BOT_TOKEN" json:"-"`
	ChatID  int64   `env:"BOT_CHAT_ID"`
	Admins  []int64 `env:"BOT_ADMINS" envSeparator:","`
	ReportN int     `env:"BOT_REPORT_TOP_N" envDefault:"10"`
}

func (b Bot) Enabled() bool {
	return b.Token != ""
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	config.Steam.Cookies = correctNewlines(config.Steam.Cookies)

	return config, nil
}

func correctNewlines(s string) string {
	return strings.NewReplacer(`"`, "", `\n`, "", "\n", "").Replace(s)
}
