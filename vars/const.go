package vars

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// GetEnv 获取环境变量，如果不存在则返回默认值
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, err := strconv.Atoi(GetEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(GetEnv(key, "")); err == nil {
		return d
	}
	return fallback
}

const (
	// 模型名称
	MIXTRAL = "mixtral-8x7b-32768"

	GroqBaseURL = "https://api.groq.com/openai/v1"

	// Labels used when the three statements are merged into one prompt.
	BalanceSheetLabel    = "Balance Sheet Data:"
	IncomeStatementLabel = "Income Statement Data:"
	CashFlowLabel        = "Cash Flow Statement Data:"
	FinancialDataLabel   = "Financial Data:"

	// 提示词
	SystemPrompt = "You are a financial analyst. Your job is to analyze the financial data provided and answer any questions related to the company’s financial health, performance, and overall viability. Provide detailed, professional answers."
)

var ErrMissingCredential = errors.New("API key for Groq is missing. Please set GROQ_API_KEY in the environment variables")

// LLMConfig is everything the chat model constructor needs.
type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type ServerConfig struct {
	Addr           string
	GinMode        string
	AllowedOrigins []string
	MaxUploadMB    int
}

type Config struct {
	LLM                   LLMConfig
	Server                ServerConfig
	LogLevel              string
	MaxConcurrentAnalyses int
	ExtractTimeout        time.Duration
}

// Load 读取 .env 与环境变量。GROQ_API_KEY 缺失时直接返回错误，启动即失败。
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		LLM: LLMConfig{
			APIKey:  strings.TrimSpace(os.Getenv("GROQ_API_KEY")),
			BaseURL: GetEnv("GROQ_BASE_URL", GroqBaseURL),
			Model:   MIXTRAL,
			Timeout: getEnvAsDuration("LLM_TIMEOUT", 0),
		},
		Server: ServerConfig{
			Addr:           GetEnv("SERVER_ADDR", ":8081"),
			GinMode:        GetEnv("GIN_MODE", "release"),
			AllowedOrigins: splitList(GetEnv("ALLOWED_ORIGINS", "")),
			MaxUploadMB:    getEnvAsInt("MAX_UPLOAD_MB", 32),
		},
		LogLevel:              GetEnv("LOG_LEVEL", "info"),
		MaxConcurrentAnalyses: getEnvAsInt("MAX_CONCURRENT_ANALYSES", 1),
		ExtractTimeout:        getEnvAsDuration("EXTRACT_TIMEOUT", 30*time.Second),
	}

	if cfg.LLM.APIKey == "" {
		return nil, ErrMissingCredential
	}
	if cfg.MaxConcurrentAnalyses < 1 {
		cfg.MaxConcurrentAnalyses = 1
	}
	if cfg.Server.MaxUploadMB < 1 {
		cfg.Server.MaxUploadMB = 32
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
