package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppConfig      *AppConfig
	AIConfig       *AIConfig
	BrowserConfig  *BrowserConfig
	ResolverConfig *ResolverConfig
	CodegenConfig  *CodegenConfig
}

type AppConfig struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`
}

type AIConfig struct {
	Enabled bool   `envconfig:"AI_TIEBREAK_ENABLED" default:"false"`
	APIKey  string `envconfig:"AI_API_KEY" default:""`
	Model   string `envconfig:"AI_MODEL" default:"claude-sonnet-4-20250514"`
	Timeout int    `envconfig:"AI_TIMEOUT" default:"20000"`
}

type BrowserConfig struct {
	Headless    bool   `envconfig:"BROWSER_HEADLESS" default:"true"`
	SlowMo      int    `envconfig:"BROWSER_SLOW_MO" default:"0"`
	Timeout     int    `envconfig:"BROWSER_TIMEOUT" default:"30000"`
	UserDataDir string `envconfig:"BROWSER_USER_DATA_DIR" default:""`
}

type ResolverConfig struct {
	// OriginalWaitMs bounds the existence check on the seed xpath.
	OriginalWaitMs int `envconfig:"RESOLVER_ORIGINAL_WAIT_MS" default:"1000"`
	MaxTextLength  int `envconfig:"RESOLVER_MAX_TEXT_LENGTH" default:"99"`
	// TestAttributes is probed in order; the first present one wins.
	TestAttributes []string `envconfig:"RESOLVER_TEST_ATTRIBUTES" default:"data-testid,data-test-id,data-qa,data-cy,data-e2e"`
	CSSAttributes  []string `envconfig:"RESOLVER_CSS_ATTRIBUTES" default:"data-testid,data-test-id,data-qa,data-cy,data-e2e,id,name,aria-label,role,aria-role,title,placeholder,alt"`
}

type CodegenConfig struct {
	DefaultTimeout     int    `envconfig:"CODEGEN_DEFAULT_TIMEOUT" default:"30000"`
	ConditionalTimeout int    `envconfig:"CODEGEN_CONDITIONAL_TIMEOUT" default:"5000"`
	TestName           string `envconfig:"CODEGEN_TEST_NAME" default:"generated test"`
}

func GetConfig() (*Config, error) {
	_ = godotenv.Load()

	var conf Config

	if err := envconfig.Process("", &conf); err != nil {
		return nil, fmt.Errorf("read config from env vars: %w", err)
	}

	return &conf, nil
}
