// Package config holds the settings for a test run. A Config is built once at startup from
// defaults, an optional YAML file, an optional .env file and the process environment, and is then
// passed down explicitly; nothing else in the harness reads the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gdplabs/e2e-test-harness/engine"
	"github.com/gdplabs/e2e-test-harness/framework/helpers"
	"github.com/gdplabs/e2e-test-harness/framework/opt"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvBearerToken = "API_BEARER_TOKEN"
	EnvHeadless    = "HEADLESS"
	EnvSlowMotion  = "SLOW_MO"
	EnvBrowser     = "BROWSER"
	EnvDriver      = "E2E_DRIVER"
)

const (
	DefaultBearerToken     = "test-token"
	DefaultAuthBaseURL     = "https://httpbin.org"
	DefaultBearerPath      = "/bearer"
	DefaultResourceBaseURL = "https://jsonplaceholder.typicode.com"
	DefaultResourcePath    = "/todos/1"
	DefaultNotFoundPath    = "/this-path-does-not-exist"
	DefaultPageURL         = "https://www.google.com"
	DefaultExpectedTitle   = "Google"
	DefaultActionTimeout   = 30 * time.Second
)

// Config is the complete set of options for one run of the suite.
type Config struct {
	// APIBearerToken is sent as "Authorization: Bearer <token>" by the authenticated API tests.
	APIBearerToken string `yaml:"apiBearerToken"`

	// Headless controls whether browsers are launched without a window.
	Headless bool `yaml:"headless"`

	// SlowMotionMS, if defined, delays every browser operation by that many milliseconds.
	SlowMotionMS opt.Maybe[int] `yaml:"slowMotionMs"`

	// Browser selects the browser variant. Unrecognized names mean the default variant.
	Browser engine.Variant `yaml:"browser"`

	// Driver names the automation driver: "playwright", "rod" or "static".
	Driver string `yaml:"driver"`

	// ActionTimeout bounds each fetch or navigation.
	ActionTimeout time.Duration `yaml:"actionTimeout"`

	AuthBaseURL     string `yaml:"authBaseUrl"`
	BearerPath      string `yaml:"bearerPath"`
	ResourceBaseURL string `yaml:"resourceBaseUrl"`
	ResourcePath    string `yaml:"resourcePath"`
	NotFoundPath    string `yaml:"notFoundPath"`
	PageURL         string `yaml:"pageUrl"`
	ExpectedTitle   string `yaml:"expectedTitle"`
}

// Default returns the configuration used when nothing else is specified: public endpoints,
// headless default browser, playwright driver.
func Default() Config {
	return Config{
		APIBearerToken:  DefaultBearerToken,
		Headless:        true,
		Browser:         engine.VariantDefault,
		Driver:          engine.DriverPlaywright,
		ActionTimeout:   DefaultActionTimeout,
		AuthBaseURL:     DefaultAuthBaseURL,
		BearerPath:      DefaultBearerPath,
		ResourceBaseURL: DefaultResourceBaseURL,
		ResourcePath:    DefaultResourcePath,
		NotFoundPath:    DefaultNotFoundPath,
		PageURL:         DefaultPageURL,
		ExpectedTitle:   DefaultExpectedTitle,
	}
}

// LookupEnvFunc has the same signature as os.LookupEnv.
type LookupEnvFunc func(key string) (string, bool)

// Load builds a Config. Sources are applied in this order, later ones overriding earlier ones:
// defaults, the YAML file at configFile (if not empty), then environment variables. If envFile is
// not empty, the variables it defines are added to the process environment first, without
// overriding any that are already set. A nil lookupEnv means os.LookupEnv.
func Load(configFile, envFile string, lookupEnv LookupEnvFunc) (Config, error) {
	cfg := Default()
	if configFile != "" {
		data, err := os.ReadFile(configFile) //nolint:gosec
		if err != nil {
			return cfg, fmt.Errorf("unable to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config file %q is malformed: %w", configFile, err)
		}
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("unable to load env file %q: %w", envFile, err)
		}
	}
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	if err := cfg.applyEnv(lookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookupEnv LookupEnvFunc) error {
	if v, ok := lookupEnv(EnvBearerToken); ok && v != "" {
		c.APIBearerToken = v
	}
	if v, ok := lookupEnv(EnvHeadless); ok {
		c.Headless = ParseHeadless(v)
	}
	if v, ok := lookupEnv(EnvSlowMotion); ok && strings.TrimSpace(v) != "" {
		ms, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || ms < 0 {
			return fmt.Errorf("%s must be a non-negative number of milliseconds, got %q", EnvSlowMotion, v)
		}
		c.SlowMotionMS = opt.Some(ms)
	}
	if v, ok := lookupEnv(EnvBrowser); ok {
		c.Browser = engine.ParseVariant(v)
	}
	if v, ok := lookupEnv(EnvDriver); ok && v != "" {
		c.Driver = strings.ToLower(strings.TrimSpace(v))
	}
	return nil
}

// ParseHeadless interprets a HEADLESS value: "true" or "1" (in any case) means headless, anything
// else means windowed.
func ParseHeadless(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	return v == "true" || v == "1"
}

// Validate checks the fields that have no sensible fallback.
func (c Config) Validate() error {
	var errs []error
	if c.ActionTimeout < 0 {
		errs = append(errs, errors.New("actionTimeout cannot be negative"))
	}
	if c.SlowMotionMS.OrElse(0) < 0 {
		errs = append(errs, errors.New("slowMotionMs cannot be negative"))
	}
	for name, value := range map[string]string{
		"authBaseUrl":     c.AuthBaseURL,
		"resourceBaseUrl": c.ResourceBaseURL,
		"pageUrl":         c.PageURL,
	} {
		if value == "" {
			errs = append(errs, fmt.Errorf("%s is required", name))
		}
	}
	return errors.Join(errs...)
}

// SlowMotion returns the slow-motion delay as a duration, if one was configured.
func (c Config) SlowMotion() opt.Maybe[time.Duration] {
	return opt.Map(c.SlowMotionMS, func(ms int) time.Duration { return time.Duration(ms) * time.Millisecond })
}

// WithFixtureBaseURL returns a copy of the configuration in which every endpoint points at a
// local fixture server, for running the suite without network access.
func (c Config) WithFixtureBaseURL(baseURL string) Config {
	baseURL = strings.TrimSuffix(baseURL, "/")
	c.AuthBaseURL = baseURL
	c.ResourceBaseURL = baseURL
	c.PageURL = baseURL + "/"
	return c
}

// Describe returns a one-line summary for the startup banner. The bearer token is not included.
func (c Config) Describe() string {
	slowMo := helpers.IfElse(c.SlowMotionMS.IsDefined(), fmt.Sprintf("%dms", c.SlowMotionMS.Value()), "off")
	return fmt.Sprintf("driver=%s browser=%s headless=%t slowMo=%s timeout=%s",
		c.Driver, c.Browser, c.Headless, slowMo, c.ActionTimeout)
}
