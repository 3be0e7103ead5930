package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rustyeddy/quant/indicators"
	"github.com/rustyeddy/quant/metrics"
	"gopkg.in/yaml.v3"
)

// Config represents the complete analytics configuration
type Config struct {
	Metrics    MetricsConfig    `json:"metrics" yaml:"metrics"`
	Indicators IndicatorsConfig `json:"indicators" yaml:"indicators"`
	Journal    JournalConfig    `json:"journal" yaml:"journal"`
	Report     ReportConfig     `json:"report" yaml:"report"`
}

// MetricsConfig contains the performance calculation inputs
type MetricsConfig struct {
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
	RiskFreeRate   float64 `json:"risk_free_rate" yaml:"risk_free_rate"`
	Confidence     float64 `json:"confidence" yaml:"confidence"`
}

// Options converts the config into metrics options.
func (m MetricsConfig) Options() metrics.Options {
	return metrics.Options{
		RiskFreeRate: m.RiskFreeRate,
		Confidence:   m.Confidence,
	}
}

// IndicatorsConfig contains indicator periods. SMA and EMA are optional and
// skipped when zero.
type IndicatorsConfig struct {
	RSIPeriod       int     `json:"rsi_period" yaml:"rsi_period"`
	MACDFast        int     `json:"macd_fast" yaml:"macd_fast"`
	MACDSlow        int     `json:"macd_slow" yaml:"macd_slow"`
	MACDSignal      int     `json:"macd_signal" yaml:"macd_signal"`
	BollingerPeriod int     `json:"bollinger_period" yaml:"bollinger_period"`
	BollingerStdDev float64 `json:"bollinger_std_dev" yaml:"bollinger_std_dev"`
	StochK          int     `json:"stoch_k" yaml:"stoch_k"`
	StochD          int     `json:"stoch_d" yaml:"stoch_d"`
	StochSlowing    int     `json:"stoch_slowing" yaml:"stoch_slowing"`
	ATRPeriod       int     `json:"atr_period" yaml:"atr_period"`
	ADXPeriod       int     `json:"adx_period" yaml:"adx_period"`
	SMAPeriod       int     `json:"sma_period,omitempty" yaml:"sma_period,omitempty"`
	EMAPeriod       int     `json:"ema_period,omitempty" yaml:"ema_period,omitempty"`
	PivotType       string  `json:"pivot_type" yaml:"pivot_type"`
}

// JournalConfig selects the trade journal source
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// ReportConfig contains output parameters
type ReportConfig struct {
	Format   string `json:"format" yaml:"format"`                           // "text", "org" or "yaml"
	Rows     int    `json:"rows" yaml:"rows"`                               // indicator rows to print
	Record   bool   `json:"record" yaml:"record"`                           // persist the run summary
	PromFile string `json:"prom_file,omitempty" yaml:"prom_file,omitempty"` // textfile collector output
}

// LoadFromFile loads configuration from a file, trying YAML first and then
// JSON. Missing sections keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration as YAML for .yaml/.yml paths and as JSON
// otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate returns the first invalid setting, named by its dotted key.
func (c *Config) Validate() error {
	m := c.Metrics
	if m.InitialCapital <= 0 {
		return fmt.Errorf("metrics.initial_capital must be positive")
	}
	if m.RiskFreeRate < 0 || m.RiskFreeRate >= 1 {
		return fmt.Errorf("metrics.risk_free_rate must be in [0, 1)")
	}
	if m.Confidence <= 0 || m.Confidence >= 1 {
		return fmt.Errorf("metrics.confidence must be between 0 and 1")
	}

	in := c.Indicators
	periods := []struct {
		key string
		v   int
	}{
		{"indicators.rsi_period", in.RSIPeriod},
		{"indicators.macd_fast", in.MACDFast},
		{"indicators.macd_slow", in.MACDSlow},
		{"indicators.macd_signal", in.MACDSignal},
		{"indicators.bollinger_period", in.BollingerPeriod},
		{"indicators.stoch_k", in.StochK},
		{"indicators.stoch_d", in.StochD},
		{"indicators.stoch_slowing", in.StochSlowing},
		{"indicators.atr_period", in.ATRPeriod},
		{"indicators.adx_period", in.ADXPeriod},
	}
	for _, p := range periods {
		if p.v <= 0 {
			return fmt.Errorf("%s must be positive", p.key)
		}
	}
	if in.MACDFast >= in.MACDSlow {
		return fmt.Errorf("indicators.macd_fast must be less than indicators.macd_slow")
	}
	if in.BollingerStdDev <= 0 {
		return fmt.Errorf("indicators.bollinger_std_dev must be positive")
	}
	if in.SMAPeriod < 0 || in.EMAPeriod < 0 {
		return fmt.Errorf("indicators.sma_period and indicators.ema_period must not be negative")
	}
	if _, err := indicators.ParsePivotType(in.PivotType); err != nil {
		return fmt.Errorf("indicators.pivot_type: %w", err)
	}

	switch c.Journal.Type {
	case "csv":
		if c.Journal.TradesFile == "" {
			return fmt.Errorf("journal.trades_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}

	switch c.Report.Format {
	case "text", "org", "yaml":
	default:
		return fmt.Errorf("report.format must be 'text', 'org' or 'yaml'")
	}
	if c.Report.Rows < 0 {
		return fmt.Errorf("report.rows must not be negative")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	opts := metrics.DefaultOptions()
	return &Config{
		Metrics: MetricsConfig{
			InitialCapital: 10000,
			RiskFreeRate:   opts.RiskFreeRate,
			Confidence:     opts.Confidence,
		},
		Indicators: IndicatorsConfig{
			RSIPeriod:       indicators.DefaultRSIPeriod,
			MACDFast:        indicators.DefaultMACDFast,
			MACDSlow:        indicators.DefaultMACDSlow,
			MACDSignal:      indicators.DefaultMACDSignal,
			BollingerPeriod: indicators.DefaultBollingerPeriod,
			BollingerStdDev: indicators.DefaultBollingerStdDev,
			StochK:          indicators.DefaultStochK,
			StochD:          indicators.DefaultStochD,
			StochSlowing:    indicators.DefaultStochSlowing,
			ATRPeriod:       indicators.DefaultATRPeriod,
			ADXPeriod:       indicators.DefaultADXPeriod,
			PivotType:       string(indicators.PivotStandard),
		},
		Journal: JournalConfig{
			Type:       "csv",
			TradesFile: "./trades.csv",
		},
		Report: ReportConfig{
			Format: "text",
			Rows:   20,
		},
	}
}
