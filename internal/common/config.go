package common

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	OCR      OCRConfig      `mapstructure:"ocr"`
	Export   ExportConfig   `mapstructure:"export"`
	Watch    WatchConfig    `mapstructure:"watch"`
	Log      LogConfig      `mapstructure:"log"`
}

// PipelineConfig bounds the concurrency of the extraction pipeline.
type PipelineConfig struct {
	FileWindow int `mapstructure:"file_window"`
	PageChunk  int `mapstructure:"page_chunk"`
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	RenderScale float64 `mapstructure:"render_scale"`
	Contrast    float64 `mapstructure:"contrast"`
	MaxWorkers  int     `mapstructure:"max_workers"`
	Language    string  `mapstructure:"language"`
	TessdataDir string  `mapstructure:"tessdata_dir"`
	PdftoppmBin string  `mapstructure:"pdftoppm_bin"`
}

// ExportConfig controls where and how artifacts are written.
type ExportConfig struct {
	OutDir string `mapstructure:"out_dir"`
	Report bool   `mapstructure:"report"`
}

// WatchConfig tunes the directory watcher and its processing queue.
type WatchConfig struct {
	Debounce       time.Duration `mapstructure:"debounce"`
	Workers        int           `mapstructure:"workers"`
	QueueSize      int           `mapstructure:"queue_size"`
	ProcessTimeout time.Duration `mapstructure:"process_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			FileWindow: 3,
			PageChunk:  15,
		},
		OCR: OCRConfig{
			RenderScale: 3.2,
			Contrast:    1.4,
			MaxWorkers:  8,
			Language:    "eng",
			PdftoppmBin: "pdftoppm",
		},
		Export: ExportConfig{
			OutDir: "./out",
			Report: true,
		},
		Watch: WatchConfig{
			Debounce:       500 * time.Millisecond,
			Workers:        2,
			QueueSize:      64,
			ProcessTimeout: 10 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig reads defaults, an optional config file and LABELSCAN_* environment variables.
// An empty cfgFile searches ./labelscan.yaml and $HOME/.labelscan/labelscan.yaml.
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix("LABELSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("labelscan")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.labelscan")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, NewAppError(CodeConfig, "error reading config file", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, NewAppError(CodeConfig, "failed to unmarshal config", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("pipeline.file_window", d.Pipeline.FileWindow)
	v.SetDefault("pipeline.page_chunk", d.Pipeline.PageChunk)

	v.SetDefault("ocr.render_scale", d.OCR.RenderScale)
	v.SetDefault("ocr.contrast", d.OCR.Contrast)
	v.SetDefault("ocr.max_workers", d.OCR.MaxWorkers)
	v.SetDefault("ocr.language", d.OCR.Language)
	v.SetDefault("ocr.tessdata_dir", d.OCR.TessdataDir)
	v.SetDefault("ocr.pdftoppm_bin", d.OCR.PdftoppmBin)

	v.SetDefault("export.out_dir", d.Export.OutDir)
	v.SetDefault("export.report", d.Export.Report)

	v.SetDefault("watch.debounce", d.Watch.Debounce)
	v.SetDefault("watch.workers", d.Watch.Workers)
	v.SetDefault("watch.queue_size", d.Watch.QueueSize)
	v.SetDefault("watch.process_timeout", d.Watch.ProcessTimeout)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator().
		Field("pipeline.file_window", c.Pipeline.FileWindow, Positive).
		Field("pipeline.page_chunk", c.Pipeline.PageChunk, Positive).
		Field("ocr.render_scale", c.OCR.RenderScale, Positive).
		Field("ocr.contrast", c.OCR.Contrast, Positive).
		Field("ocr.max_workers", c.OCR.MaxWorkers, Positive).
		Field("ocr.language", c.OCR.Language, Required).
		Field("ocr.pdftoppm_bin", c.OCR.PdftoppmBin, Required).
		Field("export.out_dir", c.Export.OutDir, Required).
		Field("log.level", c.Log.Level, OneOf("debug", "info", "warn", "error")).
		Field("log.format", c.Log.Format, OneOf("text", "json"))
	return ValidateAndReturnError(v)
}

// String renders the effective configuration for debug logging.
func (c *Config) String() string {
	return fmt.Sprintf("window=%d chunk=%d scale=%.1f contrast=%.1f ocr_workers=%d lang=%s out=%s",
		c.Pipeline.FileWindow, c.Pipeline.PageChunk, c.OCR.RenderScale, c.OCR.Contrast,
		c.OCR.MaxWorkers, c.OCR.Language, c.Export.OutDir)
}
