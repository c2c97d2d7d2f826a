package cmd

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/report"
	"github.com/spigell/resume-screener/internal/scoring"
	"github.com/spigell/resume-screener/internal/sections"
	"github.com/spigell/resume-screener/internal/server"
	"github.com/spigell/resume-screener/internal/skills"
)

const (
	outputText = "text"
	outputJSON = "json"
)

type Config struct {
	Output string `mapstructure:"output" validate:"omitempty,oneof=text json"`

	// Sections and Skills accept lists or comma-separated strings, so they are
	// decoded separately by decodeTables.
	Sections []SectionConfig `mapstructure:"-" validate:"dive"`
	Skills   []string        `mapstructure:"-" validate:"dive,required"`

	Fallback FallbackConfig `mapstructure:"fallback"`
	Serve    ServeConfig    `mapstructure:"serve"`
}

type SectionConfig struct {
	Key      string   `mapstructure:"key" validate:"required"`
	Keywords []string `mapstructure:"keywords" validate:"required,min=1,dive,required"`
}

type FallbackConfig struct {
	// Seed makes the fallback score draw reproducible. Unset means a fresh draw per run.
	Seed *uint64 `mapstructure:"seed"`
}

type ServeConfig struct {
	Address        string `mapstructure:"address" validate:"omitempty,hostname_port"`
	MaxUploadBytes int64  `mapstructure:"max-upload-bytes" validate:"gte=0"`
}

var validate = validator.New()

func getConfig(v *viper.Viper) (*Config, error) {
	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := decodeTables(v, config); err != nil {
		return nil, err
	}

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return config, nil
}

func decodeTables(v *viper.Viper, config *Config) error {
	if raw := v.Get("sections"); raw != nil {
		if err := weakDecode(raw, &config.Sections); err != nil {
			return fmt.Errorf("decode sections: %w", err)
		}
	}

	if raw := v.Get("skills"); raw != nil {
		if err := weakDecode(raw, &config.Skills); err != nil {
			return fmt.Errorf("decode skills: %w", err)
		}
	}

	return nil
}

func weakDecode(input, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

func (c *Config) table() (sections.Table, error) {
	if len(c.Sections) == 0 {
		return sections.DefaultTable(), nil
	}

	headers := make([]sections.Header, 0, len(c.Sections))
	for _, s := range c.Sections {
		headers = append(headers, sections.Header{Key: sections.Key(s.Key), Keywords: s.Keywords})
	}
	return sections.NewTable(headers)
}

func (c *Config) vocabulary() (*skills.Vocabulary, error) {
	if len(c.Skills) == 0 {
		return skills.MustDefault(), nil
	}
	return skills.NewVocabulary(c.Skills)
}

func (c *Config) fallback() scoring.Fallback {
	if c.Fallback.Seed == nil {
		return scoring.RandomFallback(nil)
	}
	seed := *c.Fallback.Seed
	return scoring.RandomFallback(rand.NewPCG(seed, seed))
}

func (c *Config) serverConfig() server.Config {
	return server.Config{
		Address:        c.Serve.Address,
		MaxUploadBytes: c.Serve.MaxUploadBytes,
	}
}

func newAssembler(config *Config, logger *zap.Logger) (*report.Assembler, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}

	table, err := config.table()
	if err != nil {
		return nil, fmt.Errorf("building section table: %w", err)
	}

	vocabulary, err := config.vocabulary()
	if err != nil {
		return nil, fmt.Errorf("building skill vocabulary: %w", err)
	}

	return report.NewAssembler(report.Deps{
		Table:      table,
		Vocabulary: vocabulary,
		Scorer:     scoring.New(config.fallback()),
		Logger:     logger,
	}), nil
}
