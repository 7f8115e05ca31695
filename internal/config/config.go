package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/timetable/internal/constants"
	apperr "github.com/julianstephens/timetable/internal/errors"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/utils"
	"github.com/julianstephens/timetable/internal/validation"
)

const envPrefix = "TIMETABLE"

// Runtime is the resolved configuration of one timetable process
type Runtime struct {
	ConfigFile string
	Timetable  models.TimetableConfig
	DBPath     string
	LogDir     string
	Debug      bool
}

// fileConfig is the on-disk YAML layout
type fileConfig struct {
	Days        []string `yaml:"days"`
	Months      []string `yaml:"months"`
	TimeFrom    string   `yaml:"time_from"`
	TimeTo      string   `yaml:"time_to"`
	Is24Hour    bool     `yaml:"is_24_hour"`
	DisplayType string   `yaml:"display_type"`
	DBPath      string   `yaml:"db_path,omitempty"`
	LogDir      string   `yaml:"log_dir,omitempty"`
	Debug       bool     `yaml:"debug"`
}

// Default returns the runtime used when no configuration file exists
func Default(path string) Runtime {
	path = ExpandHome(path)
	dir := filepath.Dir(path)
	return Runtime{
		ConfigFile: path,
		Timetable:  models.DefaultConfig(),
		DBPath:     filepath.Join(dir, constants.DefaultDBName),
		LogDir:     filepath.Join(dir, "logs"),
	}
}

// Load reads the YAML file at path, overlays TIMETABLE_* environment variables and
// validates the result. A missing file is not an error.
func Load(path string) (Runtime, error) {
	rt := Default(path)
	def := toFile(rt)

	v := viper.New()
	v.SetConfigFile(rt.ConfigFile)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("days", def.Days)
	v.SetDefault("months", def.Months)
	v.SetDefault("time_from", def.TimeFrom)
	v.SetDefault("time_to", def.TimeTo)
	v.SetDefault("is_24_hour", def.Is24Hour)
	v.SetDefault("display_type", def.DisplayType)
	v.SetDefault("db_path", rt.DBPath)
	v.SetDefault("log_dir", rt.LogDir)
	v.SetDefault("debug", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return Runtime{}, fmt.Errorf("failed to read config %s: %w", rt.ConfigFile, err)
		}
	}

	cfg, err := fromFile(fileConfig{
		Days:        listValue(v, "days"),
		Months:      listValue(v, "months"),
		TimeFrom:    v.GetString("time_from"),
		TimeTo:      v.GetString("time_to"),
		Is24Hour:    v.GetBool("is_24_hour"),
		DisplayType: v.GetString("display_type"),
	})
	if err != nil {
		return Runtime{}, err
	}
	result := validation.ValidateConfig(cfg)
	if err := result.Err(); err != nil {
		return Runtime{}, err
	}

	rt.Timetable = cfg
	rt.DBPath = ExpandHome(strings.TrimSpace(v.GetString("db_path")))
	rt.LogDir = ExpandHome(strings.TrimSpace(v.GetString("log_dir")))
	rt.Debug = v.GetBool("debug")
	return rt, nil
}

// Save writes rt to path as YAML, creating the directory if needed
func Save(path string, rt Runtime) error {
	path = ExpandHome(path)
	data, err := yaml.Marshal(toFile(rt))
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// listValue accepts YAML lists as well as comma or space separated strings from the environment
func listValue(v *viper.Viper, key string) []string {
	var out []string
	for _, item := range v.GetStringSlice(key) {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func toFile(rt Runtime) fileConfig {
	cfg := rt.Timetable
	fc := fileConfig{
		TimeFrom:    utils.FormatTimeOfDay(cfg.TimeFrom, true),
		TimeTo:      utils.FormatTimeOfDay(cfg.TimeTo, true),
		Is24Hour:    cfg.Is24HourFormat,
		DisplayType: string(cfg.DisplayType),
		DBPath:      rt.DBPath,
		LogDir:      rt.LogDir,
		Debug:       rt.Debug,
	}
	for _, d := range cfg.Days {
		fc.Days = append(fc.Days, strings.ToLower(d.String()))
	}
	for _, m := range cfg.Months {
		fc.Months = append(fc.Months, strings.ToLower(m.String()))
	}
	return fc
}

func fromFile(fc fileConfig) (models.TimetableConfig, error) {
	var (
		cfg  models.TimetableConfig
		errs []error
	)
	for _, name := range fc.Days {
		d, err := utils.ParseWeekday(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		cfg.Days = append(cfg.Days, d)
	}
	for _, name := range fc.Months {
		m, err := utils.ParseMonth(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		cfg.Months = append(cfg.Months, m)
	}

	var err error
	if cfg.TimeFrom, err = utils.ParseTimeOfDay(fc.TimeFrom); err != nil {
		errs = append(errs, fmt.Errorf("time_from: %w", err))
	}
	if cfg.TimeTo, err = parseTimeTo(fc.TimeTo); err != nil {
		errs = append(errs, fmt.Errorf("time_to: %w", err))
	}
	if cfg.DisplayType, err = models.ParseDisplayType(fc.DisplayType); err != nil {
		errs = append(errs, err)
	}
	cfg.Is24HourFormat = fc.Is24Hour

	if len(errs) > 0 {
		return models.TimetableConfig{}, fmt.Errorf("%w: %w", apperr.ErrInvalidConfig, errors.Join(errs...))
	}
	return cfg, nil
}

// parseTimeTo also accepts 24:00 as the end of the day
func parseTimeTo(s string) (time.Duration, error) {
	if strings.TrimSpace(s) == "24:00" {
		return constants.EndOfDay, nil
	}
	return utils.ParseTimeOfDay(s)
}
