package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const envPrefix = "TAYTTOPAIKKA"

// LoadConfig reads the YAML config file (path may be empty to rely on
// defaults and environment only), applies TAYTTOPAIKKA_* environment
// overrides and validates the result.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
		}
	}

	var cfg Config
	decodeHook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
	)
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHook)); err != nil {
		return nil, errors.Wrap(err, "failed to decode configuration")
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("technicalParameters.listenAddress", ":8080")
	v.SetDefault("technicalParameters.basePath", "")
	v.SetDefault("technicalParameters.logDirectory", "logs")
	v.SetDefault("database.port", 5432)
	v.SetDefault("email.smtpPort", 587)
	v.SetDefault("email.fromAddress", "noreply@tayttopaikka.fi")
	v.SetDefault("email.adminEmail", "gdpr@tayttopaikka.fi")
	v.SetDefault("email.frontendUrl", "https://tayttopaikka.fi")
	v.SetDefault("cleanup.userCleanup.enabled", true)
	v.SetDefault("cleanup.userCleanup.schedule", "0 2 1 * *")
	v.SetDefault("cleanup.userCleanup.timezone", "Europe/Helsinki")
	v.SetDefault("monitoring.enabled", true)
}
