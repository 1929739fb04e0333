package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable modcfg reads, so the
// --base-dir flag can also be given as MODCFG_BASE_DIR.
const EnvPrefix = "MODCFG"

// Settings is the resolved CLI configuration: flags first, then
// environment, then the optional config file.
type Settings struct {
	BaseDir  string
	Manifest string
	Host     string
	LogLevel string
	JSON     bool
}

// loadSettings merges flags, MODCFG_* environment variables and the config
// file named by --config (or MODCFG_CONFIG).
func loadSettings(flags *pflag.FlagSet) (Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Settings{}, fmt.Errorf("binding flags: %w", err)
		}
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	return Settings{
		BaseDir:  v.GetString("base-dir"),
		Manifest: v.GetString("manifest"),
		Host:     v.GetString("host"),
		LogLevel: v.GetString("log-level"),
		JSON:     v.GetBool("json"),
	}, nil
}
