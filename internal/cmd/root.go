package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"modconfigs/internal/configstore"
	"modconfigs/internal/hostdir"
	"modconfigs/internal/logger"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// EnvBaseDir names the environment variable consulted for the host's base
// directory when no flag, config file or manifest provides one.
const EnvBaseDir = EnvPrefix + "_BASE_DIR"

// AppProvider lazily initializes the App on first use.
type AppProvider struct {
	once sync.Once
	app  *App
	err  error

	// Config captured from flags before Execute()
	Flags      *pflag.FlagSet
	JSONOutput bool
	Fs         afero.Fs
	Out        io.Writer
	Err        io.Writer
}

// Get returns the App, initializing it on first call.
func (p *AppProvider) Get() (*App, error) {
	p.once.Do(func() {
		if p.app == nil {
			p.app, p.err = p.init()
		}
	})
	return p.app, p.err
}

// NewTestProvider creates a provider pre-initialized with the given App.
// Used for testing commands with a test App.
func NewTestProvider(app *App) *AppProvider {
	return &AppProvider{
		app:        app,
		JSONOutput: app.JSON,
		Fs:         app.Fs,
		Out:        app.Out,
		Err:        app.Err,
	}
}

func (p *AppProvider) init() (*App, error) {
	settings, err := loadSettings(p.Flags)
	if err != nil {
		return nil, err
	}
	if settings.LogLevel != "" {
		logger.SetLevel(settings.LogLevel)
	}

	fs := p.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	resolver, err := newResolver(fs, settings)
	if err != nil {
		return nil, err
	}

	out := p.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := p.Err
	if errOut == nil {
		errOut = os.Stderr
	}

	return &App{
		Manager: configstore.New(resolver, configstore.WithFs(fs)),
		Fs:      fs,
		Out:     out,
		Err:     errOut,
		JSON:    settings.JSON || p.JSONOutput,
	}, nil
}

// newResolver picks how the host's base directory is found: an explicit
// directory, then a host manifest, then MODCFG_BASE_DIR or the folder of the
// running executable.
func newResolver(fs afero.Fs, s Settings) (hostdir.Resolver, error) {
	switch {
	case s.BaseDir != "":
		return hostdir.Static(s.BaseDir), nil
	case s.Manifest != "":
		m, err := hostdir.LoadManifest(fs, s.Manifest)
		if err != nil {
			return nil, fmt.Errorf("loading host manifest: %w", err)
		}
		return m.Resolver(s.Host), nil
	case s.Host != "":
		return nil, errors.New("--host requires --manifest")
	default:
		return hostdir.First(hostdir.Env(EnvBaseDir), hostdir.Executable()), nil
	}
}

// Execute runs the CLI.
func Execute() error {
	provider := &AppProvider{
		Out: os.Stdout,
		Err: os.Stderr,
	}

	rootCmd := newRootCmd(provider)
	return rootCmd.Execute()
}

// newRootCmd creates the root command with all subcommands.
func newRootCmd(provider *AppProvider) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "modcfg",
		Short: "Inspect and edit mod configuration files",
		Long: `modcfg reads and writes the JSON configuration files mods keep
under <host>/mods/Configs. Each file is a flat object of named integers,
numbers, strings, booleans and arrays of those.

The host directory comes from --base-dir, a host manifest (--manifest and
--host), MODCFG_BASE_DIR, or the folder containing modcfg itself.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags - read through viper so each may also come from the
	// environment or the config file.
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&provider.JSONOutput, "json", false, "Output in JSON format")
	flags.String("base-dir", "", "Host base directory (contains mods/Configs)")
	flags.String("manifest", "", "YAML manifest mapping host ids to directories")
	flags.String("host", "", "Host id to look up in the manifest (default: manifest default)")
	flags.String("config", "", "Config file for modcfg itself")
	flags.String("log-level", "", "Log level: debug, info, warn, error, off")
	provider.Flags = flags

	rootCmd.AddCommand(newDirCmd(provider))
	rootCmd.AddCommand(newListCmd(provider))
	rootCmd.AddCommand(newShowCmd(provider))
	rootCmd.AddCommand(newGetCmd(provider))
	rootCmd.AddCommand(newSetCmd(provider))
	rootCmd.AddCommand(newUnsetCmd(provider))
	rootCmd.AddCommand(newVersionCmd(provider))

	return rootCmd
}
