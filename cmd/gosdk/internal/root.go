package internal

import (
	"log"
	"os"

	xlog "github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/buildforge/gosdk/internal/settings"
)

const defaultConfigFile = "gosdk.yaml"

var (
	flagVerbose   bool
	flagConfig    string
	flagGoVersion string
	flagPlatforms string
	flagPackage   string
	flagCacheRoot string
	flagForce     bool
)

var rootCmd = &cobra.Command{
	Use:   "gosdk",
	Short: "gosdk provisions Go toolchains for build pipelines",
	Long: `gosdk downloads, builds and validates a Go toolchain (bootstrap compiler,
versioned sources, per-platform builds and helper tools) so that a later
build phase can rely on it.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			xlog.SetOutputLevel(xlog.Ldebug)
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVarP(&flagConfig, "config", "c", "", "Settings file (default "+defaultConfigFile+" if present)")
	flags.StringVar(&flagGoVersion, "go-version", "", "Toolchain version to provision, e.g. 1.20.3")
	flags.StringVar(&flagPlatforms, "platforms", "", "Comma-separated target platforms, e.g. linux-amd64,windows-amd64")
	flags.StringVar(&flagPackage, "package", "", "Import path of the package being built")
	flags.StringVar(&flagCacheRoot, "cache-root", "", "Directory holding downloaded and built toolchains")
	flags.BoolVar(&flagForce, "force", false, "Rebuild per-platform toolchains even when already built")
}

// loadSettings resolves settings in layers: built-in defaults, GOSDK_*
// environment variables, the settings file, then command line flags. The
// result is validated.
func loadSettings() (*settings.Settings, error) {
	s := settings.Default()
	s.FromEnv()

	path := flagConfig
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	if path != "" {
		if err := s.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if flagGoVersion != "" {
		s.Toolchain.GoVersion = flagGoVersion
	}
	if flagPlatforms != "" {
		s.Build.Platforms = flagPlatforms
	}
	if flagPackage != "" {
		s.Build.PackageName = flagPackage
	}
	if flagCacheRoot != "" {
		s.Build.CacheRoot = flagCacheRoot
	}
	if flagForce {
		s.Toolchain.ForceRebuild = true
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}
