package internal

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the resolved toolchain settings",
	Long: `Env resolves and validates the configuration the same way prepare does
and prints the derived values without provisioning anything.`,
	Args: cobra.NoArgs,
	RunE: runEnv,
}

func init() {
	rootCmd.AddCommand(envCmd)
}

func runEnv(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	platforms := make([]string, 0, len(s.TargetList))
	for _, p := range s.TargetList {
		platforms = append(platforms, p.String())
	}

	fmt.Printf("Package:    %s\n", s.Build.PackageName)
	fmt.Printf("Platforms:  %s\n", strings.Join(platforms, ", "))
	fmt.Printf("Host:       %s\n", s.Host)
	fmt.Printf("Go version: %s\n", s.Toolchain.GoVersion)
	fmt.Printf("GOROOT:     %s (GOROOT_BOOTSTRAP: %s)\n", s.Toolchain.Root, s.Toolchain.BootstrapRoot)
	fmt.Printf("Cache root: %s\n", s.Build.CacheRoot)
	if s.WorkspaceRoot != "" {
		fmt.Printf("Workspace:  %s\n", s.WorkspaceRoot)
	}
	return nil
}
