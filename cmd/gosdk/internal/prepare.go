package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buildforge/gosdk/internal/toolchain"
)

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Download and build the toolchain if required",
	Long: `Prepare validates the configuration and runs the provisioning phases in
order: bootstrap acquisition, source acquisition, host build, per-target
builds and helper tool builds. Phases whose on-disk state is already
current are skipped.`,
	Args: cobra.NoArgs,
	RunE: runPrepare,
}

func init() {
	rootCmd.AddCommand(prepareCmd)
}

func runPrepare(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	report, err := toolchain.New(s).Run(cmd.Context())
	if err != nil {
		return err
	}

	if report.UpToDate() {
		fmt.Println("toolchain is up to date")
		return nil
	}
	for _, phase := range report.Phases {
		state := "up to date"
		if phase.DidWork {
			state = "done"
		}
		fmt.Printf("%-14s %s\n", phase.Name, state)
	}
	return nil
}
