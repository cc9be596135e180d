package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skyreserve/skyreserve/internal/version"
)

// versionCmd prints build information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	// Version is useful even when configuration is broken.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		if short, _ := cmd.Flags().GetBool("short"); short {
			fmt.Println(version.Short())
			return nil
		}
		fmt.Println(version.String())
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("short", false, "print only the version number")
	rootCmd.AddCommand(versionCmd)
}
