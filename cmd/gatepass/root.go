package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. The root command runs the dashboard.
func newRootCmd() *cobra.Command {
	var cfg appConfig

	rootCmd := &cobra.Command{
		Use:   "gatepass",
		Short: "Gatepass - admin dashboard for the vehicle pass office",
		Long: `Gatepass renders the pass office admin dashboard in the terminal.

The sidebar highlights the menu entry for the current location and falls
back to the last entry you picked. The user list filters as you type.`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}
			configPath, _ := cmd.Flags().GetString("config")
			loaded, err := loadConfig(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cfg)
		},
		SilenceUsage: true,
	}

	bindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newResolveCmd(&cfg))
	rootCmd.AddCommand(newPrefsCmd(&cfg))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Gatepass - Admin Dashboard\n")
			_, _ = fmt.Fprintf(out, "  Version:    %s\n", version)
			_, _ = fmt.Fprintf(out, "  Commit:     %s\n", commit)
			_, _ = fmt.Fprintf(out, "  Built:      %s\n", buildTime)
			_, _ = fmt.Fprintf(out, "  Go version: %s\n", goVersion)
		},
	}
}
