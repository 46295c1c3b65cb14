package main

import (
	"fmt"
	"io"

	"github.com/tinytelemetry/gatepass/internal/model"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newPrefsCmd(cfg *appConfig) *cobra.Command {
	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect or clear stored preferences",
	}
	prefsCmd.AddCommand(newPrefsShowCmd(cfg))
	prefsCmd.AddCommand(newPrefsClearCmd(cfg))
	return prefsCmd
}

func newPrefsShowCmd(cfg *appConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print stored preferences for the configured origin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(*cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Entries()
			if err != nil {
				return err
			}
			renderPrefs(cmd.OutOrStdout(), cfg.Origin, entries)
			return nil
		},
	}
}

func renderPrefs(w io.Writer, origin string, entries []model.KeyValue) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintf(w, "(no preferences stored for %s)\n", origin)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Key", "Value", "Updated"})
	for _, e := range entries {
		updated := ""
		if !e.UpdatedAt.IsZero() {
			updated = e.UpdatedAt.Local().Format("2006-01-02 15:04:05")
		}
		t.AppendRow(table.Row{e.Key, e.Value, updated})
	}
	t.Render()
}

func newPrefsClearCmd(cfg *appConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "clear [key...]",
		Short: "Remove stored preferences",
		Long: `Removes the named keys. With no keys, removes the active menu and
sidebar state preferences.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := args
			if len(keys) == 0 {
				keys = []string{model.KeyActiveMenu, model.KeySidebarState}
			}

			store, err := openStore(*cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			for _, k := range keys {
				if err := store.Remove(k); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", k)
			}
			return nil
		},
	}
}
