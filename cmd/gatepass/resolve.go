package main

import (
	"fmt"
	"strings"

	"github.com/tinytelemetry/gatepass/internal/nav"
	"github.com/tinytelemetry/gatepass/internal/page"

	"github.com/spf13/cobra"
)

func newResolveCmd(cfg *appConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <location>",
		Short: "Resolve the active menu entry for a location",
		Long: `Runs one page load at the given location against the stored preference
and prints the result. The resolved preference is persisted, as the
dashboard would do.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := page.Load(cfg.PageFile)
			if err != nil {
				return err
			}
			store, err := openStore(*cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			selection, err := nav.ParseSelectionMode(cfg.Selection)
			if err != nil {
				return err
			}

			entries := snap.Entries()
			machine := nav.NewMachine(store, entries, selection)
			res, err := machine.Load(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "location:   %s\n", nav.Normalize(args[0]))
			_, _ = fmt.Fprintf(out, "source:     %s\n", res.Source)
			_, _ = fmt.Fprintf(out, "preference: %s\n", res.Preference)
			if len(res.Active) == 0 {
				_, _ = fmt.Fprintln(out, "active:     (none)")
				return nil
			}
			names := make([]string, 0, len(res.Active))
			for _, i := range res.Active {
				names = append(names, fmt.Sprintf("%d:%s", i, describeEntry(entries[i])))
			}
			_, _ = fmt.Fprintf(out, "active:     %s\n", strings.Join(names, ", "))
			return nil
		},
	}
}

func describeEntry(e nav.Entry) string {
	switch {
	case e.MenuID != "":
		return e.MenuID
	case e.Label != "":
		return e.Label
	}
	return e.LinkPath
}
