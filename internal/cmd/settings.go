package cmd

import (
	"fmt"
	"strings"

	"news_reader/internal/prefs"

	"github.com/spf13/cobra"
)

func settingsCmd() *cobra.Command {
	var (
		term    string
		orderBy string
		reset   bool
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the search term and sort order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			store := a.screen.Prefs()
			p, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}

			changed := reset || cmd.Flags().Changed("q") || cmd.Flags().Changed("order-by")
			if reset {
				p = prefs.Defaults()
			}
			if cmd.Flags().Changed("q") {
				p.SearchTerm = term
			}
			if cmd.Flags().Changed("order-by") {
				p.OrderBy = orderBy
			}
			if changed {
				if err := store.Save(cmd.Context(), p); err != nil {
					return err
				}
				p = p.Normalize()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "search term: %s\n", p.SearchTerm)
			fmt.Fprintf(out, "order by:    %s\n", p.OrderBy)
			return nil
		},
	}

	cmd.Flags().StringVar(&term, "q", "", "search term (empty restores the default)")
	cmd.Flags().StringVar(&orderBy, "order-by", prefs.DefaultOrderBy,
		"sort order: "+strings.Join(prefs.OrderValues, ", "))
	cmd.Flags().BoolVar(&reset, "reset", false, "restore default settings")
	return cmd
}
