package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"news_reader/internal/screen"

	"github.com/spf13/cobra"
)

// printScreen печатает список или, если он пуст, текст пустого состояния.
func printScreen(w io.Writer, sc *screen.Screen) error {
	if sc.List.Len() == 0 {
		_, msg := sc.Status()
		_, err := fmt.Fprintln(w, msg)
		return err
	}
	return sc.List.Render(w)
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Load news for the saved settings and print them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			_ = a.screen.Create(cmd.Context())
			return printScreen(cmd.OutOrStdout(), a.screen)
		},
	}
}

func openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <row>",
		Short: "Open the article in row N in the system browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := strconv.Atoi(args[0])
			if err != nil || row < 1 {
				return fmt.Errorf("invalid row: %s", args[0])
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			err = a.screen.Create(cmd.Context())
			if errors.Is(err, screen.ErrNoConnection) || a.screen.List.Len() == 0 {
				return printScreen(cmd.OutOrStdout(), a.screen)
			}

			// Строки в выводе list нумеруются с единицы.
			n, err := a.screen.Select(row - 1)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", n.URL)
			return err
		},
	}
}
