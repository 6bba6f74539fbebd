// Package cmd реализует интерфейс командной строки.
//
// list - загрузить новости по сохранённым настройкам и напечатать их
// open - открыть статью из строки N в системном браузере
// settings - показать или изменить поисковый запрос и порядок сортировки
// serve - отдавать список новостей по HTTP
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	offline bool
)

var rootCmd = &cobra.Command{
	Use:          "newsreader",
	Short:        "Search news and open articles in the browser",
	SilenceUsage: true,
}

// Execute добавляет подкоманды к корневой команде и запускает её.
func Execute() {
	setupCLI()
	if errExecute := rootCmd.Execute(); errExecute != nil {
		os.Exit(1)
	}
}

func setupCLI() {
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(openCmd())
	rootCmd.AddCommand(settingsCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "newsreader.json", "config file")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "treat the network as unavailable")
}
