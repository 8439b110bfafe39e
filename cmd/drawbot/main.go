package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "drawbot",
	Short: "drawbot drives a pen plotter over a serial link",
	Long: `drawbot translates pen movements into GRBL or Marlin G-code and streams
it to the controller, pacing each line on the controller's "ok".`,
	SilenceUsage: true,
}

func main() {
	log.SetFlags(log.Lshortfile)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "machine_settings.yaml", "Machine settings file.")
	rootCmd.AddCommand(serveCmd, renderCmd, sendCmd)
}
