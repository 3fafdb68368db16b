package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "atmosphere",
	Short: "Atmosphere - consolidated weather snapshots",
	Long: `Atmosphere combines forecast, air-quality and geocoding providers
into a single weather snapshot per location.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
