package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/i474232898/atmosphere-weather/internal/config"
	"github.com/i474232898/atmosphere-weather/internal/insights"
	"github.com/i474232898/atmosphere-weather/internal/observability"
	"github.com/i474232898/atmosphere-weather/internal/weather"
)

var lookupFlags struct {
	city         string
	name         string
	lat          float64
	lon          float64
	withInsights bool
	lang         string
}

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Print the weather snapshot for one location as JSON",
	Long: `Print the weather snapshot for one location as JSON.

The snapshot is also written to the configured store; lookup waits for that
write (bounded by a 5s timeout) before closing the store connection.`,
	Example: `  atmosphere lookup --city Paris
  atmosphere lookup --lat 48.8566 --lon 2.3522 --name Home --insights --lang fr`,
	RunE: runLookup,
}

func init() {
	f := lookupCmd.Flags()
	f.StringVar(&lookupFlags.city, "city", "", "place name to search for")
	f.StringVar(&lookupFlags.name, "name", "", "display name to use with --lat/--lon")
	f.Float64Var(&lookupFlags.lat, "lat", 0, "latitude")
	f.Float64Var(&lookupFlags.lon, "lon", 0, "longitude")
	f.BoolVar(&lookupFlags.withInsights, "insights", false, "also generate AI insights")
	f.StringVar(&lookupFlags.lang, "lang", "en", "language for AI insights")
	lookupCmd.MarkFlagsRequiredTogether("lat", "lon")
	lookupCmd.MarkFlagsMutuallyExclusive("city", "lat")

	rootCmd.AddCommand(lookupCmd)
}

func lookupRequest(cmd *cobra.Command) (weather.Request, error) {
	if cmd.Flags().Changed("lat") {
		at := weather.Coordinates{Lat: lookupFlags.lat, Lon: lookupFlags.lon}
		if at.Lat < -90 || at.Lat > 90 || at.Lon < -180 || at.Lon > 180 {
			return weather.Request{}, errors.New("coordinates out of range")
		}
		return weather.Request{Coordinates: &at, Name: lookupFlags.name}, nil
	}
	return weather.Request{Name: lookupFlags.city}, nil
}

func runLookup(cmd *cobra.Command, _ []string) error {
	req, err := lookupRequest(cmd)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat).With("lookup_id", uuid.NewString())
	ctx := cmd.Context()

	comps, err := buildComponents(ctx, cfg, observability.NewMetrics(), logger)
	if err != nil {
		return err
	}
	defer comps.close(ctx)
	defer comps.service.WaitForWrites()

	snapshot, err := comps.service.Resolve(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, weather.ErrNotFound):
			return errors.New("location not found")
		case errors.Is(err, weather.ErrDataSync):
			return errors.New("weather data is temporarily unavailable")
		default:
			return err
		}
	}

	out := struct {
		Snapshot weather.Snapshot   `json:"snapshot"`
		Insights *insights.Insights `json:"insights,omitempty"`
	}{Snapshot: snapshot}
	if lookupFlags.withInsights {
		in := comps.insights.Generate(ctx, snapshot, lookupFlags.lang)
		out.Insights = &in
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
