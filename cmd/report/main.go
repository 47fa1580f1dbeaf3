package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"tdpulse/internal/config"
	"tdpulse/internal/exporter"
	"tdpulse/internal/infrastructure"
	"tdpulse/internal/services"
	"tdpulse/internal/store"
)

const dateLayout = "02/01/2006"

func main() {
	input := flag.String("input", "", "path to the engagement CSV (defaults to the configured dataset)")
	outputDir := flag.String("out", "", "output directory for the report (defaults to the configured exports dir)")
	format := flag.String("format", "xlsx", "report format: csv or xlsx")
	from := flag.String("from", "", "only include sessions on or after this date (DD/MM/YYYY)")
	to := flag.String("to", "", "only include sessions on or before this date (DD/MM/YYYY)")
	course := flag.String("course", "", "only include sessions for this course")
	director := flag.String("director", "", "only include participants reporting to this director")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	if *input == "" {
		*input = cfg.Paths.DatasetFile
	}
	if *outputDir == "" {
		*outputDir = cfg.Paths.ExportsDir
	}

	filter, err := buildFilter(*from, *to, *course, *director)
	if err != nil {
		logger.Error("Invalid filter", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	svc := services.NewDashboardService(store.New(*input, logger), logger)
	overview, err := svc.Overview(ctx, filter)
	if err != nil {
		logger.Error("Failed to aggregate dataset", "input", *input, "error", err)
		os.Exit(1)
	}

	prefix := fmt.Sprintf("engagement_%s", time.Now().Format("2006-01-02"))
	switch *format {
	case "csv":
		paths, err := exporter.NewCSVWriter(*outputDir, logger).WriteOverview(overview, prefix)
		if err != nil {
			logger.Error("Failed to write CSV report", "error", err)
			os.Exit(1)
		}
		for _, p := range paths {
			fmt.Println(p)
		}
	case "xlsx":
		path, err := exporter.NewExcelWriter(*outputDir, logger).WriteOverview(overview, prefix)
		if err != nil {
			logger.Error("Failed to write Excel report", "error", err)
			os.Exit(1)
		}
		fmt.Println(path)
	default:
		logger.Error("Unknown format", "format", *format)
		os.Exit(1)
	}
}

func buildFilter(from, to, course, director string) (services.Filter, error) {
	var f services.Filter
	if from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			return f, fmt.Errorf("invalid -from date %q: %w", from, err)
		}
		f.From = &t
	}
	if to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			return f, fmt.Errorf("invalid -to date %q: %w", to, err)
		}
		f.To = &t
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return f, fmt.Errorf("-to date precedes -from date")
	}
	f.Course = course
	f.Director = director
	return f, nil
}
