package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/username/workhour-report/internal/calendar"
	"github.com/username/workhour-report/internal/config"
	"github.com/username/workhour-report/internal/render"
	"github.com/username/workhour-report/internal/report"
	"github.com/username/workhour-report/pkg/random"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	region     string
	cfg        *config.Config
	logger     *zap.Logger = zap.NewNop()
)

type reportFlags struct {
	institution string
	signature   string
	format      string
	outputDir   string
	note        string
	minHours    int
	seed        int64
	dryRun      bool
}

func main() {
	rootCmd := newRootCmd()

	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "workhour-report FIRSTNAME LASTNAME HOURS YEAR MONTH",
		Short: "Create workhour reports",
		Long: "Spread the contracted monthly hours over randomly chosen workdays of a month\n" +
			"and write the printable timesheet (Erfassung der geleisteten Arbeitszeiten).",
		Args:          cobra.ExactArgs(5),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				initLogger("warn")
				return err
			}

			if cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger(cfg.Log.Level) // Fallback to console
				}
			} else {
				initLogger(cfg.Log.Level)
			}

			if cmd.Flags().Changed("region") {
				cfg.Calendar.Region = region
			}
			cfg.Calendar.Region = strings.ToUpper(cfg.Calendar.Region)
			if !calendar.IsKnownRegion(cfg.Calendar.Region) {
				return fmt.Errorf("unknown region %q, known regions: %s",
					cfg.Calendar.Region, strings.Join(calendar.Regions(), ", "))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.apply(cmd, cfg)

			req, err := parseRequest(args)
			if err != nil {
				return err
			}
			req.Institution = cfg.Report.Institution

			return runReport(cfg, req, flags.dryRun)
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: config.yaml in ., $HOME/.workhour-report, /etc/workhour-report)")
	cmd.PersistentFlags().StringVar(&region, "region", calendar.DefaultRegion, "German state whose public holidays apply")

	cmd.Flags().StringVar(&flags.institution, "institution", config.DefaultInstitution, "Department / organisational unit")
	cmd.Flags().StringVar(&flags.signature, "signature", "", "Signature image; relative paths are resolved against the program directory")
	cmd.Flags().StringVar(&flags.format, "format", render.FormatPDF, "Output format: pdf, html or xlsx")
	cmd.Flags().StringVar(&flags.outputDir, "output-dir", ".", "Directory the report is written to")
	cmd.Flags().StringVar(&flags.note, "note", string(report.NoteDay), "Content of the 'aufgezeichnet am' column: day, generated or none")
	cmd.Flags().IntVar(&flags.minHours, "min-hours", report.DefaultMinHoursPerDay, "Hours booked per selected day")
	cmd.Flags().Int64Var(&flags.seed, "seed", 0, "Random seed for a reproducible selection (0 = random)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print the table instead of writing a file")

	cmd.AddCommand(workdaysCmd())

	return cmd
}

// apply copies explicitly set flags over the config values
func (f *reportFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("institution") {
		cfg.Report.Institution = f.institution
	}
	if changed("signature") {
		cfg.Report.Signature = f.signature
	}
	if changed("format") {
		cfg.Report.Format = f.format
	}
	if changed("output-dir") {
		cfg.Report.OutputDir = f.outputDir
	}
	if changed("note") {
		cfg.Report.Note = f.note
	}
	if changed("min-hours") {
		cfg.Report.MinHoursPerDay = f.minHours
	}
	if changed("seed") {
		cfg.Report.Seed = f.seed
	}
}

func parseRequest(args []string) (report.Request, error) {
	req := report.Request{
		Employee: report.Employee{FirstName: args[0], LastName: args[1]},
	}

	fields := []struct {
		name string
		dst  *int
		raw  string
	}{
		{"HOURS", &req.TotalHours, args[2]},
		{"YEAR", &req.Year, args[3]},
		{"MONTH", &req.Month, args[4]},
	}
	for _, f := range fields {
		v, err := strconv.Atoi(f.raw)
		if err != nil {
			return req, fmt.Errorf("invalid %s %q: must be an integer", f.name, f.raw)
		}
		*f.dst = v
	}

	return req, nil
}

func runReport(cfg *config.Config, req report.Request, dryRun bool) error {
	format, err := render.ParseFormat(cfg.Report.Format)
	if err != nil {
		return err
	}
	note, err := report.ParseNoteMode(cfg.Report.Note)
	if err != nil {
		return err
	}
	// Flags may have changed values that were valid in the config file
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Fail early when the converter is missing, before any work is done
	var pdf *render.PDFConverter
	if format == render.FormatPDF && !dryRun {
		pdf, err = render.NewPDFConverter(cfg.PDF.Binary, logger)
		if err != nil {
			return err
		}
	}

	if cfg.Report.Signature != "" {
		baseDir, err := render.ExecutableDir()
		if err != nil {
			return err
		}
		req.SignaturePath = render.ResolveSignaturePath(cfg.Report.Signature, baseDir)
		logger.Info("Using signature", zap.String("path", req.SignaturePath))
	}

	source, err := initializeHolidaySource(cfg)
	if err != nil {
		return err
	}
	cal := calendar.NewRegionCalendar(source, cfg.Calendar.Region, logger)

	seed := cfg.Report.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("Random seed", zap.Int64("seed", seed))

	gen := report.NewGenerator(cal, random.New(seed), report.Options{
		MinHoursPerDay: cfg.Report.MinHoursPerDay,
		Region:         cfg.Calendar.Region,
		Tabulate: report.TabulateOptions{
			BeginHour:      cfg.Report.BeginHour,
			PauseThreshold: cfg.Report.PauseThreshold,
			Note:           note,
		},
	}, logger)

	rep, err := gen.Generate(req)
	if err != nil {
		return err
	}

	if dryRun {
		color.New(color.FgCyan, color.Bold).Println("[DRY RUN] No report was written")
		fmt.Println()
		fmt.Print(render.RenderPreview(rep))
		return nil
	}

	outPath := filepath.Join(cfg.Report.OutputDir, render.OutputFilename(req.Employee.LastName, req.Year, req.Month, format))

	if format == render.FormatXLSX {
		if err := ensureDir(cfg.Report.OutputDir); err != nil {
			return err
		}
		if err := render.NewXLSXWriter(logger).Write(outPath, rep); err != nil {
			return err
		}
	} else {
		renderer, err := render.NewHTMLRenderer(cfg.Report.Logo, logger)
		if err != nil {
			return err
		}
		html, err := renderer.RenderBytes(rep)
		if err != nil {
			return err
		}

		var conv render.Converter = render.HTMLWriter{}
		if pdf != nil {
			conv = pdf
		}
		if err := ensureDir(cfg.Report.OutputDir); err != nil {
			return err
		}
		if err := conv.Convert(html, outPath); err != nil {
			return err
		}
	}

	color.New(color.FgGreen, color.Bold).Printf("Report written to %q\n", outPath)
	return nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

func initializeHolidaySource(cfg *config.Config) (calendar.HolidaySource, error) {
	var source calendar.HolidaySource

	switch cfg.Calendar.Source {
	case "", "builtin":
		logger.Info("Using builtin holiday calendar")
		source = calendar.NewBuiltinSource()

	case "api":
		logger.Info("Using holiday API", zap.String("url", cfg.Calendar.APIURL))
		api := calendar.NewAPISource(cfg.Calendar.APIURL, cfg.Calendar.GetCacheTTL(), logger)
		source = calendar.NewFallbackSource(api, calendar.NewBuiltinSource(), logger)

	default:
		return nil, fmt.Errorf("unknown calendar source: %s", cfg.Calendar.Source)
	}

	if cfg.Calendar.ExtraFile != "" {
		extra := calendar.NewFileSource(cfg.Calendar.ExtraFile, logger)
		if err := extra.Load(); err != nil {
			return nil, fmt.Errorf("failed to load extra closing days: %w", err)
		}
		source = calendar.NewUnionSource(source, extra)
	}

	return source, nil
}

func initLogger(level string) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.WarnLevel
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
