package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/bigen/pkg/infrastructure/config"
	"github.com/vsinha/bigen/pkg/infrastructure/logging"
	"github.com/vsinha/bigen/pkg/interfaces/cli/commands"
)

// app carries what every subcommand needs once the root has run
type app struct {
	configPath string
	logLevel   string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "bigen",
		Short:         "Bevco BI star-schema snapshot generator",
		Long:          "Generates the Bevco executive dashboard star schema as CSV, checks its quality,\nloads it into a warehouse and publishes it.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", config.DefaultPath, "Path to the YAML config file")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output")

	root.AddCommand(
		a.generateCommand(),
		a.checkCommand(),
		a.loadCommand(),
		a.kpiCommand(),
		a.publishCommand(),
		a.scheduleCommand(),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) generateCommand() *cobra.Command {
	var flags struct {
		seed      int64
		start     string
		end       string
		salesFrom string
		rows      int
		output    string
		fallback  string
		precheck  bool
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the star-schema CSV snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			if f.Changed("seed") {
				a.cfg.Seed = flags.seed
			}
			if f.Changed("start") {
				a.cfg.StartDate = flags.start
			}
			if f.Changed("end") {
				a.cfg.EndDate = flags.end
			}
			if f.Changed("sales-from") {
				a.cfg.SalesFrom = flags.salesFrom
			}
			if f.Changed("rows") {
				a.cfg.SalesRows = flags.rows
			}
			if f.Changed("output") {
				a.cfg.OutputDir = flags.output
			}
			if f.Changed("fallback") {
				a.cfg.FallbackDir = flags.fallback
			}

			gen, err := a.generateConfig()
			if err != nil {
				return err
			}
			gen.Precheck = flags.precheck
			return commands.NewGenerateCommand(gen).Execute(cmd.Context())
		},
	}

	f := cmd.Flags()
	f.Int64Var(&flags.seed, "seed", 0, "Random seed, 0 picks one from the clock")
	f.StringVar(&flags.start, "start", "", "First date, YYYY-MM-DD")
	f.StringVar(&flags.end, "end", "", "Last date, YYYY-MM-DD")
	f.StringVar(&flags.salesFrom, "sales-from", "", "Earliest sales date, YYYY-MM-DD")
	f.IntVar(&flags.rows, "rows", 0, "Number of sales rows")
	f.StringVarP(&flags.output, "output", "o", "", "Output directory")
	f.StringVar(&flags.fallback, "fallback", "", "Directory used when the output directory is not writable")
	f.BoolVar(&flags.precheck, "precheck", false, "Check the snapshot in memory before writing it")
	return cmd
}

func (a *app) generateConfig() (commands.GenerateConfig, error) {
	gen, err := a.cfg.Generation()
	if err != nil {
		return commands.GenerateConfig{}, err
	}
	return commands.GenerateConfig{
		Generation:  gen,
		OutputDir:   a.cfg.OutputDir,
		FallbackDir: a.cfg.FallbackDir,
		Verbose:     a.verbose,
		Logger:      a.logger,
	}, nil
}

func (a *app) checkCommand() *cobra.Command {
	var dir, results, format string
	var allowWarnings bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the data quality checks over a snapshot directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("dir") {
				dir = a.cfg.OutputDir
			}
			if !cmd.Flags().Changed("results") {
				results = a.cfg.ResultsDir
			}
			return commands.NewCheckCommand(commands.CheckConfig{
				Dir:           dir,
				ResultsDir:    results,
				Format:        format,
				AllowWarnings: allowWarnings,
				Verbose:       a.verbose,
				Logger:        a.logger,
			}).Execute(cmd.Context())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&dir, "dir", "d", "", "Snapshot directory (defaults to output_dir)")
	f.StringVar(&results, "results", "", "Results directory (defaults to results_dir)")
	f.StringVarP(&format, "format", "f", "text", "Output format: text, json")
	f.BoolVar(&allowWarnings, "allow-warnings", false, "Only fail when a file is missing")
	return cmd
}

func (a *app) loadCommand() *cobra.Command {
	var dir, driver string

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load a snapshot directory into the warehouse, replacing its contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("dir") {
				dir = a.cfg.OutputDir
			}
			if cmd.Flags().Changed("driver") {
				a.cfg.Warehouse.Driver = driver
			}
			return commands.NewLoadCommand(commands.LoadConfig{
				Dir:       dir,
				Warehouse: a.cfg.Warehouse,
				Verbose:   a.verbose,
				Logger:    a.logger,
			}).Execute(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Snapshot directory (defaults to output_dir)")
	cmd.Flags().StringVar(&driver, "driver", "", "Warehouse driver: postgres, mysql")
	return cmd
}

func (a *app) kpiCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "kpi",
		Short: "Print the dashboard KPI summary of the loaded warehouse",
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.NewKPICommand(commands.KPIConfig{
				Warehouse: a.cfg.Warehouse,
				Format:    format,
				Logger:    a.logger,
			}).Execute(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json")
	return cmd
}

func (a *app) publishCommand() *cobra.Command {
	var dir, bucket string
	var compress bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload a snapshot directory to S3",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("dir") {
				dir = a.cfg.OutputDir
			}
			if cmd.Flags().Changed("bucket") {
				a.cfg.Publish.Bucket = bucket
			}
			if cmd.Flags().Changed("compress") {
				a.cfg.Publish.Compress = compress
			}
			return commands.NewPublishCommand(commands.PublishConfig{
				Dir:     dir,
				Publish: a.cfg.Publish,
				Verbose: a.verbose,
				Logger:  a.logger,
			}).Execute(cmd.Context())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&dir, "dir", "d", "", "Snapshot directory (defaults to output_dir)")
	f.StringVar(&bucket, "bucket", "", "Target bucket")
	f.BoolVar(&compress, "compress", false, "Upload snappy-framed objects")
	return cmd
}

func (a *app) scheduleCommand() *cobra.Command {
	var interval time.Duration
	var load bool

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Regenerate and check the snapshot on an interval",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("interval") {
				d, err := a.cfg.Schedule.Duration()
				if err != nil {
					return err
				}
				interval = d
			}

			gen, err := a.generateConfig()
			if err != nil {
				return err
			}
			return commands.NewScheduleCommand(commands.ScheduleConfig{
				Interval: interval,
				Generate: gen,
				Check: commands.CheckConfig{
					ResultsDir: a.cfg.ResultsDir,
					Verbose:    a.verbose,
					Logger:     a.logger,
				},
				Load:      load,
				Warehouse: a.cfg.Warehouse,
				Logger:    a.logger,
			}).Execute(cmd.Context())
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "Interval between runs (defaults to schedule.interval)")
	cmd.Flags().BoolVar(&load, "load", false, "Load each passing snapshot into the warehouse")
	return cmd
}
