package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Napster7-0/tp2/internal/cache"
	"github.com/Napster7-0/tp2/internal/config"
	"github.com/Napster7-0/tp2/internal/cpm"
	"github.com/Napster7-0/tp2/internal/graph"
	"github.com/Napster7-0/tp2/internal/loader"
	"github.com/Napster7-0/tp2/internal/reporter"
	"github.com/Napster7-0/tp2/internal/task"
	"github.com/Napster7-0/tp2/internal/ui"
)

var (
	flagConfig  string
	flagVerbose bool
	flagJSON    bool
	flagNoColor bool
	flagWaves   bool
	flagForce   bool

	cfg    *config.Config
	logger *slog.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "critpath",
		Short: "Compute critical path schedules for task projects",
		Long: `Critpath reads a project of interdependent tasks from a YAML or JSON file,
computes earliest and latest start/finish times, total and free slack for
every task, and reports the project duration and its critical tasks.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logLevel := slog.LevelInfo
			if flagVerbose {
				logLevel = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: logLevel,
			}))

			v := config.NewViper(flagConfig)
			if f := cmd.Flags().Lookup("waves"); f != nil {
				if err := v.BindPFlag("show_waves", f); err != nil {
					return err
				}
			}
			var err error
			cfg, err = config.FromViper(v)
			if err != nil {
				return err
			}
			if used := v.ConfigFileUsed(); used != "" {
				logger.Debug("using config file", "path", used)
			}

			if flagJSON {
				cfg.Format = config.FormatJSON
			}
			if flagNoColor {
				cfg.Color = false
			}
			ui.SetColor(cfg.Color)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default is ./critpath.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Machine-readable JSON output")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(scheduleCmd())
	rootCmd.AddCommand(metricsCmd())
	rootCmd.AddCommand(wavesCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(initCmd())

	return rootCmd
}

// loadAndSchedule reads the project files and computes their schedules
// concurrently. Projects are returned in argument order.
func loadAndSchedule(ctx context.Context, paths []string) ([]*loader.Project, []*cpm.Schedule, error) {
	projects, err := loader.New(logger).LoadAll(ctx, paths)
	if err != nil {
		return nil, nil, fmt.Errorf("load projects: %w", err)
	}

	sets := make([][]task.Task, len(projects))
	for i, p := range projects {
		sets[i] = p.Tasks
	}

	results := cache.New(cfg.CacheSize).ComputeAll(ctx, sets, cfg.MaxParallel)
	schedules := make([]*cpm.Schedule, len(results))
	for i, res := range results {
		if res.Err != nil {
			return nil, nil, fmt.Errorf("schedule %s: %w", projects[i].Path, res.Err)
		}
		logger.Debug("computed schedule", "project", projects[i].Name,
			"tasks", len(projects[i].Tasks), "duration", res.Schedule.TotalDuration)
		schedules[i] = res.Schedule
	}
	return projects, schedules, nil
}

func newReporter(p *loader.Project, s *cpm.Schedule) *reporter.Reporter {
	rpt := reporter.New(p.Name, s)
	rpt.Separator = cfg.Separator
	return rpt
}

func scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule <project-file>...",
		Short: "Print the full CPM schedule table and project metrics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, schedules, err := loadAndSchedule(cmd.Context(), args)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if cfg.Format == config.FormatJSON {
				outs := make([]reporter.Output, len(projects))
				for i := range projects {
					outs[i] = newReporter(projects[i], schedules[i]).Build()
				}
				if len(outs) == 1 {
					return outputJSON(w, outs[0])
				}
				return outputJSON(w, outs)
			}

			for i := range projects {
				rpt := newReporter(projects[i], schedules[i])
				rpt.PrintTable(w)
				rpt.PrintMetrics(w)
				if cfg.ShowWaves {
					fmt.Fprintln(w)
					rpt.PrintWaves(w)
				}
				if i < len(projects)-1 {
					fmt.Fprintln(w)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagWaves, "waves", false, "Also list tasks grouped by earliest start")

	return cmd
}

func metricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics <project-file>",
		Short: "Print project duration and critical tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, schedules, err := loadAndSchedule(cmd.Context(), args)
			if err != nil {
				return err
			}

			if cfg.Format == config.FormatJSON {
				return outputJSON(cmd.OutOrStdout(), schedules[0].Metrics())
			}
			rpt := reporter.New("", schedules[0])
			rpt.Separator = cfg.Separator
			rpt.PrintMetrics(cmd.OutOrStdout())
			return nil
		},
	}
}

func wavesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "waves <project-file>",
		Short: "List tasks grouped by earliest start",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, schedules, err := loadAndSchedule(cmd.Context(), args)
			if err != nil {
				return err
			}

			if cfg.Format == config.FormatJSON {
				return outputJSON(cmd.OutOrStdout(), schedules[0].Waves)
			}
			newReporter(projects[0], schedules[0]).PrintWaves(cmd.OutOrStdout())
			return nil
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <project-file>",
		Short: "Check a project for structural errors without scheduling it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loader.New(logger).LoadFile(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			g, err := graph.Build(p.Tasks)
			if err != nil {
				if errors.Is(err, graph.ErrInvalidGraph) {
					// Already reported on stdout; keep the exit status only.
					fmt.Fprintf(w, "%s %s: %v\n", ui.Red("✗"), p.Name, err)
					cmd.SilenceErrors = true
				}
				return fmt.Errorf("validate %s: %w", args[0], err)
			}

			fmt.Fprintf(w, "%s %s: %d tasks, %d initial, %d terminal\n",
				ui.Green("✓"), p.Name, g.TaskCount(), len(g.InitialTasks()), len(g.TerminalTasks()))
			return nil
		},
	}
}

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [project-file]",
		Short: "Write an example project file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "project.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !flagForce {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			data, err := yaml.Marshal(exampleProject())
			if err != nil {
				return fmt.Errorf("encode example project: %w", err)
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s\n", ui.BoldGreen("✓"), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing file")

	return cmd
}

func exampleProject() *loader.Project {
	set := task.NewSet()
	a := set.Add("Gather requirements", 2, "Interview stakeholders")
	b := set.Add("Design", 3, "", a.ID)
	c := set.Add("Order materials", 1, "", a.ID)
	d := set.Add("Build", 4, "", b.ID, c.ID)
	set.Add("Review", 1, "Sign-off with stakeholders", d.ID)
	return &loader.Project{Name: "Example", Tasks: set.Tasks()}
}

func outputJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(data))
	return nil
}
