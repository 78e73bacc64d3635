package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tempohq/daybrief/internal/app"
	"github.com/tempohq/daybrief/internal/cache"
	"github.com/tempohq/daybrief/internal/config"
	"github.com/tempohq/daybrief/internal/export"
	"github.com/tempohq/daybrief/internal/tempo"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "daybrief: %v\n", err)
		return 1
	}
	return 0
}

type rootFlags struct {
	configPath  string
	pollSeconds int
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "daybrief",
		Short: "Terminal client for the Tempo day-planning server",
		Long: `daybrief shows your Tempo briefing, timeline, tasks, health metrics
and week review in the terminal. Running it without a subcommand starts
the interactive TUI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), app.Options{
				ConfigPath: flags.configPath,
				PollEvery:  flags.pollSeconds,
			})
		},
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "override config path (optional)")
	root.PersistentFlags().IntVar(&flags.pollSeconds, "poll", 0, "refresh interval in seconds (optional)")

	root.AddCommand(newBriefCommand(flags))
	root.AddCommand(newExportCommand(flags))
	root.AddCommand(newStatusCommand(flags))
	root.AddCommand(newCacheCommand(flags))

	return root
}

// newClient loads the config and builds an API client for one-shot commands.
func newClient(flags *rootFlags) (*tempo.Client, config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, cfg, fmt.Errorf("load config: %w", err)
	}
	tempo.SetNaiveLocation(cfg.NaiveLocation())

	client, err := tempo.NewClient(cfg.Server, cfg.Token)
	if err != nil {
		return nil, cfg, fmt.Errorf("init tempo client: %w", err)
	}
	return client, cfg, nil
}

func newBriefCommand(flags *rootFlags) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "brief",
		Short: "Print the daily briefing and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient(flags)
			if err != nil {
				return err
			}
			if date == "" {
				date = app.Today()
			}

			briefing, err := client.FetchBriefing(cmd.Context(), date)
			if err != nil {
				return err
			}
			printBriefing(cmd, date, briefing)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date to brief (YYYY-MM-DD, default today)")
	return cmd
}

func printBriefing(cmd *cobra.Command, date string, b *tempo.DailyBriefing) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Briefing for %s\n", date)
	if b.Headline != "" {
		fmt.Fprintf(out, "  %s\n", b.Headline)
	}
	badge := b.Badge()
	line := []string{badge.Label}
	if b.CapacityScore != nil {
		line = append(line, fmt.Sprintf("capacity %.0f%%", scorePercent(*b.CapacityScore)))
	}
	fmt.Fprintf(out, "  %s\n", strings.Join(line, ", "))
	if b.Summary != "" {
		fmt.Fprintf(out, "\n  %s\n", b.Summary)
	}
	if len(b.Insights) > 0 {
		fmt.Fprintln(out)
		for _, in := range b.Insights {
			title := in.Title
			if title == "" {
				title = in.Kind
			}
			fmt.Fprintf(out, "  %s %s\n", in.Badge().Icon, title)
			if in.Detail != "" {
				fmt.Fprintf(out, "    %s\n", in.Detail)
			}
		}
	}
}

func scorePercent(f float64) float64 {
	if f <= 1 {
		return f * 100
	}
	return f
}

func newExportCommand(flags *rootFlags) *cobra.Command {
	var (
		date string
		out  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a day's events as an iCalendar file",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient(flags)
			if err != nil {
				return err
			}
			if date == "" {
				date = app.Today()
			}

			timeline, err := client.FetchTimeline(cmd.Context(), date)
			if err != nil {
				return err
			}

			data, err := export.ICS(timeline.Events())
			if err != nil {
				return err
			}

			if out == "" {
				out = "daybrief-" + date + ".ics"
			}
			if out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date to export (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&out, "out", "", "output path, - for stdout (default daybrief-<date>.ics)")
	return cmd
}

func newStatusCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show Tempo server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := newClient(flags)
			if err != nil {
				return err
			}

			status, err := client.FetchStatus(cmd.Context())
			if err != nil {
				return fmt.Errorf("reach %s: %w", cfg.Server, err)
			}

			out := cmd.OutOrStdout()
			health := "healthy"
			if !status.Healthy {
				health = "unhealthy"
			}
			fmt.Fprintf(out, "%s: %s (version %s, up %s)\n", cfg.Server, health, status.Version, status.Uptime)
			for _, comp := range status.Components {
				mark := "ok"
				if !comp.Ready {
					mark = "DOWN"
				}
				line := fmt.Sprintf("  %-20s %s", comp.Name, mark)
				if comp.Detail != "" {
					line += "  " + comp.Detail
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func newCacheCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local response cache",
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached day snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			snapshots, err := cache.New(cfg.CacheDir)
			if err != nil {
				return fmt.Errorf("init cache: %w", err)
			}
			if err := snapshots.Clear(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", cfg.CacheDir)
			return nil
		},
	}

	cmd.AddCommand(clear)
	return cmd
}
