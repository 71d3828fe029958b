package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"github.com/sandeepkv93/choirsched/internal/calendar"
	"github.com/sandeepkv93/choirsched/internal/export"
	"github.com/sandeepkv93/choirsched/internal/model"
	"github.com/sandeepkv93/choirsched/internal/scheduler"
	"github.com/sandeepkv93/choirsched/internal/seed"
	"github.com/sandeepkv93/choirsched/internal/update"
)

var errAdminRequired = errors.New("admin required: pass --admin or set admin in the config")

func adminFlag() cli.Flag {
	return &cli.BoolFlag{Name: "admin", Usage: "enable add, edit and delete", EnvVars: []string{"CHOIRSCHED_ADMIN"}}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Open the schedule view.",
		Flags: []cli.Flag{adminFlag()},
		Action: func(c *cli.Context) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.close()
			cfg := e.cfg

			var notices *scheduler.Engine
			if cfg.Schedule.Lead() > 0 {
				notices = scheduler.NewEngine(cfg.Schedule.NoticeBuffer)
				notices.Start()
				defer notices.Stop()
			}

			ui := update.NewModel(update.Options{
				Adapter: e.adapter,
				Admin:   c.Bool("admin") || cfg.Admin,
				Defaults: update.FormDefaults{
					Enabled:  !cfg.Defaults.Disabled,
					Category: model.Category(cfg.Defaults.Category).OrOther(),
					Time:     cfg.Defaults.Time,
					Time2:    cfg.Defaults.Time2,
					Location: cfg.Defaults.Location,
				},
				Location:     cfg.Schedule.Location(),
				WriteTimeout: cfg.Schedule.WriteTimeout,
				Notices:      notices,
				NoticeLead:   cfg.Schedule.Lead(),
				StateFile:    cfg.Schedule.StateFile,
				Logger:       e.logger,
			})
			program := tea.NewProgram(ui, tea.WithAltScreen(), tea.WithContext(c.Context))
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("run ui: %w", err)
			}
			return nil
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Print one month of events.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "month", Usage: "month to list (YYYY-MM), default current"},
		},
		Action: func(c *cli.Context) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.close()

			month := calendar.MonthOf(time.Now().In(e.cfg.Schedule.Location()))
			if raw := c.String("month"); raw != "" {
				if month, err = calendar.ParseMonth(raw); err != nil {
					return err
				}
			}
			events, err := e.adapter.List(c.Context)
			if err != nil {
				return fmt.Errorf("list events: %w", err)
			}
			printMonth(c.App.Writer, month, calendar.MonthEvents(month, events))
			return nil
		},
	}
}

func printMonth(w io.Writer, month calendar.Month, events []model.Event) {
	fmt.Fprintln(w, month.Title())
	if len(events) == 0 {
		fmt.Fprintln(w, "  (no events)")
		return
	}
	for _, ev := range events {
		line := fmt.Sprintf("  %s  %-8s %s", ev.Date, ev.Category.Label(), ev.Title)
		if tr := ev.TimeRange(); !tr.IsZero() {
			line += "  " + tr.String()
		}
		if ev.Location != "" {
			line += "  @ " + ev.Location
		}
		fmt.Fprintln(w, line)
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write events as an iCalendar file.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Value: "-", Usage: "output file, - for stdout"},
			&cli.StringFlag{Name: "month", Usage: "limit to one month (YYYY-MM)"},
		},
		Action: func(c *cli.Context) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.close()

			events, err := e.adapter.List(c.Context)
			if err != nil {
				return fmt.Errorf("list events: %w", err)
			}
			if raw := c.String("month"); raw != "" {
				month, err := calendar.ParseMonth(raw)
				if err != nil {
					return err
				}
				events = calendar.MonthEvents(month, events)
			}

			var w io.Writer = c.App.Writer
			if out := c.String("out"); out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}
			if err := export.Write(w, events, export.Options{Location: e.cfg.Schedule.Location()}); err != nil {
				return err
			}
			e.logger.Info("exported events", "count", len(events), "out", c.String("out"))
			return nil
		},
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Create the weekly events from the config templates.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "first month (YYYY-MM), default current"},
			&cli.IntFlag{Name: "months", Value: 3, Usage: "number of months to fill"},
			&cli.BoolFlag{Name: "dry-run", Usage: "print what would be created"},
			adminFlag(),
		},
		Action: func(c *cli.Context) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.close()
			if !c.Bool("dry-run") && !c.Bool("admin") && !e.cfg.Admin {
				return errAdminRequired
			}

			from := calendar.MonthOf(time.Now().In(e.cfg.Schedule.Location()))
			if raw := c.String("from"); raw != "" {
				if from, err = calendar.ParseMonth(raw); err != nil {
					return err
				}
			}
			templates, err := seed.FromConfig(e.cfg.Seed)
			if err != nil {
				return err
			}
			generated, err := seed.Generate(templates, from, c.Int("months"))
			if err != nil {
				return err
			}
			existing, err := e.adapter.List(c.Context)
			if err != nil {
				return fmt.Errorf("list events: %w", err)
			}

			created := 0
			for _, ev := range seed.Missing(existing, generated) {
				if c.Bool("dry-run") {
					fmt.Fprintf(c.App.Writer, "would create %s %s\n", ev.Date, ev.Title)
					continue
				}
				if _, err := e.adapter.Create(c.Context, ev); err != nil {
					return fmt.Errorf("create %s on %s: %w", ev.Title, ev.Date, err)
				}
				created++
			}
			e.logger.Info("seeded events", "from", from.String(), "months", c.Int("months"), "created", created)
			fmt.Fprintf(c.App.Writer, "created %d event(s)\n", created)
			return nil
		},
	}
}
