package main

import (
	"fmt"
	"io"

	go_json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/garrettladley/healthmesh/internal/dashboard"
	"github.com/garrettladley/healthmesh/internal/health"
	"github.com/garrettladley/healthmesh/internal/xopt"
)

func dashboardCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Load the dashboard once and print it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx, stderrLogger())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			vm, err := a.loader().Load(ctx)
			if err != nil {
				return fmt.Errorf("failed to load dashboard: %w", err)
			}

			return writeViewModel(cmd.OutOrStdout(), vm, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the view model as JSON")
	return cmd
}

func writeViewModel(w io.Writer, vm *dashboard.ViewModel, asJSON bool) error {
	if !asJSON {
		return writeSummary(w, vm)
	}
	out, err := go_json.MarshalIndent(vm, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode dashboard: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func writeSummary(w io.Writer, vm *dashboard.ViewModel) error {
	var (
		p      = &printer{w: w}
		vitals = vm.CurrentVitals()
	)

	if msg, ok := vm.Warning.Get(); ok {
		p.line("warning: %s", msg)
	}
	if msg, ok := vm.Error.Get(); ok {
		p.line("error: %s", msg)
	}

	p.line("Readiness   %s (%s)", vm.Readiness.Label(), vm.Readiness.Message())
	p.line("HRV         %-10s %s", format(vitals.HRV, "%.0f ms"), health.HRVBadge(vitals.HRV))
	p.line("Resting HR  %-10s %s", format(vitals.RestingHR, "%.0f bpm"), health.RestingHRBadge(vitals.RestingHR))
	p.line("Sleep       %-10s %s", format(vitals.SleepHours, "%.1f h"), health.SleepBadge(vitals.SleepHours))
	p.line("")

	for _, b := range vm.MacroBars {
		p.line("%-10s %5.0f / %-5.0f %-4s %3.0f%%", b.Macro, b.Current, b.Target, b.Unit, b.Percent())
	}
	p.line("")

	summary := vm.ActivitySummary()
	p.line("Activity    %s over 7 days, %.0f kcal", health.FormatHoursMinutes(summary.TotalSeconds), summary.TotalCalories)
	p.line("Focus       %s", vm.Insight.TodayFocus)

	return p.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func format(v xopt.Value[float64], layout string) string {
	f, ok := v.Get()
	if !ok {
		return "--"
	}
	return fmt.Sprintf(layout, f)
}
