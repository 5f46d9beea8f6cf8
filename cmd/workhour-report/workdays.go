package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/workhour-report/internal/calendar"
	"github.com/username/workhour-report/internal/config"
	"github.com/username/workhour-report/internal/render"
	"go.uber.org/zap"
)

func workdaysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workdays YEAR MONTH",
		Short: "Show the workdays, weekends and public holidays of a month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid YEAR %q: must be an integer", args[0])
			}
			month, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid MONTH %q: must be an integer", args[1])
			}
			return runWorkdays(os.Stdout, cfg, year, month)
		},
	}

	return cmd
}

func runWorkdays(w io.Writer, cfg *config.Config, year, month int) error {
	if err := calendar.ValidateMonth(year, month); err != nil {
		return err
	}

	source, err := initializeHolidaySource(cfg)
	if err != nil {
		return err
	}
	cal := calendar.NewRegionCalendar(source, cfg.Calendar.Region, logger)

	logger.Info("Listing workdays",
		zap.Int("year", year),
		zap.Int("month", month),
		zap.String("region", cal.Region()))

	info, err := cal.GetMonthInfo(year, time.Month(month))
	if err != nil {
		return fmt.Errorf("failed to get month info: %w", err)
	}

	fmt.Fprint(w, render.RenderMonthOverview(info, cal.Region()))
	return nil
}
