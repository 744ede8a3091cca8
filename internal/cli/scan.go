package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/teetime-scanner/internal/teetime"
)

type scanOptions struct {
	courses   []string
	startDate string
	endDate   string
	startTime string
	endTime   string
	webhook   string
	format    string
	sort      string
}

func newScanCmd(root *rootOptions) *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan courses for tee times and print the results",
		Long: `Scan one or more courses for available tee times in a date and time window.
Courses are registered names or booking URLs. Exits 2 when tee times are found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, root, opts)
		},
	}

	today := time.Now().Format(teetime.DateLayout)
	cmd.Flags().StringSliceVar(&opts.courses, "course", nil, "Course name or booking URL (repeatable)")
	cmd.Flags().StringVar(&opts.startDate, "start-date", today, "First play date, YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.endDate, "end-date", "", "Last play date, YYYY-MM-DD (default start-date)")
	cmd.Flags().StringVar(&opts.startTime, "start-time", "06:00", "Earliest tee time, e.g. 07:00")
	cmd.Flags().StringVar(&opts.endTime, "end-time", "18:00", "Latest tee time (exclusive), e.g. 12:00")
	cmd.Flags().StringVar(&opts.webhook, "webhook", "", "Webhook URL to notify when tee times are found")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&opts.sort, "sort", "time", "Sort tee times within a course: time or price")

	cmd.MarkFlagRequired("course")

	return cmd
}

func runScan(cmd *cobra.Command, root *rootOptions, opts *scanOptions) error {
	format := OutputFormat(strings.ToLower(opts.format))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", opts.format)
	}
	order := SortOrder(strings.ToLower(opts.sort))
	if order != SortByTime && order != SortByPrice {
		return fmt.Errorf("invalid sort: %s (must be 'time' or 'price')", opts.sort)
	}

	endDate := opts.endDate
	if endDate == "" {
		endDate = opts.startDate
	}

	a, err := root.build(cmd.Context(), cmd.ErrOrStderr(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.close()

	payload := teetime.NewScanPayload(opts.courses, opts.startDate, endDate, opts.startTime, opts.endTime, opts.webhook)
	results, err := a.scans.Scan(cmd.Context(), payload)
	if err != nil {
		return fmt.Errorf("scanning: %w", err)
	}

	for i := range results {
		sortTimes(results[i].Times, order)
	}

	out := NewScanOutput(results)
	if err := WriteOutput(cmd.OutOrStdout(), out, format, root.verbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if out.TimeCount > 0 {
		return errTimesFound
	}
	return nil
}
