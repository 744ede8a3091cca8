package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/teetime-scanner/internal/storage"
	"github.com/pfrederiksen/teetime-scanner/internal/teetime"
)

func newCoursesCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "Manage registered courses",
	}
	cmd.AddCommand(newCoursesListCmd(root), newCoursesAddCmd(root), newCoursesRemoveCmd(root))
	return cmd
}

func newCoursesListCmd(root *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered courses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := root.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			courses, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing courses: %w", err)
			}

			out := cmd.OutOrStdout()
			switch OutputFormat(strings.ToLower(format)) {
			case FormatJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(courses)
			case FormatText:
				if len(courses) == 0 {
					fmt.Fprintln(out, "No courses registered.")
					return nil
				}
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tURL")
				for _, c := range courses {
					fmt.Fprintf(tw, "%s\t%s\n", c.Name, c.URL)
				}
				return tw.Flush()
			default:
				return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	return cmd
}

func newCoursesAddCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME URL",
		Short: "Register a course by name and booking URL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := root.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			course := teetime.Course{Name: args[0], URL: args[1]}
			if err := store.Add(cmd.Context(), course); err != nil {
				if errors.Is(err, storage.ErrCourseExists) {
					return fmt.Errorf("course %q is already registered", course.Name)
				}
				return fmt.Errorf("adding course: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", strings.TrimSpace(course.Name))
			return nil
		},
	}
}

func newCoursesRemoveCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove NAME",
		Aliases: []string{"rm"},
		Short:   "Remove a registered course",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := root.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.Remove(cmd.Context(), args[0]); err != nil {
				if errors.Is(err, storage.ErrCourseNotFound) {
					return fmt.Errorf("course %q is not registered", args[0])
				}
				return fmt.Errorf("removing course: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}
