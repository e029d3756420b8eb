package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Alp4ka/todopager/internal/tui"
	"github.com/Alp4ka/todopager/todos"
)

var ErrInvalidClock = errors.New("invalid time of day")

// clockLayouts are the accepted --starts/--ends spellings.
var clockLayouts = []string{"15:04", "03:04 pm", "3:04 pm", "03:04pm", "3:04pm", "3pm", "3 pm"}

// parseClock places a time of day on day.
func parseClock(day time.Time, s string) (time.Time, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	for _, layout := range clockLayouts {
		c, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), 0, 0, day.Location()), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q, use 14:30 or 02:30 pm", ErrInvalidClock, s)
}

func parseDay(s string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(dayLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("day: must look like 2026-10-15: %w", err)
	}

	return day, nil
}

// printTask writes the result of a mutation.
func printTask(cmd *cobra.Command, verb string, task todos.Task, loc *time.Location) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n%s\n", verb, task.ID, tui.RenderPreview(task, loc))
}

type AddArgs struct {
	*RootArgs

	Day    string
	Starts string
	Ends   string
}

func (aa *AddArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&aa.Day, "day", "", "Day of the task (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&aa.Starts, "starts", "09:00 am", "Start time")
	cmd.Flags().StringVar(&aa.Ends, "ends", "10:00 am", "End time")
}

func NewAddCmd(rootArgs *RootArgs) *cobra.Command {
	aa := &AddArgs{RootArgs: rootArgs}

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, err := aa.newClient(nil)
			if err != nil {
				return err
			}

			loc := cfg.LoadLocation()

			title := strings.TrimSpace(args[0])
			if title == "" {
				return errors.New("title is required")
			}

			day := time.Now().In(loc)
			if aa.Day != "" {
				day, err = parseDay(aa.Day, loc)
				if err != nil {
					return err
				}
			}
			day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)

			starts, err := parseClock(day, aa.Starts)
			if err != nil {
				return fmt.Errorf("starts: %w", err)
			}

			ends, err := parseClock(day, aa.Ends)
			if err != nil {
				return fmt.Errorf("ends: %w", err)
			}

			if ends.Before(starts) {
				return errors.New("end is before start")
			}

			task, err := client.Create(commandContext(cmd), todos.NewPayload(title, day, starts, ends))
			if err != nil {
				return err //nolint:wrapcheck // Already wrapped by the client.
			}

			printTask(cmd, "added", task, loc)

			return nil
		},
	}
	aa.AddFlags(cmd)

	return cmd
}

type EditArgs struct {
	*RootArgs

	Title     string
	Day       string
	Starts    string
	Ends      string
	Completed bool
}

func (ea *EditArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ea.Title, "title", "", "New title")
	cmd.Flags().StringVar(&ea.Day, "day", "", "New day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ea.Starts, "starts", "", "New start time")
	cmd.Flags().StringVar(&ea.Ends, "ends", "", "New end time")
	cmd.Flags().BoolVar(&ea.Completed, "completed", false, "Mark completed or open")
}

func NewEditCmd(rootArgs *RootArgs) *cobra.Command {
	ea := &EditArgs{RootArgs: rootArgs}

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			cfg, client, err := ea.newClient(nil)
			if err != nil {
				return err
			}

			loc := cfg.LoadLocation()

			task, err := client.Get(ctx, args[0])
			if err != nil {
				return err //nolint:wrapcheck // Already wrapped by the client.
			}

			patch, err := ea.patch(cmd, task, loc)
			if err != nil {
				return err
			}

			task, err = client.Replace(ctx, patch)
			if err != nil {
				return err //nolint:wrapcheck // Already wrapped by the client.
			}

			printTask(cmd, "updated", task, loc)

			return nil
		},
	}
	ea.AddFlags(cmd)

	return cmd
}

// patch holds only the changed flags. Moving a task to another day keeps its
// times of day.
func (ea *EditArgs) patch(cmd *cobra.Command, task todos.Task, loc *time.Location) (todos.Patch, error) {
	flags := cmd.Flags()
	patch := todos.Patch{ID: task.ID}

	if flags.Changed("title") {
		title := strings.TrimSpace(ea.Title)
		if title == "" {
			return todos.Patch{}, errors.New("title is required")
		}

		patch.Title = &title
	}

	if flags.Changed("completed") {
		patch.Completed = &ea.Completed
	}

	day, err := task.CreatedTime()
	if err != nil {
		day = time.Now()
	}
	day = day.In(loc)

	if flags.Changed("day") {
		day, err = parseDay(ea.Day, loc)
		if err != nil {
			return todos.Patch{}, err
		}

		created := todos.FormatTime(day)
		patch.CreatedAt = &created
	}

	starts, startsErr := task.StartsTime()
	ends, endsErr := task.EndsTime()

	move := func(t time.Time) time.Time {
		t = t.In(loc)
		return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, loc)
	}

	if flags.Changed("starts") {
		starts, err = parseClock(day, ea.Starts)
		if err != nil {
			return todos.Patch{}, fmt.Errorf("starts: %w", err)
		}
	} else if startsErr == nil {
		starts = move(starts)
	}

	if flags.Changed("ends") {
		ends, err = parseClock(day, ea.Ends)
		if err != nil {
			return todos.Patch{}, fmt.Errorf("ends: %w", err)
		}
	} else if endsErr == nil {
		ends = move(ends)
	}

	if flags.Changed("day") || flags.Changed("starts") || flags.Changed("ends") {
		if !starts.IsZero() && !ends.IsZero() && ends.Before(starts) {
			return todos.Patch{}, errors.New("end is before start")
		}

		if !starts.IsZero() {
			s := todos.FormatTime(starts)
			patch.StartsAt = &s
		}
		if !ends.IsZero() {
			e := todos.FormatTime(ends)
			patch.EndsAt = &e
		}
	}

	return patch, nil
}

func NewDoneCmd(rootArgs *RootArgs) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done ID",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, err := rootArgs.newClient(nil)
			if err != nil {
				return err
			}

			completed := !undo

			task, err := client.Replace(commandContext(cmd), todos.Patch{ID: args[0], Completed: &completed})
			if err != nil {
				return err //nolint:wrapcheck // Already wrapped by the client.
			}

			printTask(cmd, "updated", task, cfg.LoadLocation())

			return nil
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the task open again")

	return cmd
}

func NewDeleteCmd(rootArgs *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, err := rootArgs.newClient(nil)
			if err != nil {
				return err
			}

			task, err := client.Delete(commandContext(cmd), args[0])
			if err != nil {
				return err //nolint:wrapcheck // Already wrapped by the client.
			}

			printTask(cmd, "deleted", task, cfg.LoadLocation())

			return nil
		},
	}
}
