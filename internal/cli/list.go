package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Alp4ka/todopager"
	"github.com/Alp4ka/todopager/internal/tui"
	"github.com/Alp4ka/todopager/todos"
	"github.com/Alp4ka/todopager/viewstate"
)

const dayLayout = "2006-01-02"

type ListArgs struct {
	*RootArgs

	Page      int
	Limit     int
	Completed string
	Day       string
	SortBy    string
	Order     string
	Remote    bool
	Output    string
}

func NewListArgs(rootArgs *RootArgs) *ListArgs {
	return &ListArgs{RootArgs: rootArgs}
}

func (la *ListArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&la.Page, "page", "p", 1, "Page to print")
	cmd.Flags().IntVarP(&la.Limit, "limit", "l", 0,
		fmt.Sprintf("Tasks per page, at most %d. Defaults to the configured layout", todopager.MaxItemsPerPage))
	cmd.Flags().StringVar(&la.Completed, "completed", "", "Only completed (true) or open (false) tasks")
	cmd.Flags().StringVar(&la.Day, "day", "", "Only tasks created on this day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&la.SortBy, "sort-by", todos.SortByCreatedAt, "Sort key")
	cmd.Flags().StringVar(&la.Order, "order", todos.OrderDesc, "Sort order, asc or desc")
	cmd.Flags().BoolVar(&la.Remote, "remote", false, "Fetch only the requested page from the API")
	cmd.Flags().StringVarP(&la.Output, "output", "o", string(outputText),
		fmt.Sprintf("Output format, one of: %s", allOutputFormats))

	err := cmd.RegisterFlagCompletionFunc("output",
		cobra.FixedCompletions(allOutputFormats, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}
}

// filter builds the list filter from the flags.
func (la *ListArgs) filter(loc *time.Location) (todos.Filter, error) {
	f := todos.DefaultFilter()
	f.Location = loc
	f.SortBy = la.SortBy
	f.Order = strings.ToLower(la.Order)

	_, err := f.Ordering()
	if err != nil {
		return todos.Filter{}, err
	}

	if la.Completed != "" {
		completed, err := strconv.ParseBool(la.Completed)
		if err != nil {
			return todos.Filter{}, fmt.Errorf("completed: %w", err)
		}

		f.Completed = &completed
	}

	if la.Day != "" {
		day, err := time.ParseInLocation(dayLayout, la.Day, loc)
		if err != nil {
			return todos.Filter{}, fmt.Errorf("day: must look like 2026-10-15: %w", err)
		}

		f.CreatedAt = &day
	}

	return f, nil
}

// listPage is what list prints in json and yaml mode.
type listPage struct {
	Page       int          `json:"page"        yaml:"page"`
	TotalPages int          `json:"total_pages" yaml:"total_pages"`
	TotalItems int          `json:"total_items" yaml:"total_items"`
	Tasks      []todos.Task `json:"tasks"       yaml:"tasks"`
}

func NewListCmd(rootArgs *RootArgs) *cobra.Command {
	la := NewListArgs(rootArgs)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, la)
		},
	}
	la.AddFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, la *ListArgs) error {
	ctx := commandContext(cmd)

	format, err := parseOutputFormat(la.Output)
	if err != nil {
		return err
	}

	cfg, client, err := la.newClient(nil)
	if err != nil {
		return err
	}

	loc := cfg.LoadLocation()

	filter, err := la.filter(loc)
	if err != nil {
		return err
	}

	perPage, siblings := cfg.PageLimits()
	if la.Limit != 0 {
		perPage = la.Limit
	}

	remote := (la.Remote || cfg.RemotePaging) && filter.CreatedAt == nil

	var view *todopager.View[todos.Task]
	if remote {
		view = todopager.NewRemoteView(client.PageFetcher(filter), perPage)

		err = view.Reload(ctx)
		if err != nil {
			return fmt.Errorf("list: %w", err)
		}
	} else {
		tasks, err := client.List(ctx, filter)
		if err != nil {
			return err //nolint:wrapcheck // Already wrapped by the client.
		}

		view = todopager.NewLocalView(tasks, perPage)
	}

	if la.Page != 1 {
		if la.Page < 1 || la.Page > view.TotalPages() {
			return fmt.Errorf("%w: page %d, have %d", todopager.ErrPageOutOfRange, la.Page, view.TotalPages())
		}

		err = view.RequestPage(ctx, la.Page)
		if err != nil {
			return fmt.Errorf("list: %w", err)
		}
	}

	d := view.Render(siblings)

	if format != outputText {
		return encode(cmd.OutOrStdout(), format, listPage{
			Page:       d.CurrentPage,
			TotalPages: d.TotalPages,
			TotalItems: d.TotalItems,
			Tasks:      d.VisibleItems,
		})
	}

	out := cmd.OutOrStdout()
	now := time.Now()

	if len(d.VisibleItems) == 0 {
		state := viewstate.New(now, cfg.Compact)
		state.Filter = filter

		_, err = fmt.Fprintln(out, tui.RenderEmpty(state.Empty()))

		return err //nolint:wrapcheck // Terminal write.
	}

	for _, task := range d.VisibleItems {
		fmt.Fprintf(out, "%-10s %s\n", task.ID, tui.RenderTask(task, false, now, loc))
	}

	if pagination := tui.RenderPagination(d); pagination != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, pagination)
	}

	_, err = fmt.Fprintf(out, "page %d of %d, %d tasks\n", d.CurrentPage, d.TotalPages, d.TotalItems)

	return err //nolint:wrapcheck // Terminal write.
}
