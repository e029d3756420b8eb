package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Alp4ka/todopager/todos"
	"github.com/Alp4ka/todopager/todos/mockapi"
)

const shutdownTimeout = 5 * time.Second

var dbDrivers = []string{mockapi.DriverPostgres, mockapi.DriverMySQL, mockapi.DriverSQLite}

type MockArgs struct {
	*RootArgs

	Addr         string
	DBDriver     string
	DSN          string
	Seed         int
	NoTotalCount bool
}

func (ma *MockArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ma.Addr, "addr", "127.0.0.1:8080", "Listen address")
	cmd.Flags().StringVar(&ma.DBDriver, "db-driver", "",
		fmt.Sprintf("Store tasks in a database, one of: %s. Defaults to memory", dbDrivers))
	cmd.Flags().StringVar(&ma.DSN, "dsn", "", "Database connection string")
	cmd.Flags().IntVar(&ma.Seed, "seed", 0, "Add this many sample tasks on start")
	cmd.Flags().BoolVar(&ma.NoTotalCount, "no-total-count", false, "Omit the X-Total-Count header")

	err := cmd.RegisterFlagCompletionFunc("db-driver",
		cobra.FixedCompletions(dbDrivers, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}
}

func NewMockCmd(rootArgs *RootArgs) *cobra.Command {
	ma := &MockArgs{RootArgs: rootArgs}

	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Serve a local todos API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := ma.store(commandContext(cmd))
			if err != nil {
				return err
			}

			opts := []mockapi.Option{mockapi.WithLogger(slog.Default())}
			if ma.NoTotalCount {
				opts = append(opts, mockapi.WithoutTotalCount())
			}

			return serve(commandContext(cmd), ma.Addr, mockapi.NewServer(store, opts...))
		},
	}
	ma.AddFlags(cmd)

	return cmd
}

func (ma *MockArgs) store(ctx context.Context) (mockapi.Store, error) {
	if ma.DBDriver == "" {
		return mockapi.NewMemoryStore(sampleTasks(ma.Seed, time.Now())...), nil
	}

	if ma.DSN == "" {
		return nil, errors.New("--dsn is required with --db-driver")
	}

	store, err := mockapi.OpenGormStore(ma.DBDriver, ma.DSN)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	for _, task := range sampleTasks(ma.Seed, time.Now()) {
		_, err = store.Create(ctx, task)
		if err != nil {
			return nil, fmt.Errorf("seed store: %w", err)
		}
	}

	return store, nil
}

// sampleTasks spreads n tasks over the past week, one hour long each.
func sampleTasks(n int, now time.Time) []todos.Task {
	tasks := make([]todos.Task, 0, n)

	for i := range n {
		day := now.AddDate(0, 0, -(i % 7))
		starts := time.Date(day.Year(), day.Month(), day.Day(), 8+i%10, 0, 0, 0, day.Location())

		payload := todos.NewPayload(fmt.Sprintf("Sample task %d", i+1), day, starts, starts.Add(time.Hour))
		payload.Completed = i%3 == 0

		tasks = append(tasks, payload.WithID(uuid.NewString()))
	}

	return tasks
}

// serve runs handler on addr until ctx is done.
func serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("serving todos api", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		if err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}

		err = <-errCh
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}

		return nil
	}
}
