package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/AnatoleLucet/observable/internal/config"
	"github.com/AnatoleLucet/observable/internal/fortune"
	"github.com/AnatoleLucet/observable/internal/todo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

var (
	// Global flags
	verbose    bool
	configPath string
	scriptPath string

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "todo",
	Short: "Reactive todo list in the terminal",
	Long: `todo drives a small todo list built on observable values.

Commands are read line by line from stdin (or --script):
  add TEXT        add a todo
  fortune         add a todo whose text is fetched from the fortune service
  text N TEXT     change the text of todo N
  done N          mark todo N as done
  undone N        mark todo N as open
  del N           remove todo N
  minlen N        set the minimum todo length
  mode MODE       count the minimum length in letters or words
  list            print every todo
  wait            wait for pending fortunes
  quit            leave

With --config, min_length and min_length_mode are reloaded live whenever the file changes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logConfig := zap.NewProductionConfig()
		logConfig.OutputPaths = []string{"stderr"}
		if verbose {
			logConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else {
			logConfig.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		}

		var err error
		logger, err = logConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if scriptPath != "" {
			f, err := os.Open(scriptPath)
			if err != nil {
				return fmt.Errorf("open script: %w", err)
			}
			defer f.Close()
			in = f
		}

		return run(cmd.Context(), in, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to todo.yaml, watched for changes")
	rootCmd.Flags().StringVar(&scriptPath, "script", "", "read commands from a file instead of stdin")
}

func run(ctx context.Context, in io.Reader, out io.Writer) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	out = &syncWriter{w: out}

	c := todo.NewController(fortune.New(cfg.Fortune.Delay, cfg.Fortune.Texts, logger.Named("fortune")), logger.Named("todo"))
	c.Apply(cfg)

	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)

	if configPath != "" {
		g.Go(func() error {
			return config.Watch(ctx, configPath, logger.Named("config"), c.Apply)
		})
	}

	g.Go(func() error {
		defer cancel()
		return newREPL(c, out).run(ctx, in)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// syncWriter serialises writes coming from fortune deliveries and the REPL.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.w.Write(p)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
