package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"eog-rate/internal/format"
	"eog-rate/internal/logging"
	"eog-rate/internal/mediatypes"
	"eog-rate/internal/metrics"
	"eog-rate/internal/mutation"
	"eog-rate/internal/predicate"
	"eog-rate/internal/startup"
	"eog-rate/internal/store"
	"eog-rate/internal/walker"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// options holds the flags that are not routed through the configuration.
type options struct {
	configPath string

	query    string
	pathOnly bool
	all      bool
	images   bool

	addTags    []string
	removeTags []string
	setTags    string
	rating     int
	comment    string
}

func newRootCmd() *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:   "eog-rate [flags] PATH...",
		Short: "List, query and modify file ratings, tags and comments",
		Long: `eog-rate manages per-file ratings, tags and comments.

With no modification flags it lists the attributes of the files under each
PATH. With --query it prints only the files the expression accepts, e.g.

  eog-rate -q "r >= 3 and 'beach' in t" ~/Pictures

Any of --tag, --untag, --set-tags, --rating or --comment modifies the named
files instead.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "config file (default "+startup.GetDefaultConfigPath()+")")
	pf.String("store", "", "attribute store: sidecar, sqlite, badger, xattr or memory")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.String("log-file", "", "also write logs to this file, rotated by size")

	f := cmd.Flags()
	f.StringVarP(&o.query, "query", "q", "", "only show files matching the expression")
	f.BoolVarP(&o.pathOnly, "path", "p", false, "print paths only")
	f.BoolVarP(&o.all, "all", "a", false, "include files without any attributes")
	f.BoolVar(&o.images, "images", false, "only consider image files when walking directories")
	f.Int("comment-width", 0, "truncate comments to this width (0 = never, -1 = terminal width)")
	f.String("metrics-file", "", "write Prometheus metrics to this file on exit")
	f.StringArrayVar(&o.addTags, "tag", nil, "add a tag (repeatable)")
	f.StringArrayVar(&o.removeTags, "untag", nil, "remove a tag (repeatable)")
	f.StringVar(&o.setTags, "set-tags", "", `replace all tags, e.g. "a, b" ("" clears)`)
	f.IntVar(&o.rating, "rating", 0, "set the rating (0 clears)")
	f.StringVar(&o.comment, "comment", "", `set the comment ("" clears)`)

	cmd.AddCommand(newServeCmd(o))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// changes collects the modification flags. Value flags count only when
// given, so "--rating 0" clears while an absent --rating leaves it alone.
func (o *options) changes(cmd *cobra.Command) mutation.Changes {
	c := mutation.Changes{
		AddTags:    o.addTags,
		RemoveTags: o.removeTags,
	}
	if cmd.Flags().Changed("set-tags") {
		c.SetTags = &o.setTags
	}
	if cmd.Flags().Changed("rating") {
		c.Rating = &o.rating
	}
	if cmd.Flags().Changed("comment") {
		c.Comment = &o.comment
	}
	return c
}

func (o *options) run(cmd *cobra.Command, args []string) (err error) {
	c := o.changes(cmd)
	if !c.Empty() && o.query != "" {
		return errors.New("--query cannot be combined with modification flags")
	}

	var prog *predicate.Program
	if c.Empty() && o.query != "" {
		if prog, err = predicate.Compile(o.query); err != nil {
			return err
		}
	}

	cfg, err := startup.Load(o.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	if err := setupRuntime(cfg); err != nil {
		return err
	}
	defer logging.Close()
	defer func() {
		if werr := writeMetrics(cfg); werr != nil && err == nil {
			err = werr
		}
	}()

	ctx := cmd.Context()
	backend, err := startup.OpenBackend(ctx, &cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := backend.Close(); cerr != nil {
			logging.Warn("failed to close %s store: %v", backend.Name(), cerr)
		}
	}()

	s := store.New(backend, store.Options{Cache: true})

	if !c.Empty() {
		result, err := mutation.Apply(ctx, s, args, c)
		logging.Debug("Modified %d of %d file(s) in %s store", result.Written(), len(args), s.BackendName())
		return err
	}

	width := commentWidth(cfg.Display.CommentWidth, cmd.OutOrStdout())
	return o.list(ctx, s, args, prog, format.NewPrinter(cmd.OutOrStdout(), o.pathOnly, width))
}

// list prints every walked file, or only those prog accepts when it is set.
func (o *options) list(ctx context.Context, s *store.Store, roots []string, prog *predicate.Program, p *format.Printer) error {
	w := &walker.Walker{
		Store:           s,
		RequirePresence: !o.all,
	}
	if o.images {
		w.Filter = mediatypes.IsImage
	}

	for entry, err := range w.Walk(ctx, roots) {
		if err != nil {
			return err
		}
		if prog != nil {
			ok, err := prog.Match(entry.Record)
			if err != nil {
				return fmt.Errorf("%s: %w", entry.Path, err)
			}
			if !ok {
				continue
			}
		}
		if err := p.Print(entry.Path, entry.Record); err != nil {
			return err
		}
	}
	return nil
}

// setupRuntime applies logging and metrics configuration shared by all
// commands.
func setupRuntime(cfg *startup.Config) error {
	err := logging.Configure(cfg.Logging.Level, logging.FileOptions{
		Path:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	})
	if err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}

	store.SetObserver(metrics.NewStoreObserver())
	metrics.InitializeMetrics(cfg.Store.Type)
	return nil
}

func writeMetrics(cfg *startup.Config) error {
	if cfg.Metrics.Textfile == "" {
		return nil
	}
	if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

// commentWidth resolves the configured width; -1 follows the terminal and
// disables truncation when out is not one.
func commentWidth(configured int, out io.Writer) int {
	if configured >= 0 {
		return configured
	}
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := startup.GetBuildInfo()
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "eog-rate %s (commit %s, built %s, %s %s/%s)\n",
				info.Version, info.Commit, info.BuildTime, info.GoVersion, info.OS, info.Arch)
			return err
		},
	}
}
