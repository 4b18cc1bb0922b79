package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/heinz1110/photocat"
	"github.com/heinz1110/photocat/internal/cliconfig"
	"github.com/heinz1110/photocat/internal/export"
	pkglog "github.com/heinz1110/photocat/pkg/log"
	"github.com/heinz1110/photocat/plugins/inboxwatcher"
)

const helpDescription = `
Catalog scanned photographic paper and export it in listing-ready groups.

Highlights:
  - Imports scans with size metadata read from EXIF.
  - Groups exports as singles, pairs, whole lots, chunks, or alternating sets.
  - Watches an inbox directory and imports new scans automatically.
  - Configure via file, environment (PHOTOCAT_*), or flags.
`

var exampleUsage = strings.TrimSpace(`
  photocat import scans/*.jpg
  photocat export --mode pair --output lot.csv
  photocat watch --inbox ~/scans/inbox
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:           "photocat",
		Short:         "Catalog scanned photographic paper and export it in listing-ready groups",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.photocat/config.toml)")
	root.PersistentFlags().StringVar(&cfg.LibraryDir, "library", cfg.LibraryDir, "library directory holding the catalog")
	root.PersistentFlags().BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable debug logging")

	// loadConfig layers config file and environment under any explicitly
	// set flags, then validates.
	loadConfig := func(cmd *cobra.Command) error {
		cfgFile := cfgPath
		if cfgFile == "" {
			cfgFile = cliconfig.DefaultConfigPath()
		}

		changed := map[string]bool{}
		cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })
		cmd.InheritedFlags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

		if cfgFile != "" && cliconfig.FileExists(cfgFile) {
			fc, err := cliconfig.LoadFileConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
				return err
			}
		}

		if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
			return err
		}

		return cfg.Validate()
	}

	// openLibrary opens the catalog with the resolved configuration.
	openLibrary := func(ctx context.Context, opts ...photocat.Option) (*photocat.Library, error) {
		level := zerolog.InfoLevel
		if cfg.Verbose {
			level = zerolog.DebugLevel
		}
		logger := pkglog.NewZerologAdapterWithLogger(log.Level(level))

		libCfg := photocat.Config{
			LibraryDir:    cfg.LibraryDir,
			InboxDir:      cfg.InboxDir,
			Extensions:    cfg.Extensions,
			DebounceDelay: cfg.DebounceDelay,
		}
		opts = append([]photocat.Option{photocat.WithLogger(logger)}, opts...)
		return photocat.Open(ctx, libCfg, opts...)
	}

	importCmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Import image files into the catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			ctx := cmd.Context()
			lib, err := openLibrary(ctx)
			if err != nil {
				return err
			}
			added, err := lib.Add(ctx, args)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d file(s)\n", added, len(args))
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List cataloged entries in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			lib, err := openLibrary(cmd.Context())
			if err != nil {
				return err
			}

			entries := lib.Entries()
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "catalog is empty")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FILENAME\tSIZE\tCONDITION\tCATEGORIES\tEXPORTED")
			for _, e := range entries {
				exported := ""
				if e.Exported {
					exported = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					e.Filename, e.PhysicalSize, e.Condition,
					export.FormatCategories(e.Categories), exported)
			}
			return w.Flush()
		},
	}

	var setText, setComment, setCondition string
	setCmd := &cobra.Command{
		Use:   "set <file>...",
		Short: "Set text, comment, or condition on entries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			if !cmd.Flags().Changed("text") && !cmd.Flags().Changed("comment") && !cmd.Flags().Changed("condition") {
				return fmt.Errorf("nothing to set: pass --text, --comment, or --condition")
			}
			ctx := cmd.Context()
			lib, err := openLibrary(ctx)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("text") {
				if err := lib.SetText(ctx, args, setText); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("comment") {
				if err := lib.SetComment(ctx, args, setComment); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("condition") {
				if err := lib.SetCondition(ctx, args, setCondition); err != nil {
					return err
				}
			}
			return nil
		},
	}
	setCmd.Flags().StringVar(&setText, "text", "", "listing text")
	setCmd.Flags().StringVar(&setComment, "comment", "", "internal comment")
	setCmd.Flags().StringVar(&setCondition, "condition", "", "condition (must be a schema value, empty clears)")

	categoryCmd := newCategoryCmd(loadConfig, openLibrary)
	moveCmd := newMoveCmd(loadConfig, openLibrary)

	removeCmd := &cobra.Command{
		Use:   "remove <file>...",
		Short: "Remove entries from the catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			ctx := cmd.Context()
			lib, err := openLibrary(ctx)
			if err != nil {
				return err
			}
			return lib.Remove(ctx, args)
		},
	}

	restoreCmd := &cobra.Command{
		Use:   "restore <file>...",
		Short: "Clear the exported mark on entries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			ctx := cmd.Context()
			lib, err := openLibrary(ctx)
			if err != nil {
				return err
			}
			return lib.Restore(ctx, args)
		},
	}

	exportCmd := newExportCmd(&cfg, loadConfig, openLibrary)
	watchCmd := newWatchCmd(&cfg, loadConfig, openLibrary, log)

	root.AddCommand(importCmd, listCmd, setCmd, categoryCmd, moveCmd, removeCmd, restoreCmd, exportCmd, watchCmd)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("photocat")
		os.Exit(1)
	}
}

// newCategoryCmd builds the `category` command group for schema management.
func newCategoryCmd(loadConfig func(*cobra.Command) error, openLibrary func(context.Context, ...photocat.Option) (*photocat.Library, error)) *cobra.Command {
	categoryCmd := &cobra.Command{
		Use:   "category",
		Short: "Manage the category schema and entry assignments",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show the category schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			ctx := cmd.Context()
			lib, err := openLibrary(ctx)
			if err != nil {
				return err
			}
			schema, err := lib.Schema(ctx)
			if err != nil {
				return err
			}

			groups := make([]string, 0, len(schema))
			for g := range schema {
				groups = append(groups, g)
			}
			sort.Strings(groups)
			for _, g := range groups {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", g, strings.Join(schema[g], ", "))
			}
			return nil
		},
	}

	addGroupCmd := &cobra.Command{
		Use:   "add-group <group>",
		Short: "Create a new category group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			ctx := cmd.Context()
			lib, err := openLibrary(ctx)
			if err != nil {
				return err
			}
			return lib.AddCategoryGroup(ctx, args[0])
		},
	}

	removeGroupCmd := &cobra.Command{
		Use:   "remove-group <group>",
		Short: "Delete a category group and its values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			ctx := cmd.Context()
			lib, err := openLibrary(ctx)
			if err != nil {
				return err
			}
			return lib.RemoveCategoryGroup(ctx, args[0])
		},
	}

	addValueCmd := &cobra.Command{
		Use:   "add-value <group> <value>",
		Short: "Add a value to a category group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			ctx := cmd.Context()
			lib, err := openLibrary(ctx)
			if err != nil {
				return err
			}
			return lib.AddCategoryValue(ctx, args[0], args[1])
		},
	}

	removeValueCmd := &cobra.Command{
		Use:   "remove-value <group> <value>",
		Short: "Delete a value from a category group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			ctx := cmd.Context()
			lib, err := openLibrary(ctx)
			if err != nil {
				return err
			}
			return lib.RemoveCategoryValue(ctx, args[0], args[1])
		},
	}

	assignCmd := &cobra.Command{
		Use:   "assign <group> <value> <file>...",
		Short: "Assign a category value to entries",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			ctx := cmd.Context()
			lib, err := openLibrary(ctx)
			if err != nil {
				return err
			}
			return lib.AssignCategory(ctx, args[2:], args[0], args[1])
		},
	}

	unassignCmd := &cobra.Command{
		Use:   "unassign <group> <value> <file>...",
		Short: "Remove a category value from entries",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			ctx := cmd.Context()
			lib, err := openLibrary(ctx)
			if err != nil {
				return err
			}
			return lib.UnassignCategory(ctx, args[2:], args[0], args[1])
		},
	}

	categoryCmd.AddCommand(listCmd, addGroupCmd, removeGroupCmd, addValueCmd, removeValueCmd, assignCmd, unassignCmd)
	return categoryCmd
}

// newMoveCmd builds the `move` command for reordering entries.
func newMoveCmd(loadConfig func(*cobra.Command) error, openLibrary func(context.Context, ...photocat.Option) (*photocat.Library, error)) *cobra.Command {
	var down bool

	moveCmd := &cobra.Command{
		Use:   "move <file>...",
		Short: "Shift entries one position up (or down with --down)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			ctx := cmd.Context()
			lib, err := openLibrary(ctx)
			if err != nil {
				return err
			}
			if down {
				return lib.MoveDown(ctx, args)
			}
			return lib.MoveUp(ctx, args)
		},
	}
	moveCmd.Flags().BoolVar(&down, "down", false, "shift toward the back instead of the front")
	return moveCmd
}

// newExportCmd builds the `export` command.
func newExportCmd(cfg *cliconfig.Config, loadConfig func(*cobra.Command) error, openLibrary func(context.Context, ...photocat.Option) (*photocat.Library, error)) *cobra.Command {
	var dryRun bool

	exportCmd := &cobra.Command{
		Use:   "export [<file>...]",
		Short: "Write export groups as CSV and mark the entries exported",
		Long: strings.TrimSpace(`
Write export groups as CSV and mark the entries exported.

Named files form the selection in catalog order. Without arguments the
whole catalog is exported, which requires --mode all.
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}

			mode, err := photocat.ParseScanMode(cfg.ScanMode)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			lib, err := openLibrary(ctx)
			if err != nil {
				return err
			}

			if dryRun {
				groups, err := lib.Preview(args, mode, cfg.Interval)
				if err != nil {
					return err
				}
				for i, g := range groups {
					fmt.Fprintf(cmd.OutOrStdout(), "group %d: %s\n", i+1, g.Filenames())
				}
				if len(groups) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "nothing to export")
				}
				return nil
			}

			out := cmd.OutOrStdout()
			if cfg.ExportPath != "-" {
				f, err := os.Create(cfg.ExportPath)
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				defer f.Close()
				out = f
			}

			groups, err := lib.Export(ctx, args, mode, cfg.Interval, out)
			if err != nil {
				return err
			}
			if len(groups) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "nothing to export")
			}
			return nil
		},
	}

	exportCmd.Flags().StringVar(&cfg.ScanMode, "mode", cfg.ScanMode, "grouping mode: single, pair, all, group-of-x, alternate")
	exportCmd.Flags().IntVar(&cfg.Interval, "interval", cfg.Interval, "chunk size or stride for group-of-x and alternate")
	exportCmd.Flags().StringVar(&cfg.ExportPath, "output", cfg.ExportPath, "CSV output path, - for stdout")
	exportCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the groups without exporting")
	return exportCmd
}

// newWatchCmd builds the `watch` command running the inbox watcher.
func newWatchCmd(cfg *cliconfig.Config, loadConfig func(*cobra.Command) error, openLibrary func(context.Context, ...photocat.Option) (*photocat.Library, error), log zerolog.Logger) *cobra.Command {
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the inbox directory and import new scans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			if cfg.InboxDir == "" {
				return fmt.Errorf("inbox directory is required: pass --inbox or set inbox_dir")
			}

			ctx := cmd.Context()
			lib, err := openLibrary(ctx, inboxwatcher.WithInboxWatcher(inboxwatcher.Config{
				DebounceDelay:  cfg.DebounceDelay,
				ImportExisting: true,
			}))
			if err != nil {
				return err
			}

			log.Info().Str("inbox", cfg.InboxDir).Msg("watching for new scans, ctrl-c to stop")
			<-ctx.Done()

			return lib.Close(context.Background())
		},
	}

	watchCmd.Flags().StringVar(&cfg.InboxDir, "inbox", cfg.InboxDir, "inbox directory to watch")
	watchCmd.Flags().StringSliceVar(&cfg.Extensions, "extensions", cfg.Extensions, "image extensions to import")
	watchCmd.Flags().DurationVar(&cfg.DebounceDelay, "debounce", cfg.DebounceDelay, "settle delay before importing a changed file")
	return watchCmd
}
