// Package app wires configuration, logging and the collection manager into
// the beyx_collection command tree.
package app

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mattabott/beyblade-x-collection/internal/collection"
	"github.com/mattabott/beyblade-x-collection/internal/config"
	"github.com/mattabott/beyblade-x-collection/internal/domain"
	"github.com/mattabott/beyblade-x-collection/internal/partsdb"
)

// App is the state shared by every command of one invocation.
type App struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	configPath string
	logLevel   string

	settings config.Settings
	log      *logrus.Logger
	mgr      *collection.Manager
}

// Execute runs the command line of the current process and returns its exit code.
func Execute() int {
	return Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// Run executes one command line. Pending collection changes are saved before
// returning, whatever the command outcome.
func Run(args []string, in io.Reader, out, errOut io.Writer) int {
	a := &App{in: bufio.NewReader(in), out: out, errOut: errOut}
	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.Execute()
	if a.mgr != nil {
		if cerr := a.mgr.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}

	code := exitCode(err)
	if err != nil {
		if ee, ok := asExitError(err); !ok || (ee.Err != nil && ee.Code != codeOK) {
			fmt.Fprintln(errOut, "Error:", err)
		}
	}
	return code
}

func (a *App) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "beyx_collection",
		Short: "Manage a Beyblade X parts collection and decks",
		Long: `beyx_collection keeps track of owned Beyblade X blades, ratchets and bits,
resolves typed names against a reference stats database, and builds
three-slot tournament decks without reusing parts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to "+config.FileName+" (default: searched upward from the working directory)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return ExitWithError(codeUsage, fmt.Errorf("%w\nUsage: %s", err, cmd.UseLine()))
	})

	root.AddCommand(
		a.newAddCmd(),
		a.newRemoveCmd(),
		a.newBatchAddCmd(),
		a.newBatchRemoveCmd(),
		a.newImportCmd(),
		a.newFixStatsCmd(),
		a.newListCmd(),
		a.newCompareCmd(),
		a.newRankCmd(),
		a.newSuggestCmd(),
		a.newDBCmd(),
		a.newExportCmd(),
		a.newRestoreCmd(),
		a.newDeckCmd(),
	)
	return root
}

// setup loads settings, builds the logger, loads the reference database and
// opens the collection.
func (a *App) setup() error {
	settings, err := config.Load(a.configPath)
	if err != nil {
		return ExitWithError(codeUsage, err)
	}
	a.settings = settings

	level := settings.LogLevel
	if strings.TrimSpace(a.logLevel) != "" {
		level = a.logLevel
	}
	a.log, err = newLogger(a.errOut, level)
	if err != nil {
		return err
	}

	db, err := partsdb.Load(settings.DatabaseFile)
	if err != nil {
		a.log.WithFields(logrus.Fields{
			"file": settings.DatabaseFile,
		}).Warnf("Reference database unavailable, parts will be added without stats: %v", err)
	} else {
		a.log.WithFields(logrus.Fields{
			"blades":   db.Len(domain.Blades),
			"ratchets": db.Len(domain.Ratchets),
			"bits":     db.Len(domain.Bits),
		}).Debug("Reference database loaded")
	}

	a.mgr = collection.Open(collection.Options{
		Path:         settings.CollectionFile,
		Database:     db,
		SaveInterval: settings.SaveInterval,
		Logger:       a.log,
	})
	return nil
}

func newLogger(w io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, ExitWithError(codeUsage, fmt.Errorf("invalid log level %q", level))
	}
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(lvl)
	return log, nil
}

// usageArgs turns positional-argument validation failures into usage errors.
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return ExitWithError(codeUsage, fmt.Errorf("%w\nUsage: %s", err, cmd.UseLine()))
		}
		return nil
	}
}

func parseCategoryArg(s string) (domain.Category, error) {
	cat, err := domain.ParseCategory(s)
	if err != nil {
		return "", ExitWithError(codeUsage, err)
	}
	return cat, nil
}

// confirm asks a yes/no question; anything but y/yes is a no.
func (a *App) confirm(question string) bool {
	fmt.Fprintf(a.out, "%s [y/N]: ", question)
	response, _ := a.in.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

// declined ends a command whose confirmation was refused.
func (a *App) declined() error {
	fmt.Fprintln(a.out, "Aborted.")
	return Exit(codeOK)
}
