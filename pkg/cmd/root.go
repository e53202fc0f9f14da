package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	cfgfile "github.com/siyuan-infoblox/scala-imports-organizer/pkg/config"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/organizer"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/strategy"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/utils"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/version"
	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/watcher"
)

const (
	UseDescription   = "sion [flags] PATH"
	ShortDescription = "Scala imports organizer - A tool to clean, sort and group Scala imports"
	LongDescription  = `sion is a command-line tool that reorganizes Scala import declarations.

It removes unneeded imports, merges or expands selector lists, sorts
declarations, and partitions them into blank-line separated groups by
qualifier prefix. Three dependency strategies are available:

  recompute        discard existing imports and rebuild from usage
  modify           keep existing imports, dropping unused selectors (default)
  remove-unneeded  only remove what is provably unused, keeping formatting

PATH can be either a single Scala file or a directory. When a directory is
specified, all Scala source files in the directory and subdirectories will
be processed recursively.`
)

var (
	groups          []string
	strategyName    string
	importsToAdd    []string
	wildcards       []string
	collapseMax     int
	collapseExclude []string
	expand          bool
	local           bool
	inPlace         bool
	watch           bool
	verbose         bool
	showVersion     bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:          UseDescription,
	Short:        ShortDescription,
	Long:         LongDescription,
	Args:         validateArgs,
	RunE:         run,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
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
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&groups, "groups", nil, "Comma-separated qualifier prefixes to group imports by (e.g. java,scala,com.acme)")
	rootCmd.PersistentFlags().StringVar(&strategyName, "strategy", "", "Dependency strategy: recompute, modify or remove-unneeded")
	rootCmd.PersistentFlags().StringSliceVar(&importsToAdd, "add", nil, "Imports to add before organizing (e.g. com.acme.util.Logging)")
	rootCmd.PersistentFlags().StringSliceVar(&wildcards, "use-wildcards", nil, "Qualifiers always rewritten to a wildcard import")
	rootCmd.PersistentFlags().IntVar(&collapseMax, "collapse-to-wildcard", 0, "Collapse selector lists longer than this to a wildcard (0 disables)")
	rootCmd.PersistentFlags().StringSliceVar(&collapseExclude, "collapse-exclude", nil, "Qualifiers exempt from wildcard collapsing")
	rootCmd.PersistentFlags().BoolVar(&expand, "expand", false, "Expand multi-selector imports instead of collapsing")
	rootCmd.PersistentFlags().BoolVar(&local, "local", false, "Also organize imports inside class and function bodies")
	rootCmd.PersistentFlags().BoolVar(&inPlace, "in-place", false, "Modify files in place instead of printing to stdout")
	rootCmd.PersistentFlags().BoolVar(&watch, "watch", false, "Keep running and reorganize on file changes (implies --in-place)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version information")
}

func validateArgs(cmd *cobra.Command, args []string) error {
	// If version flag is set, we don't need file arguments
	if showVersion {
		return nil
	}
	return cobra.ExactArgs(1)(cmd, args)
}

func run(cmd *cobra.Command, args []string) error {
	// Handle version flag
	if showVersion {
		fmt.Println(version.Get())
		return nil
	}

	path := args[0]
	procConfig, err := buildConfig(path)
	if err != nil {
		return err
	}

	proc, err := organizer.NewProcessor(procConfig, logger)
	if err != nil {
		return err
	}

	if !watch {
		return proc.ProcessPath(path)
	}

	if err := proc.ProcessPath(path); err != nil {
		logger.Error("initial run failed", zap.Error(err))
	}
	fw, err := watcher.New(path, func() error { return proc.ProcessPath(path) }, logger)
	if err != nil {
		return err
	}
	defer fw.Close()
	return fw.Watch()
}

// buildConfig merges sion.yaml with command-line flags; flags win.
func buildConfig(path string) (organizer.ProcessorConfig, error) {
	fileCfg, err := cfgfile.Load("")
	if err != nil {
		return organizer.ProcessorConfig{}, err
	}

	if groups == nil {
		groups = fileCfg.Groups
	}
	if strategyName == "" {
		strategyName = fileCfg.Strategy
	}
	if importsToAdd == nil {
		importsToAdd = fileCfg.Add
	}
	if wildcards == nil {
		wildcards = fileCfg.Wildcards
	}
	if collapseMax == 0 {
		collapseMax = fileCfg.CollapseToWildcard.Max
	}
	if collapseExclude == nil {
		collapseExclude = fileCfg.CollapseToWildcard.Exclude
	}
	expand = expand || fileCfg.Expand
	local = local || fileCfg.Local

	// A groupless invocation still groups the project's own packages when
	// the organization can be read from build.sbt.
	if len(groups) == 0 {
		if org := utils.GetProjectOrganization(path); org != "" {
			groups = []string{"java", "scala", org}
		}
	}

	strat, err := strategy.Parse(strategyName)
	if err != nil {
		return organizer.ProcessorConfig{}, err
	}

	toAdd, err := parseImportsToAdd(importsToAdd)
	if err != nil {
		return organizer.ProcessorConfig{}, err
	}

	return organizer.ProcessorConfig{
		Config: organizer.Config{
			Strategy:              strat,
			ImportsToAdd:          toAdd,
			Groups:                groups,
			ExpandImports:         expand,
			AlwaysUseWildcards:    wildcards,
			CollapseToWildcardMax: collapseMax,
			CollapseExclude:       collapseExclude,
			OrganizeLocalImports:  local,
		},
		InPlace:   inPlace || watch,
		CacheSize: fileCfg.CacheSize,
	}, nil
}

// parseImportsToAdd splits "qualifier.Name" specs on the last dot.
func parseImportsToAdd(specs []string) ([]strategy.Need, error) {
	var needs []strategy.Need
	for _, spec := range specs {
		i := strings.LastIndexByte(spec, '.')
		if i <= 0 || i == len(spec)-1 {
			return nil, fmt.Errorf("invalid import %q: expected qualifier.Name", spec)
		}
		needs = append(needs, strategy.Need{
			Qualifier: strings.Split(spec[:i], "."),
			Name:      spec[i+1:],
		})
	}
	return needs, nil
}

func Execute(buildVersion string) error {
	if buildVersion != "" && buildVersion != "(devel)" {
		version.Version = buildVersion
	}
	return rootCmd.Execute()
}
