// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/dirtree/internal/commands"
	"github.com/temirov/dirtree/internal/config"
	"github.com/temirov/dirtree/internal/filter"
	"github.com/temirov/dirtree/internal/output"
	"github.com/temirov/dirtree/internal/services/clipboard"
	"github.com/temirov/dirtree/internal/types"
	"github.com/temirov/dirtree/internal/utils"
)

const (
	depthFlagName         = "depth"
	depthFlagShorthand    = "d"
	blacklistFlagName     = "blacklist-patterns"
	blacklistShorthand    = "b"
	showHiddenFlagName    = "show-hidden"
	showHiddenShorthand   = "i"
	useGitIgnoreFlagName  = "use-git-ignore"
	useGitIgnoreShorthand = "g"
	displayEmojiFlagName  = "display-emoji"
	displayEmojiShorthand = "e"
	orderFlagName         = "order"
	styleFlagName         = "style"
	keepGoingFlagName     = "keep-going"
	summaryFlagName       = "summary"
	copyFlagName          = "copy"
	configFlagName        = "config"
	verboseFlagName       = "verbose"
	versionFlagName       = "version"
	globalFlagName        = "global"
	forceFlagName         = "force"

	depthFlagDescription        = "maximum depth to display (1-23)"
	blacklistFlagDescription    = "exclude entries whose full path contains this substring (repeatable)"
	showHiddenFlagDescription   = "show dot-files"
	useGitIgnoreFlagDescription = "exclude entries matched by the root .gitignore"
	displayEmojiFlagDescription = "prefix entries with an emoji"
	orderFlagDescription        = "sibling order: listing, name, or dirs-first"
	styleFlagDescription        = "connector style: classic or standard"
	keepGoingFlagDescription    = "render unreadable subdirectories as markers instead of aborting"
	summaryFlagDescription      = "print directory and file counts after the tree"
	copyFlagDescription         = "copy the rendered tree to the clipboard"
	configFlagDescription       = "configuration file to use instead of ./" + utils.ConfigFileName
	verboseFlagDescription      = "log filtering decisions"
	versionFlagDescription      = "display application version"
	globalFlagDescription       = "write the configuration under the home directory"
	forceFlagDescription        = "overwrite an existing configuration file"

	versionTemplate      = "dirtree version: %s\n"
	initCompletedFormat  = "configuration written to %s\n"
	rootUse              = "dirtree [path]"
	rootShortDescription = "display a directory as an ASCII tree"
	rootLongDescription  = `dirtree lists a directory and its descendants as an indented tree.
Hidden entries, .gitignore matches, and blacklisted paths can be filtered out.
Defaults come from ~/.dirtree/config.yaml and ./.dirtree.yaml; explicit flags win.`
	rootUsageExample = `  # Render the current directory three levels deep
  dirtree -d 3

  # Skip build output and honour .gitignore
  dirtree -g -b target ./project`
	initUse              = "init"
	initShortDescription = "write a default configuration file"

	errorWorkingDirectoryFormat = "%w: determine working directory: %w"
	errorCopyFormat             = "copy tree to clipboard: %w"
	errorVerboseLoggerFormat    = "create verbose logger: %w"
)

// dependencies groups collaborators that tests replace.
type dependencies struct {
	logger           *zap.Logger
	copier           clipboard.Copier
	workingDirectory func() (string, error)
	verboseLogger    func() (*zap.Logger, error)
}

// treeFlags stores the raw flag values before they are layered over configuration.
type treeFlags struct {
	depth             int
	blacklistPatterns []string
	showHidden        bool
	useGitIgnore      bool
	displayEmoji      bool
	order             string
	style             string
	keepGoing         bool
	summary           bool
	copyToClipboard   bool
	configPath        string
	verbose           bool
	showVersion       bool
}

// Execute runs the dirtree application.
func Execute(applicationLogger *zap.Logger) error {
	rootCommand := createRootCommand(dependencies{
		logger:           applicationLogger,
		copier:           clipboard.NewService(),
		workingDirectory: os.Getwd,
		verboseLogger:    utils.NewVerboseApplicationLogger,
	})
	rootCommand.SetArgs(normalizeToggleFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(deps dependencies) *cobra.Command {
	flags := treeFlags{}

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if flags.showVersion {
				_, err := fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return err
			}
			logger := deps.logger
			if logger == nil {
				logger = zap.NewNop()
			}
			if flags.verbose && deps.verboseLogger != nil {
				verboseLogger, loggerError := deps.verboseLogger()
				if loggerError != nil {
					return fmt.Errorf(errorVerboseLoggerFormat, loggerError)
				}
				defer func() { _ = verboseLogger.Sync() }()
				logger = verboseLogger
			}
			options, optionsError := resolveTreeOptions(command, &flags, arguments, deps)
			if optionsError != nil {
				return optionsError
			}
			return runTree(command.OutOrStdout(), options, logger, deps.copier)
		},
	}

	flagSet := rootCommand.Flags()
	flagSet.IntVarP(&flags.depth, depthFlagName, depthFlagShorthand, types.DefaultDepth, depthFlagDescription)
	flagSet.StringArrayVarP(&flags.blacklistPatterns, blacklistFlagName, blacklistShorthand, nil, blacklistFlagDescription)
	registerToggleFlag(flagSet, &flags.showHidden, showHiddenFlagName, showHiddenShorthand, false, showHiddenFlagDescription)
	registerToggleFlag(flagSet, &flags.useGitIgnore, useGitIgnoreFlagName, useGitIgnoreShorthand, false, useGitIgnoreFlagDescription)
	registerToggleFlag(flagSet, &flags.displayEmoji, displayEmojiFlagName, displayEmojiShorthand, false, displayEmojiFlagDescription)
	flagSet.StringVar(&flags.order, orderFlagName, types.OrderListing, orderFlagDescription)
	flagSet.StringVar(&flags.style, styleFlagName, types.StyleClassic, styleFlagDescription)
	registerToggleFlag(flagSet, &flags.keepGoing, keepGoingFlagName, "", false, keepGoingFlagDescription)
	registerToggleFlag(flagSet, &flags.summary, summaryFlagName, "", false, summaryFlagDescription)
	registerToggleFlag(flagSet, &flags.copyToClipboard, copyFlagName, "", false, copyFlagDescription)
	flagSet.StringVar(&flags.configPath, configFlagName, "", configFlagDescription)
	registerToggleFlag(flagSet, &flags.verbose, verboseFlagName, "", false, verboseFlagDescription)
	registerToggleFlag(rootCommand.PersistentFlags(), &flags.showVersion, versionFlagName, "", false, versionFlagDescription)

	rootCommand.AddCommand(createInitCommand(deps))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createInitCommand returns the init subcommand that writes the default configuration template.
func createInitCommand(deps dependencies) *cobra.Command {
	var writeGlobal bool
	var overwrite bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			workingDirectory, workingDirectoryError := deps.currentDirectory()
			if workingDirectoryError != nil {
				return workingDirectoryError
			}
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			destinationPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            overwrite,
				WorkingDirectory: workingDirectory,
			})
			if initError != nil {
				return initError
			}
			_, err := fmt.Fprintf(command.OutOrStdout(), initCompletedFormat, destinationPath)
			return err
		},
	}
	registerToggleFlag(initCommand.Flags(), &writeGlobal, globalFlagName, "", false, globalFlagDescription)
	registerToggleFlag(initCommand.Flags(), &overwrite, forceFlagName, "", false, forceFlagDescription)
	return initCommand
}

// resolveTreeOptions layers defaults, configuration files, and explicitly set flags, then validates the result.
func resolveTreeOptions(command *cobra.Command, flags *treeFlags, arguments []string, deps dependencies) (types.TreeOptions, error) {
	workingDirectory, workingDirectoryError := deps.currentDirectory()
	if workingDirectoryError != nil {
		return types.TreeOptions{}, workingDirectoryError
	}
	applicationConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: flags.configPath,
	})
	if loadError != nil {
		return types.TreeOptions{}, loadError
	}

	options := applicationConfiguration.Tree.ApplyTo(types.DefaultTreeOptions())
	if len(arguments) > 0 {
		options.RootPath = arguments[0]
	}
	if !filepath.IsAbs(options.RootPath) {
		options.RootPath = filepath.Join(workingDirectory, options.RootPath)
	}

	changed := command.Flags().Changed
	if changed(depthFlagName) {
		options.Depth = flags.depth
	}
	if changed(blacklistFlagName) {
		options.BlacklistPatterns = utils.NormalizePatterns(flags.blacklistPatterns)
	}
	if changed(showHiddenFlagName) {
		options.ShowHidden = flags.showHidden
	}
	if changed(useGitIgnoreFlagName) {
		options.UseGitIgnore = flags.useGitIgnore
	}
	if changed(displayEmojiFlagName) {
		options.DisplayEmoji = flags.displayEmoji
	}
	if changed(orderFlagName) {
		options.Order = flags.order
	}
	if changed(styleFlagName) {
		options.Style = flags.style
	}
	if changed(keepGoingFlagName) {
		options.KeepGoing = flags.keepGoing
	}
	if changed(summaryFlagName) {
		options.Summary = flags.summary
	}
	if changed(copyFlagName) {
		options.Copy = flags.copyToClipboard
	}

	if validationError := config.ValidateTreeOptions(options); validationError != nil {
		return types.TreeOptions{}, validationError
	}
	return options, nil
}

// runTree validates the root, builds the tree, and writes the rendering in a single write.
// Nothing reaches writer unless traversal and rendering both succeed.
func runTree(writer io.Writer, options types.TreeOptions, logger *zap.Logger, copier clipboard.Copier) error {
	rootDirectory, rootError := config.ResolveRootDirectory(options.RootPath)
	if rootError != nil {
		return rootError
	}

	pipelineOptions := filter.Options{
		ShowHidden:        options.ShowHidden,
		BlacklistPatterns: options.BlacklistPatterns,
		HiddenProbe:       filter.NewPlatformHiddenProbe(),
	}
	if options.UseGitIgnore {
		ignoreMatcher, ignoreError := config.LoadRootIgnoreFile(rootDirectory.AbsolutePath)
		if ignoreError != nil {
			return ignoreError
		}
		pipelineOptions.IgnoreMatcher = ignoreMatcher
	}
	pipeline := filter.NewPipeline(pipelineOptions)
	logger.Debug("filter pipeline ready", zap.String("root", rootDirectory.AbsolutePath), zap.Strings("predicates", pipeline.Predicates()))

	treeBuilder := commands.NewTreeBuilder(options, pipeline, logger)
	rootNode, buildError := treeBuilder.GetTreeData(rootDirectory.AbsolutePath)
	if buildError != nil {
		return buildError
	}

	rendered, renderError := output.NewTreeRenderer(options).RenderString(rootNode)
	if renderError != nil {
		return renderError
	}
	if _, writeError := io.WriteString(writer, rendered); writeError != nil {
		return fmt.Errorf("%w: %w", output.ErrRender, writeError)
	}

	if options.Copy && copier != nil {
		if copyError := copier.Copy(rendered); copyError != nil {
			return fmt.Errorf(errorCopyFormat, copyError)
		}
	}
	return nil
}

func (deps dependencies) currentDirectory() (string, error) {
	lookup := deps.workingDirectory
	if lookup == nil {
		lookup = os.Getwd
	}
	workingDirectory, err := lookup()
	if err != nil {
		return "", fmt.Errorf(errorWorkingDirectoryFormat, config.ErrConfiguration, err)
	}
	return workingDirectory, nil
}
