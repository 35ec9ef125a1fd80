// Package cli provides the command line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skillctx/skx/internal/collect"
	"github.com/skillctx/skx/internal/config"
	"github.com/skillctx/skx/internal/gitrepo"
	"github.com/skillctx/skx/internal/output"
	"github.com/skillctx/skx/internal/services/clipboard"
	"github.com/skillctx/skx/internal/skills"
	"github.com/skillctx/skx/internal/tokenizer"
	"github.com/skillctx/skx/internal/tokentree"
	"github.com/skillctx/skx/internal/utils"
)

const (
	rootUse              = "skx"
	rootShortDescription = "skx command line interface"
	rootLongDescription  = `skx inspects an agent-skills repository.
It renders token-usage trees for the context files an agent loads, counts tokens
for arbitrary text, validates skill manifests, and syncs skills into an agent
home directory.`

	versionFlagName        = "version"
	versionFlagDescription = "display application version"
	versionTemplate        = "skx version: %s\n"

	treeUse              = "tree"
	treeAlias            = "t"
	treeShortDescription = "display token usage tree (" + treeAlias + ")"
	treeLongDescription  = `Render the token counts of the repository's context files as an annotated
directory tree. Directory rows show the aggregated count of their descendants;
file rows add a proportional bar scaled against the largest file.`
	treeUsageExample = `  # Token tree for the repository containing the working directory
  skx tree

  # Wider bars for a specific repository, copied to the clipboard
  skx tree --path ~/src/agent-skills --bar-width 40 --copy`

	countUse              = "count [file]"
	countAlias            = "c"
	countShortDescription = "count tokens of a file or stdin (" + countAlias + ")"
	countLongDescription  = `Print the token count of the given file, or of standard input when no file
argument is provided.`
	countUsageExample = `  # Count tokens in a file
  skx count AGENTS.md

  # Count tokens from a pipe
  git show HEAD:AGENTS.md | skx count`

	checkUse              = "check"
	checkShortDescription = "validate skill manifests"
	checkLongDescription  = `Validate every skill directory: the SKILL.md manifest must exist, carry front
matter with name and description, the name must match the directory, and every
relative path referenced in the manifest must resolve to an existing file.`

	syncUse              = "sync"
	syncShortDescription = "sync skills into an agent home directory"
	syncLongDescription  = `Copy skill directories into an agent home. Files already present with
identical content are left untouched, and the destination is re-hashed against
the source after copying. Use --dry-run to preview the changes and
--remove-stale to delete destination skills the source no longer carries.`

	configUse                  = "config"
	configShortDescription     = "manage skx configuration"
	configInitUse              = "init"
	configInitShortDescription = "write the default configuration file"

	pathFlagName               = "path"
	pathFlagShorthand          = "p"
	pathFlagDescription        = "repository path (default: auto-detected git root)"
	barWidthFlagName           = "bar-width"
	barWidthFlagShorthand      = "w"
	barWidthFlagDescription    = "bar width in cells, scaled against the largest file"
	modelFlagName              = "model"
	modelFlagDescription       = "tokenizer model to use for token counting"
	copyFlagName               = "copy"
	copyFlagDescription        = "copy the rendered tree to the system clipboard"
	colorFlagName              = "color"
	colorFlagDescription       = "colorize output: auto, always, or never"
	skillsPathFlagName         = "skills-path"
	skillsPathFlagDescription  = "path to the skills directory"
	destinationFlagName        = "dest"
	destinationFlagDescription = "destination skills directory (default: $CODEX_HOME/skills or ~/.codex/skills)"
	dryRunFlagName             = "dry-run"
	dryRunFlagDescription      = "report changes without writing anything"
	removeStaleFlagName        = "remove-stale"
	removeStaleFlagDescription = "delete destination skills missing from the source"
	globalFlagName             = "global"
	globalFlagDescription      = "write the global configuration file"
	forceFlagName              = "force"
	forceFlagDescription       = "overwrite an existing configuration file"

	defaultBarWidth         = 24
	defaultTokenizerModel   = "gpt-4o"
	defaultSkillsPath       = "skills"
	colorModeAuto           = "auto"
	colorModeAlways         = "always"
	colorModeNever          = "never"
	invalidColorModeMessage = "invalid color mode '%s'; accepted values: auto, always, never"
	invalidBarWidthMessage  = "bar width must be positive, got %d"

	warningSkippedFilesFormat     = "Warning: skipped %d binary or non-UTF-8 files\n"
	checkPassedMessage            = "all skills are valid"
	checkFailedFormat             = "skill validation failed: %d findings"
	checkFindingRowFormat         = "%-24s %-8s %s\n"
	syncResultRowFormat           = "%-24s added %d, updated %d\n"
	syncRemovedRowFormat          = "%-24s removed\n"
	syncDryRunNotice              = "dry run: nothing was written"
	configurationWrittenFormat    = "configuration written to %s\n"
	errorCountBinaryInput         = "input is binary or not valid UTF-8"
	errorReadStandardInputFormat  = "reading standard input: %w"
	errorReadCountInputFormat     = "reading %s: %w"
	errorResolveDestinationFormat = "resolving sync destination: %w"
	errorResolveSkillsPathFormat  = "resolving skills path %s: %w"
)

// Execute runs the skx application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.AddCommand(
		createTreeCommand(),
		createCountCommand(),
		createCheckCommand(),
		createSyncCommand(),
		createConfigCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createTreeCommand returns the tree subcommand.
func createTreeCommand() *cobra.Command {
	var repositoryPath string
	var barWidth int
	var model string
	var copyEnabled bool
	var colorMode string

	treeCommand := &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Long:    treeLongDescription,
		Example: treeUsageExample,
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{})
			if configurationError != nil {
				return configurationError
			}
			treeConfiguration := applicationConfiguration.Tree

			if !command.Flags().Changed(barWidthFlagName) && treeConfiguration.BarWidth != nil {
				barWidth = *treeConfiguration.BarWidth
			}
			if !command.Flags().Changed(modelFlagName) && treeConfiguration.Model != "" {
				model = treeConfiguration.Model
			}
			if !command.Flags().Changed(copyFlagName) && treeConfiguration.Clipboard != nil {
				copyEnabled = *treeConfiguration.Clipboard
			}
			if !command.Flags().Changed(colorFlagName) && treeConfiguration.Color != "" {
				colorMode = treeConfiguration.Color
			}
			if barWidth <= 0 {
				return fmt.Errorf(invalidBarWidthMessage, barWidth)
			}
			colorize, colorError := resolveColorize(colorMode)
			if colorError != nil {
				return colorError
			}

			return runTree(repositoryPath, barWidth, model, treeConfiguration.Include, copyEnabled, colorize)
		},
	}

	treeCommand.Flags().StringVarP(&repositoryPath, pathFlagName, pathFlagShorthand, "", pathFlagDescription)
	treeCommand.Flags().IntVarP(&barWidth, barWidthFlagName, barWidthFlagShorthand, defaultBarWidth, barWidthFlagDescription)
	treeCommand.Flags().StringVar(&model, modelFlagName, defaultTokenizerModel, modelFlagDescription)
	treeCommand.Flags().StringVar(&colorMode, colorFlagName, colorModeAuto, colorFlagDescription)
	registerBooleanFlag(treeCommand.Flags(), &copyEnabled, copyFlagName, false, copyFlagDescription)
	return treeCommand
}

// runTree collects the repository's context files and renders the token tree.
func runTree(repositoryPath string, barWidth int, model string, includePatterns []string, copyEnabled bool, colorize bool) error {
	repositoryRoot, detectError := gitrepo.DetectRoot(repositoryPath)
	if detectError != nil {
		return detectError
	}
	trackedPaths, listError := gitrepo.ListTrackedFiles(repositoryRoot)
	if listError != nil {
		return listError
	}
	tokenCounter, _, counterError := tokenizer.NewCounter(tokenizer.Config{Model: model})
	if counterError != nil {
		return counterError
	}

	collected, collectError := collect.Entries(trackedPaths, collect.Options{
		RepositoryRoot:  repositoryRoot,
		IncludePatterns: includePatterns,
		Counter:         tokenCounter,
	})
	if collectError != nil {
		return collectError
	}

	tokenTree, buildError := tokentree.Build(filepath.Base(repositoryRoot), collected.Entries)
	if buildError != nil {
		return buildError
	}
	tokentree.Aggregate(tokenTree)

	if collected.Skipped > 0 {
		fmt.Fprintf(os.Stderr, warningSkippedFilesFormat, collected.Skipped)
	}
	if writeError := output.WriteTree(os.Stdout, tokenTree, output.Options{BarWidth: barWidth, Colorize: colorize}); writeError != nil {
		return writeError
	}
	if copyEnabled {
		return clipboard.NewService().Copy(output.RenderText(tokenTree, barWidth))
	}
	return nil
}

// createCountCommand returns the count subcommand.
func createCountCommand() *cobra.Command {
	var model string

	countCommand := &cobra.Command{
		Use:     countUse,
		Aliases: []string{countAlias},
		Short:   countShortDescription,
		Long:    countLongDescription,
		Example: countUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{})
			if configurationError != nil {
				return configurationError
			}
			if !command.Flags().Changed(modelFlagName) && applicationConfiguration.Count.Model != "" {
				model = applicationConfiguration.Count.Model
			}

			var data []byte
			if len(arguments) == 1 {
				fileData, readError := os.ReadFile(arguments[0])
				if readError != nil {
					return fmt.Errorf(errorReadCountInputFormat, arguments[0], readError)
				}
				data = fileData
			} else {
				inputData, readError := io.ReadAll(command.InOrStdin())
				if readError != nil {
					return fmt.Errorf(errorReadStandardInputFormat, readError)
				}
				data = inputData
			}

			tokenCounter, _, counterError := tokenizer.NewCounter(tokenizer.Config{Model: model})
			if counterError != nil {
				return counterError
			}
			countResult, countError := tokenizer.CountBytes(tokenCounter, data)
			if countError != nil {
				return countError
			}
			if !countResult.Counted {
				return errors.New(errorCountBinaryInput)
			}
			fmt.Fprintln(command.OutOrStdout(), countResult.Tokens)
			return nil
		},
	}

	countCommand.Flags().StringVar(&model, modelFlagName, defaultTokenizerModel, modelFlagDescription)
	return countCommand
}

// createCheckCommand returns the check subcommand.
func createCheckCommand() *cobra.Command {
	var skillsPath string

	checkCommand := &cobra.Command{
		Use:   checkUse,
		Short: checkShortDescription,
		Long:  checkLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{})
			if configurationError != nil {
				return configurationError
			}
			if !command.Flags().Changed(skillsPathFlagName) && applicationConfiguration.Check.SkillsPath != "" {
				skillsPath = applicationConfiguration.Check.SkillsPath
			}

			skillsRoot, absoluteError := filepath.Abs(skillsPath)
			if absoluteError != nil {
				return fmt.Errorf(errorResolveSkillsPathFormat, skillsPath, absoluteError)
			}
			repositoryRoot := filepath.Dir(skillsRoot)

			findings, checkError := skills.CheckAll(repositoryRoot, skillsRoot)
			if checkError != nil {
				return checkError
			}
			if len(findings) == 0 {
				fmt.Println(checkPassedMessage)
				return nil
			}

			for _, finding := range findings {
				fmt.Printf(checkFindingRowFormat, finding.Skill, finding.Level, finding.Message)
			}
			return fmt.Errorf(checkFailedFormat, len(findings))
		},
	}

	checkCommand.Flags().StringVar(&skillsPath, skillsPathFlagName, defaultSkillsPath, skillsPathFlagDescription)
	return checkCommand
}

// createSyncCommand returns the sync subcommand.
func createSyncCommand() *cobra.Command {
	var skillsPath string
	var destination string
	var dryRun bool
	var removeStale bool

	syncCommand := &cobra.Command{
		Use:   syncUse,
		Short: syncShortDescription,
		Long:  syncLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{})
			if configurationError != nil {
				return configurationError
			}
			if !command.Flags().Changed(destinationFlagName) && applicationConfiguration.Sync.Destination != "" {
				destination = applicationConfiguration.Sync.Destination
			}
			if destination == "" {
				defaultDestination, destinationError := skills.DefaultDestination()
				if destinationError != nil {
					return fmt.Errorf(errorResolveDestinationFormat, destinationError)
				}
				destination = defaultDestination
			}

			summary, syncError := skills.Sync(skills.SyncOptions{
				SourceRoot:      skillsPath,
				DestinationRoot: destination,
				DryRun:          dryRun,
				RemoveStale:     removeStale,
			})
			if syncError != nil {
				return syncError
			}
			for _, result := range summary.Skills {
				fmt.Printf(syncResultRowFormat, result.Skill, result.Added, result.Updated)
			}
			for _, removedSkill := range summary.Removed {
				fmt.Printf(syncRemovedRowFormat, removedSkill)
			}
			if dryRun {
				fmt.Println(syncDryRunNotice)
			}
			return nil
		},
	}

	syncCommand.Flags().StringVar(&skillsPath, skillsPathFlagName, defaultSkillsPath, skillsPathFlagDescription)
	syncCommand.Flags().StringVar(&destination, destinationFlagName, "", destinationFlagDescription)
	registerBooleanFlag(syncCommand.Flags(), &dryRun, dryRunFlagName, false, dryRunFlagDescription)
	registerBooleanFlag(syncCommand.Flags(), &removeStale, removeStaleFlagName, false, removeStaleFlagDescription)
	return syncCommand
}

// createConfigCommand returns the config subcommand with its init action.
func createConfigCommand() *cobra.Command {
	configCommand := &cobra.Command{
		Use:   configUse,
		Short: configShortDescription,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}

	var writeGlobal bool
	var force bool
	initCommand := &cobra.Command{
		Use:   configInitUse,
		Short: configInitShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			writtenPath, initializeError := config.InitializeConfiguration(config.InitOptions{
				Target: target,
				Force:  force,
			})
			if initializeError != nil {
				return initializeError
			}
			fmt.Printf(configurationWrittenFormat, writtenPath)
			return nil
		},
	}
	initCommand.Flags().BoolVar(&writeGlobal, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&force, forceFlagName, false, forceFlagDescription)

	configCommand.AddCommand(initCommand)
	return configCommand
}

// resolveColorize maps a color mode to a concrete decision. Auto enables color
// only when standard output is a terminal.
func resolveColorize(colorMode string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(colorMode)) {
	case colorModeAlways:
		return true, nil
	case colorModeNever:
		return false, nil
	case colorModeAuto, "":
		outputInformation, statError := os.Stdout.Stat()
		if statError != nil {
			return false, nil
		}
		return outputInformation.Mode()&os.ModeCharDevice != 0, nil
	default:
		return false, fmt.Errorf(invalidColorModeMessage, colorMode)
	}
}
