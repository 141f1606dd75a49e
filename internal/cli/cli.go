// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/promptctx/promptctx/internal/config"
	"github.com/promptctx/promptctx/internal/contextfiles"
	"github.com/promptctx/promptctx/internal/output"
	"github.com/promptctx/promptctx/internal/prompt"
	"github.com/promptctx/promptctx/internal/services/clipboard"
	"github.com/promptctx/promptctx/internal/tokenizer"
	"github.com/promptctx/promptctx/internal/utils"
)

const (
	formatFlagName      = "format"
	summaryFlagName     = "summary"
	tokensFlagName      = "tokens"
	modelFlagName       = "model"
	copyFlagName        = "copy"
	maxFileSizeFlagName = "max-file-size"
	taskFlagName        = "task"
	configFlagName      = "config"
	versionFlagName     = "version"
	versionTemplate     = "promptctx version: %s\n"
	defaultPath         = "."
	rootUse             = "promptctx"
	rootShort           = "promptctx command line interface"
	rootLong            = `promptctx gathers file and directory content into LLM prompt context.
It respects gitignore-style rules during traversal, skips binary and oversized
files, and reports per-path failures without aborting the batch.`

	contentUse   = "content [paths...]"
	contentAlias = "c"
	contentShort = "show resolved context files (" + contentAlias + ")"
	contentLong  = `Resolve the provided paths into context file results.
Use --format to select raw or json output and --tokens to include token counts.`
	contentExample = `  # Resolve the current project as JSON
  promptctx content --format json .

  # Resolve two files with token counts
  promptctx content --tokens main.go util.go`

	promptUse   = "prompt [paths...]"
	promptAlias = "p"
	promptShort = "assemble a prompt from context files (" + promptAlias + ")"
	promptLong  = `Assemble a single prompt embedding the resolved context files.
The --task text leads the prompt; unreadable paths are listed at the end.`
	promptExample = `  # Build a prompt for a refactoring task and copy it
  promptctx prompt --task "Refactor the logging setup" --copy internal/

  # Build a prompt and report its token count
  promptctx prompt --task "Document this package" --tokens internal/output`

	formatFlagDescription      = "output format (raw or json)"
	summaryFlagDescription     = "include a summary of resolved files"
	tokensFlagDescription      = "include token counts"
	modelFlagDescription       = "tokenizer model used for token counting"
	copyFlagDescription        = "copy the rendered output to the clipboard"
	maxFileSizeFlagDescription = "maximum readable file size in megabytes"
	taskFlagDescription        = "task description leading the assembled prompt"
	configFlagDescription      = "path to a configuration file"
	versionFlagDescription     = "display application version"
	defaultTokenizerModelName  = "gpt-4o"

	invalidFormatMessage        = "invalid format value '%s'"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	tokenCountWarningFormat     = "failed to count tokens: %v"
)

// Execute runs the promptctx application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool
	var configFilePath string

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShort,
		Long:         rootLong,
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
	rootCommand.PersistentFlags().StringVar(&configFilePath, configFlagName, "", configFlagDescription)
	rootCommand.AddCommand(
		createContentCommand(&configFilePath),
		createPromptCommand(&configFilePath),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// tokenOptions stores token counting flags shared by both commands.
type tokenOptions struct {
	enabled bool
	model   string
}

// addTokenFlags registers token-related flags on the command.
func addTokenFlags(command *cobra.Command, options *tokenOptions) {
	command.Flags().BoolVar(&options.enabled, tokensFlagName, false, tokensFlagDescription)
	command.Flags().StringVar(&options.model, modelFlagName, defaultTokenizerModelName, modelFlagDescription)
}

// createContentCommand returns the content subcommand.
func createContentCommand(configFilePath *string) *cobra.Command {
	var outputFormat string = output.FormatJSON
	var summaryEnabled bool = true
	var copyEnabled bool
	var maxFileSizeMB int
	var tokenConfiguration tokenOptions

	contentCommand := &cobra.Command{
		Use:     contentUse,
		Aliases: []string{contentAlias},
		Short:   contentShort,
		Long:    contentLong,
		Example: contentExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) == 0 {
				arguments = []string{defaultPath}
			}
			session, sessionError := newSession(command, *configFilePath, maxFileSizeMB)
			if sessionError != nil {
				return sessionError
			}
			applyContentDefaults(session.configuration.Content, command, &outputFormat, &summaryEnabled, &copyEnabled, &tokenConfiguration)

			outputFormatLower := strings.ToLower(outputFormat)
			if !output.IsSupportedFormat(outputFormatLower) {
				return fmt.Errorf(invalidFormatMessage, outputFormatLower)
			}

			results := session.engine.ReadContextPaths(arguments)

			var summary *output.Summary
			if summaryEnabled {
				builtSummary := output.BuildSummary(results)
				if tokenConfiguration.enabled {
					fillTokenTotals(&builtSummary, results, tokenConfiguration, session.logger)
				}
				summary = &builtSummary
			}

			var rendered string
			if outputFormatLower == output.FormatJSON {
				renderedJSON, renderError := output.RenderJSON(results, summary)
				if renderError != nil {
					return renderError
				}
				rendered = renderedJSON
			} else {
				rendered = output.RenderRaw(results, summary)
			}

			return emit(command, rendered, copyEnabled)
		},
	}

	contentCommand.Flags().StringVar(&outputFormat, formatFlagName, output.FormatJSON, formatFlagDescription)
	contentCommand.Flags().BoolVar(&summaryEnabled, summaryFlagName, true, summaryFlagDescription)
	contentCommand.Flags().BoolVar(&copyEnabled, copyFlagName, false, copyFlagDescription)
	contentCommand.Flags().IntVar(&maxFileSizeMB, maxFileSizeFlagName, 0, maxFileSizeFlagDescription)
	addTokenFlags(contentCommand, &tokenConfiguration)
	return contentCommand
}

// createPromptCommand returns the prompt subcommand.
func createPromptCommand(configFilePath *string) *cobra.Command {
	var taskText string
	var copyEnabled bool
	var maxFileSizeMB int
	var tokenConfiguration tokenOptions

	promptCommand := &cobra.Command{
		Use:     promptUse,
		Aliases: []string{promptAlias},
		Short:   promptShort,
		Long:    promptLong,
		Example: promptExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) == 0 {
				arguments = []string{defaultPath}
			}
			session, sessionError := newSession(command, *configFilePath, maxFileSizeMB)
			if sessionError != nil {
				return sessionError
			}
			applyPromptDefaults(session.configuration.Prompt, command, &copyEnabled, &tokenConfiguration)

			results := session.engine.ReadContextPaths(arguments)
			builtPrompt := prompt.Build(taskText, results)

			if tokenConfiguration.enabled {
				reportPromptTokens(command, builtPrompt, tokenConfiguration, session.logger)
			}

			return emit(command, builtPrompt, copyEnabled)
		},
	}

	promptCommand.Flags().StringVar(&taskText, taskFlagName, "", taskFlagDescription)
	promptCommand.Flags().BoolVar(&copyEnabled, copyFlagName, false, copyFlagDescription)
	promptCommand.Flags().IntVar(&maxFileSizeMB, maxFileSizeFlagName, 0, maxFileSizeFlagDescription)
	addTokenFlags(promptCommand, &tokenConfiguration)
	return promptCommand
}

// session bundles the per-invocation collaborators built from configuration.
type session struct {
	engine        *contextfiles.Engine
	configuration config.ApplicationConfiguration
	logger        *zap.Logger
}

// newSession loads configuration and constructs the engine for one command
// invocation.
func newSession(command *cobra.Command, configFilePath string, maxFileSizeMB int) (*session, error) {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return nil, fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}

	configuration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: configFilePath,
	})
	if configurationError != nil {
		return nil, configurationError
	}

	logger, loggerError := utils.NewApplicationLogger()
	if loggerError != nil {
		return nil, fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
	}

	maxFileSizeBytes := int64(0)
	if configuration.Engine.MaxFileSizeMB != nil {
		maxFileSizeBytes = int64(*configuration.Engine.MaxFileSizeMB) * 1024 * 1024
	}
	if maxFileSizeMB > 0 {
		maxFileSizeBytes = int64(maxFileSizeMB) * 1024 * 1024
	}

	engine := contextfiles.NewEngine(contextfiles.Config{
		WorkingDirectory: workingDirectory,
		MaxFileSizeBytes: maxFileSizeBytes,
		Logger:           logger,
	})

	return &session{engine: engine, configuration: configuration, logger: logger}, nil
}

// applyContentDefaults overlays configuration-file defaults onto flags the
// user did not set explicitly.
func applyContentDefaults(defaults config.ContentConfiguration, command *cobra.Command, outputFormat *string, summaryEnabled *bool, copyEnabled *bool, tokenConfiguration *tokenOptions) {
	if defaults.Format != "" && !command.Flags().Changed(formatFlagName) {
		*outputFormat = defaults.Format
	}
	if defaults.Summary != nil && !command.Flags().Changed(summaryFlagName) {
		*summaryEnabled = *defaults.Summary
	}
	if defaults.Clipboard != nil && !command.Flags().Changed(copyFlagName) {
		*copyEnabled = *defaults.Clipboard
	}
	applyTokenDefaults(defaults.Tokens, command, tokenConfiguration)
}

// applyPromptDefaults overlays prompt configuration defaults onto flags.
func applyPromptDefaults(defaults config.PromptConfiguration, command *cobra.Command, copyEnabled *bool, tokenConfiguration *tokenOptions) {
	if defaults.Clipboard != nil && !command.Flags().Changed(copyFlagName) {
		*copyEnabled = *defaults.Clipboard
	}
	applyTokenDefaults(defaults.Tokens, command, tokenConfiguration)
}

func applyTokenDefaults(defaults config.TokenConfiguration, command *cobra.Command, tokenConfiguration *tokenOptions) {
	if defaults.Enabled != nil && !command.Flags().Changed(tokensFlagName) {
		tokenConfiguration.enabled = *defaults.Enabled
	}
	if defaults.Model != "" && !command.Flags().Changed(modelFlagName) {
		tokenConfiguration.model = defaults.Model
	}
}

// fillTokenTotals counts tokens across successful results and records the
// total on the summary. Counting failures degrade to a warning.
func fillTokenTotals(summary *output.Summary, results []contextfiles.ContextFileResult, tokenConfiguration tokenOptions, logger *zap.Logger) {
	counter, resolvedModel, counterError := tokenizer.NewCounter(tokenizer.Config{Model: tokenConfiguration.model})
	if counterError != nil {
		logger.Warn(fmt.Sprintf(tokenCountWarningFormat, counterError))
		return
	}
	totalTokens := 0
	for _, result := range results {
		if result.Content == nil {
			continue
		}
		tokenCount, countError := counter.CountString(*result.Content)
		if countError != nil {
			logger.Warn(fmt.Sprintf(tokenCountWarningFormat, countError))
			return
		}
		totalTokens += tokenCount
	}
	summary.TotalTokens = totalTokens
	summary.Model = resolvedModel
}

// reportPromptTokens prints the assembled prompt's token count to stderr so
// the prompt itself stays clean on stdout.
func reportPromptTokens(command *cobra.Command, builtPrompt string, tokenConfiguration tokenOptions, logger *zap.Logger) {
	counter, resolvedModel, counterError := tokenizer.NewCounter(tokenizer.Config{Model: tokenConfiguration.model})
	if counterError != nil {
		logger.Warn(fmt.Sprintf(tokenCountWarningFormat, counterError))
		return
	}
	tokenCount, countError := counter.CountString(builtPrompt)
	if countError != nil {
		logger.Warn(fmt.Sprintf(tokenCountWarningFormat, countError))
		return
	}
	fmt.Fprintf(command.ErrOrStderr(), "prompt tokens: %d (%s)\n", tokenCount, resolvedModel)
}

// emit writes the rendered text to stdout and optionally to the clipboard.
func emit(command *cobra.Command, rendered string, copyEnabled bool) error {
	fmt.Fprint(command.OutOrStdout(), rendered)
	if !strings.HasSuffix(rendered, "\n") {
		fmt.Fprintln(command.OutOrStdout())
	}
	if copyEnabled {
		if copyError := clipboard.NewService().Copy(rendered); copyError != nil {
			return copyError
		}
	}
	return nil
}
