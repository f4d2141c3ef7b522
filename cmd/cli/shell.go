package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/temirov/winopen/internal/utils"
	"github.com/temirov/winopen/internal/winshell"
)

const (
	shellCommandUseConstant              = "shell"
	shellCommandShortDescriptionConstant = "Print the shell used to open targets"
	shellCommandLongDescriptionConstant  = "shell prints the shell winopen uses, probing for PowerShell and Nushell unless launcher.shell is configured."
	shellDetailsFlagNameConstant         = "details"
	shellDetailsFlagUsageConstant        = "Print the shell, whether it was configured or probed, and the configuration file in YAML."
	shellOutputTemplateConstant          = "%s\n"
)

// ShellResolverProvider supplies the resolver configured for the current invocation.
type ShellResolverProvider func() (winshell.ShellResolver, error)

// ShellCommandBuilder assembles the shell cobra command.
type ShellCommandBuilder struct {
	ResolverProvider       ShellResolverProvider
	CommandContextAccessor utils.CommandContextAccessor
}

// ShellReport is the detailed output of the shell command.
type ShellReport struct {
	Shell             winshell.Shell `yaml:"shell"`
	Configured        bool           `yaml:"configured"`
	ConfigurationFile string         `yaml:"config_file,omitempty"`
}

// Build constructs the cobra command for reporting the resolved shell.
func (builder *ShellCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   shellCommandUseConstant,
		Short: shellCommandShortDescriptionConstant,
		Long:  shellCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().Bool(shellDetailsFlagNameConstant, false, shellDetailsFlagUsageConstant)

	return command, nil
}

func (builder *ShellCommandBuilder) run(command *cobra.Command, arguments []string) error {
	detailsRequested, _ := command.Flags().GetBool(shellDetailsFlagNameConstant)

	resolver, resolverError := builder.resolveResolver()
	if resolverError != nil {
		return resolverError
	}

	executionContext := command.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}
	shell := resolver.Resolve(executionContext)

	if !detailsRequested {
		_, writeError := fmt.Fprintf(command.OutOrStdout(), shellOutputTemplateConstant, shell)
		return writeError
	}

	configurationFile, _ := builder.CommandContextAccessor.ConfigurationFilePath(executionContext)
	report := ShellReport{
		Shell:             shell,
		Configured:        isFixedResolver(resolver),
		ConfigurationFile: configurationFile,
	}

	encoder := yaml.NewEncoder(command.OutOrStdout())
	encoder.SetIndent(2)
	if encodeError := encoder.Encode(report); encodeError != nil {
		return encodeError
	}
	return encoder.Close()
}

func (builder *ShellCommandBuilder) resolveResolver() (winshell.ShellResolver, error) {
	if builder.ResolverProvider == nil {
		return winshell.Default(), nil
	}
	return builder.ResolverProvider()
}

func isFixedResolver(resolver winshell.ShellResolver) bool {
	_, fixed := resolver.(winshell.FixedResolver)
	return fixed
}
