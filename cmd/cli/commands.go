package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/temirov/winopen/internal/execshell"
	flagutils "github.com/temirov/winopen/internal/utils/flags"
	pathutils "github.com/temirov/winopen/internal/utils/path"
)

const (
	commandsCommandUseConstant              = "commands <target>"
	commandsCommandShortDescriptionConstant = "Print the shell invocations used to open a target"
	commandsCommandLongDescriptionConstant  = "commands prints the invocations open would try for the target, in order, without running them."
	commandsApplicationFlagNameConstant     = "app"
	commandsApplicationFlagUsageConstant    = "Application the target would be opened with."
	commandsFormatFlagNameConstant          = "format"
	commandsFormatFlagUsageConstant         = "Output format."
	commandsFormatTextConstant              = "text"
	commandsFormatYAMLConstant              = "yaml"
	commandsTextLineTemplateConstant        = "%s\n"
	creationFlagsTemplateConstant           = "0x%08X"
)

// CommandsCommandBuilder assembles the commands cobra command.
type CommandsCommandBuilder struct {
	LauncherProvider LauncherProvider
	TargetExpander   *pathutils.TargetExpander
}

// InvocationDescriptor is the serialized form of a single shell invocation.
type InvocationDescriptor struct {
	Executable    string   `yaml:"executable"`
	Arguments     []string `yaml:"arguments"`
	RawArguments  []string `yaml:"raw_arguments,omitempty"`
	CreationFlags string   `yaml:"creation_flags"`
	HideWindow    bool     `yaml:"hide_window"`
	CommandLine   string   `yaml:"command_line"`
}

// Build constructs the cobra command for printing invocations.
func (builder *CommandsCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandsCommandUseConstant,
		Short: commandsCommandShortDescriptionConstant,
		Long:  commandsCommandLongDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	command.Flags().String(commandsApplicationFlagNameConstant, "", commandsApplicationFlagUsageConstant)
	flagutils.AddChoiceFlag(command.Flags(), nil, commandsFormatFlagNameConstant, commandsFormatTextConstant, []string{commandsFormatTextConstant, commandsFormatYAMLConstant}, commandsFormatFlagUsageConstant)

	return command, nil
}

func (builder *CommandsCommandBuilder) run(command *cobra.Command, arguments []string) error {
	applicationName, _ := command.Flags().GetString(commandsApplicationFlagNameConstant)
	outputFormat := command.Flags().Lookup(commandsFormatFlagNameConstant).Value.String()

	if builder.LauncherProvider == nil {
		return nil
	}
	launcherInstance, launcherError := builder.LauncherProvider()
	if launcherError != nil {
		return launcherError
	}

	executionContext := command.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}

	expander := builder.TargetExpander
	if expander == nil {
		expander = pathutils.NewTargetExpander(pathutils.NewHomeExpander())
	}
	target := expander.Expand(arguments[0])
	applicationName = strings.TrimSpace(applicationName)

	var invocations []execshell.ShellCommand
	if len(applicationName) > 0 {
		invocations = []execshell.ShellCommand{launcherInstance.Builder().WithCommand(executionContext, target, applicationName)}
	} else {
		invocations = launcherInstance.Builder().Commands(executionContext, target)
	}

	if outputFormat == commandsFormatYAMLConstant {
		return writeInvocationsYAML(command.OutOrStdout(), invocations)
	}
	return writeInvocationsText(command.OutOrStdout(), invocations)
}

func writeInvocationsText(output io.Writer, invocations []execshell.ShellCommand) error {
	for _, invocation := range invocations {
		if _, writeError := fmt.Fprintf(output, commandsTextLineTemplateConstant, invocation.String()); writeError != nil {
			return writeError
		}
	}
	return nil
}

func writeInvocationsYAML(output io.Writer, invocations []execshell.ShellCommand) error {
	descriptors := make([]InvocationDescriptor, 0, len(invocations))
	for _, invocation := range invocations {
		descriptors = append(descriptors, describeInvocation(invocation))
	}

	encoder := yaml.NewEncoder(output)
	encoder.SetIndent(2)
	if encodeError := encoder.Encode(descriptors); encodeError != nil {
		return encodeError
	}
	return encoder.Close()
}

func describeInvocation(invocation execshell.ShellCommand) InvocationDescriptor {
	return InvocationDescriptor{
		Executable:    string(invocation.Name),
		Arguments:     append([]string{}, invocation.Details.Arguments...),
		RawArguments:  append([]string(nil), invocation.Details.RawArguments...),
		CreationFlags: fmt.Sprintf(creationFlagsTemplateConstant, invocation.Details.CreationFlags),
		HideWindow:    invocation.Details.HideWindow,
		CommandLine:   invocation.String(),
	}
}
