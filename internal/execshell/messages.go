package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageSpawned
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericSpawnedTemplateConstant          = "Spawned %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	unknownFailureMessageConstant           = "unknown error"
	unknownTargetLabelConstant              = "unknown target"
	emptyStringConstant                     = ""
)

const (
	probeStartTemplateConstant            = "Checking whether %s is available"
	probeSuccessTemplateConstant          = "%s is available"
	probeFailureTemplateConstant          = "%s is not usable (exit code %d)"
	probeExecutionFailureTemplateConstant = "%s is not available: %s"
)

const (
	openStartTemplateConstant                       = "Opening %s with %s"
	openSuccessTemplateConstant                     = "Opened %s with %s"
	openSpawnedTemplateConstant                     = "Launched %s with %s"
	openFailureTemplateConstant                     = "Failed to open %s with %s (exit code %d)"
	openExecutionFailureTemplateConstant            = "Unable to open %s with %s: %s"
	openApplicationStartTemplateConstant            = "Opening %s in %s via %s"
	openApplicationSuccessTemplateConstant          = "Opened %s in %s via %s"
	openApplicationSpawnedTemplateConstant          = "Launched %s in %s via %s"
	openApplicationFailureTemplateConstant          = "Failed to open %s in %s via %s (exit code %d)"
	openApplicationExecutionFailureTemplateConstant = "Unable to open %s in %s via %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildSpawnedMessage formats the message describing a detached command that was created.
func (formatter CommandMessageFormatter) BuildSpawnedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSpawned)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Details.Purpose {
	case CommandPurposeProbe:
		return formatter.describeProbeMessage(command, result, failure, stage)
	case CommandPurposeOpen:
		return formatter.describeOpenMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeProbeMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	shellName := string(command.Name)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(probeStartTemplateConstant, shellName)
	case messageStageSuccess:
		return fmt.Sprintf(probeSuccessTemplateConstant, shellName)
	case messageStageFailure:
		return fmt.Sprintf(probeFailureTemplateConstant, shellName, result.ExitCode)
	case messageStageExecutionFailure:
		return fmt.Sprintf(probeExecutionFailureTemplateConstant, shellName, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeOpenMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	target := formatter.ensureValue(command.Details.Target)
	shellName := string(command.Name)
	application := strings.TrimSpace(command.Details.Application)

	if len(application) > 0 {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(openApplicationStartTemplateConstant, target, application, shellName)
		case messageStageSuccess:
			return fmt.Sprintf(openApplicationSuccessTemplateConstant, target, application, shellName)
		case messageStageSpawned:
			return fmt.Sprintf(openApplicationSpawnedTemplateConstant, target, application, shellName)
		case messageStageFailure:
			return fmt.Sprintf(openApplicationFailureTemplateConstant, target, application, shellName, result.ExitCode)
		case messageStageExecutionFailure:
			return fmt.Sprintf(openApplicationExecutionFailureTemplateConstant, target, application, shellName, formatter.describeFailure(failure))
		}
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(openStartTemplateConstant, target, shellName)
	case messageStageSuccess:
		return fmt.Sprintf(openSuccessTemplateConstant, target, shellName)
	case messageStageSpawned:
		return fmt.Sprintf(openSpawnedTemplateConstant, target, shellName)
	case messageStageFailure:
		return fmt.Sprintf(openFailureTemplateConstant, target, shellName, result.ExitCode)
	case messageStageExecutionFailure:
		return fmt.Sprintf(openExecutionFailureTemplateConstant, target, shellName, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := command.String()
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageSpawned:
		return fmt.Sprintf(genericSpawnedTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode)
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return unknownTargetLabelConstant
	}
	return trimmedValue
}
