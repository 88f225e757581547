package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/steveswinsburg/git-tools/internal/execshell"
	"github.com/steveswinsburg/git-tools/internal/ui"
)

const (
	testRemoteURLConstant                  = "https://example.com/project/alpha.git"
	testTargetPathConstant                 = "/tmp/checkouts/alpha"
	testStandardErrorMessageConstant       = "fatal: remote error"
	testExecutionFailureReasonConstant     = "executable file not found"
	testStartMessageExpectationConstant    = "Cloning " + testRemoteURLConstant + " into " + testTargetPathConstant
	testSuccessMessageExpectationConstant  = "Cloned " + testRemoteURLConstant + " into " + testTargetPathConstant
	testFailureMessageExpectationConstant  = "Failed to clone " + testRemoteURLConstant + " into " + testTargetPathConstant + " (exit code 128: " + testStandardErrorMessageConstant + ")"
	testExecutionFailureMessageExpectation = "Unable to clone " + testRemoteURLConstant + " into " + testTargetPathConstant + ": " + testExecutionFailureReasonConstant
)

func TestConsoleCommandEventLoggerEmitsMessages(testInstance *testing.T) {
	command := execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments: []string{"clone", testRemoteURLConstant, testTargetPathConstant},
		},
	}

	testCases := []struct {
		name            string
		invoke          func(logger *ui.ConsoleCommandEventLogger)
		expectedLevel   zapcore.Level
		expectedMessage string
	}{
		{
			name: "command_started",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandStarted(command)
			},
			expectedLevel:   zapcore.DebugLevel,
			expectedMessage: testStartMessageExpectationConstant,
		},
		{
			name: "command_completed_success",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 0})
			},
			expectedLevel:   zapcore.DebugLevel,
			expectedMessage: testSuccessMessageExpectationConstant,
		},
		{
			name: "command_completed_failure",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 128, StandardError: testStandardErrorMessageConstant})
			},
			expectedLevel:   zapcore.WarnLevel,
			expectedMessage: testFailureMessageExpectationConstant,
		},
		{
			name: "command_execution_failed",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandExecutionFailed(command, errors.New(testExecutionFailureReasonConstant))
			},
			expectedLevel:   zapcore.ErrorLevel,
			expectedMessage: testExecutionFailureMessageExpectation,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observedCore, observedLogs := observer.New(zapcore.DebugLevel)
			eventLogger := ui.NewConsoleCommandEventLogger(zap.New(observedCore))

			testCase.invoke(eventLogger)

			loggedEntries := observedLogs.All()
			require.NotEmpty(testInstance, loggedEntries)
			require.Equal(testInstance, testCase.expectedLevel, loggedEntries[0].Level)
			require.Equal(testInstance, testCase.expectedMessage, loggedEntries[0].Message)
		})
	}
}

func TestConsoleCommandEventLoggerEchoesStandardOutput(testInstance *testing.T) {
	observedCore, observedLogs := observer.New(zapcore.DebugLevel)
	eventLogger := ui.NewConsoleCommandEventLogger(zap.New(observedCore))

	eventLogger.CommandCompleted(execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"pull"}, WorkingDirectory: testTargetPathConstant},
	}, execshell.ExecutionResult{StandardOutput: "Already up to date.\n"})

	loggedEntries := observedLogs.All()
	require.Len(testInstance, loggedEntries, 2)
	require.Equal(testInstance, "Already up to date.", loggedEntries[1].Message)
}

func TestConsoleCommandEventLoggerToleratesNilLogger(testInstance *testing.T) {
	eventLogger := ui.NewConsoleCommandEventLogger(nil)
	require.NotPanics(testInstance, func() {
		eventLogger.CommandStarted(execshell.ShellCommand{Name: execshell.CommandGit})
	})
}
