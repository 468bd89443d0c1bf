package cmd

import (
	"fmt"
	"strconv"

	"portranger/cmd/cli/app"
	"portranger/internal/core/domain"

	"github.com/spf13/cobra"
)

const (
	argYamlFile = iota
	argIdentifier
	argStartPort
	argEndPort
	argProtocols
	argOutputYaml
	argCount
)

func PortRangeArgsValidator(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(argCount)(cmd, args); err != nil {
		return err
	}

	if args[argIdentifier] == "" {
		return domain.ErrEmptyIdentifier
	}
	for _, index := range []int{argStartPort, argEndPort} {
		if _, err := strconv.Atoi(args[index]); err != nil {
			return fmt.Errorf("invalid port %q: must be an integer", args[index])
		}
	}
	if _, err := domain.ParseProtocolSelection(args[argProtocols]); err != nil {
		return err
	}

	fileSystem, err := app.InjectFileSystem()
	if err != nil {
		return fmt.Errorf("error injecting file system: %v", err)
	}
	exists, err := fileSystem.FileExists(args[argYamlFile])
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", args[argYamlFile], err)
	}
	if !exists {
		return fmt.Errorf("yaml file %s does not exist", args[argYamlFile])
	}

	return nil
}

func PortRangeArgsCompletion(
	cmd *cobra.Command,
	args []string,
	toComplete string,
) ([]cobra.Completion, cobra.ShellCompDirective) {
	switch len(args) {
	case argYamlFile, argOutputYaml:
		return []cobra.Completion{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
	case argProtocols:
		var choices []cobra.Completion
		for _, choice := range domain.ProtocolChoices {
			choices = append(choices, string(choice))
		}
		return choices, cobra.ShellCompDirectiveNoFileComp
	default:
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}
