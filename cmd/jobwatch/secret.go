package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"jobwatch/internal/secrets"
)

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Manage tokens in the OS keychain",
}

var secretSetCmd = &cobra.Command{
	Use:   "set {git-token|telegram-token}",
	Short: "Store a token (read from stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(os.Stderr, "token: ")
		r := bufio.NewReader(os.Stdin)
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			return err
		}
		token := strings.TrimSpace(line)

		switch args[0] {
		case "git-token":
			return secrets.SetGitToken(token)
		case "telegram-token":
			return secrets.SetTelegramToken(token)
		}
		return errors.New("unknown secret: " + args[0])
	},
}

var secretDeleteCmd = &cobra.Command{
	Use:   "delete {git-token|telegram-token}",
	Short: "Remove a token from the keychain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "git-token":
			return secrets.DeleteGitToken()
		case "telegram-token":
			return secrets.DeleteTelegramToken()
		}
		return errors.New("unknown secret: " + args[0])
	},
}

func init() {
	secretCmd.AddCommand(secretSetCmd)
	secretCmd.AddCommand(secretDeleteCmd)
}
