package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// “Service” groups the app’s secrets in the OS keychain.
	KeyringService = "jobwatch"

	gitTokenAccount      = "jobwatch:git-token"
	telegramTokenAccount = "jobwatch:telegram-token"

	// Env overrides, for headless hosts without a keychain.
	gitTokenEnv      = "JOBWATCH_GIT_TOKEN"
	telegramTokenEnv = "JOBWATCH_TELEGRAM_TOKEN"
)

// GetGitToken returns the push token, env first then keyring. An
// empty result is not an error: pushes may rely on the host's own git
// credentials.
func GetGitToken() string {
	if t := strings.TrimSpace(os.Getenv(gitTokenEnv)); t != "" {
		return t
	}
	if t, err := keyring.Get(KeyringService, gitTokenAccount); err == nil {
		return strings.TrimSpace(t)
	}
	return ""
}

func SetGitToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, gitTokenAccount, token)
}

func DeleteGitToken() error {
	return keyring.Delete(KeyringService, gitTokenAccount)
}

// GetTelegramToken returns the bot token or an error when the
// notifier is enabled but no token can be found.
func GetTelegramToken() (string, error) {
	if t := strings.TrimSpace(os.Getenv(telegramTokenEnv)); t != "" {
		return t, nil
	}
	if t, err := keyring.Get(KeyringService, telegramTokenAccount); err == nil && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t), nil
	}
	return "", errors.New("telegram bot token not found (set it in keychain or via " + telegramTokenEnv + ")")
}

func SetTelegramToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, telegramTokenAccount, token)
}

func DeleteTelegramToken() error {
	return keyring.Delete(KeyringService, telegramTokenAccount)
}
