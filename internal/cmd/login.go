package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quillhq/quill/internal/api"
	"github.com/quillhq/quill/internal/config"
)

func promptCredentials(in io.Reader, out io.Writer) (string, string, error) {
	reader := bufio.NewReader(in)

	fmt.Fprint(out, "email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		return "", "", fmt.Errorf("email is required")
	}

	fmt.Fprint(out, "password: ")
	password, _ := reader.ReadString('\n')
	password = strings.TrimSpace(password)
	if password == "" {
		return "", "", fmt.Errorf("password is required")
	}

	return email, password, nil
}

// RunInteractiveLogin prompts for credentials, calls the login API, and
// persists the token.
func RunInteractiveLogin(in io.Reader, out io.Writer, baseURL string) error {
	email, password, err := promptCredentials(in, out)
	if err != nil {
		return err
	}

	client := api.NewClient(baseURL, "")
	token, err := client.Login(email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cfg := loginConfig(email, token, baseURL)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintf(out, "logged in as %s\n", email)
	fmt.Fprintf(out, "config saved to %s\n", config.Path())
	return nil
}

func loginConfig(email string, token *api.Token, baseURL string) *config.Config {
	return &config.Config{
		Token:   token.AccessToken,
		UserID:  token.ID,
		Email:   email,
		BaseURL: baseURL,
	}
}

// LoginCmd returns the `quill login` command.
func LoginCmd(baseURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate with a Quill server",
		RunE: func(_ *cobra.Command, _ []string) error {
			return RunInteractiveLogin(os.Stdin, os.Stdout, baseURL())
		},
	}
}
