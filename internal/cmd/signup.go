package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillhq/quill/internal/api"
)

// RunInteractiveSignup registers a new account and then logs it in.
func RunInteractiveSignup(in io.Reader, out io.Writer, baseURL string) error {
	email, password, err := promptCredentials(in, out)
	if err != nil {
		return err
	}

	client := api.NewClient(baseURL, "")
	if _, err := client.Signup(email, password); err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}
	fmt.Fprintf(out, "account created for %s\n", email)

	token, err := client.Login(email, password)
	if err != nil {
		return fmt.Errorf("login after signup failed: %w", err)
	}

	cfg := loginConfig(email, token, baseURL)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Fprintf(out, "logged in as %s\n", email)
	return nil
}

// SignupCmd returns the `quill signup` command.
func SignupCmd(baseURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "signup",
		Short: "Create a Quill account",
		RunE: func(_ *cobra.Command, _ []string) error {
			return RunInteractiveSignup(os.Stdin, os.Stdout, baseURL())
		},
	}
}
