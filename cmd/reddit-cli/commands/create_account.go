package commands

import (
	"log/slog"

	"github.com/mazen160/go-random"
	"github.com/spf13/cobra"
)

var (
	createUsername *string
	createPassword *string
	createCaptcha  *string
)

func init() {
	createUsername = createAccountCmd.Flags().String(
		"username", "", "Account name to register; empty accepts a site-suggested one.")
	createPassword = createAccountCmd.Flags().String(
		"password", "", "Account password; empty generates a random one.")
	createCaptcha = createAccountCmd.Flags().String(
		"captcha-token", "", "A solved CAPTCHA response token for the signup form.")
	rootCmd.AddCommand(createAccountCmd)
}

var createAccountCmd = &cobra.Command{
	Use:   "create-account [--username <name>] [--password <password>] --captcha-token <token>",
	Short: "Registers a new account through the signup wizard.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		password := *createPassword
		if password == "" {
			var err error
			password, err = random.String(16)
			if err != nil {
				fatal("failed to generate a password", err)
			}
		}

		client, cleanup := newClient(ctx)
		defer cleanup()

		creds, err := client.CreateAccount(ctx, *createUsername, password, *createCaptcha)
		if err != nil {
			fatal("failed to create account", err)
		}
		slog.Info("account created", "username", creds.Username, "password", creds.Password)
	},
}
