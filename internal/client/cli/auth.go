package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ezeqja22/sciencepioneers-cli/internal/client/config"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the stored session",
}

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and save the session token",
	Run: func(cmd *cobra.Command, args []string) {
		client, cfg, err := newClient(false)
		if err != nil {
			fail(err)
		}

		username := loginUsername
		if username == "" {
			username = promptLine("Username: ")
		}
		password := loginPassword
		if password == "" {
			password = promptLine("Password: ")
		}
		if username == "" || password == "" {
			fail(fmt.Errorf("username and password are required"))
		}

		ctx := context.Background()
		token, err := client.Login(ctx, username, password)
		if err != nil {
			fail(err)
		}

		cfg.Token = token
		cfg.Username = username
		cfg.ServerURL = client.BaseURL()
		if err := config.SaveConfig(cfg); err != nil {
			fail(fmt.Errorf("saving session: %w", err))
		}

		// Confirm role now so a non-moderator account finds out at login
		// rather than at the first denied action.
		me, err := client.Me(ctx)
		if err != nil {
			fail(err)
		}
		path, _ := config.GetConfigPath()
		fmt.Printf("Logged in as %s (%s). Session saved to %s\n", me.Username, me.Role, path)
		if !me.Role.CanModerate() {
			fmt.Println("Note: this account has no moderation privileges; admin commands will be rejected.")
		}
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the saved session token",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fail(err)
		}
		cfg.Token = ""
		cfg.Username = ""
		if err := config.SaveConfig(cfg); err != nil {
			fail(err)
		}
		fmt.Println("Logged out.")
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated identity",
	Run: func(cmd *cobra.Command, args []string) {
		client, _, err := newClient(true)
		if err != nil {
			fail(err)
		}
		me, err := client.Me(context.Background())
		if err != nil {
			fail(err)
		}
		fmt.Printf("%s (id %d, role %s)\n", me.Username, me.ID, me.Role)
	},
}

func promptLine(prompt string) string {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "account username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password (prompted when omitted)")
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(whoamiCmd)
}
