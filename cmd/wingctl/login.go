package main

import (
	"context"
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wingbank/appconfig/pkg/config"
	"github.com/wingbank/appconfig/sdk/client"
)

var loginNonInteractive bool

func newLoginCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and save the token pair into ~/.wingctl/config.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			prof, _ := cmd.Root().PersistentFlags().GetString("profile")
			if prof == "" {
				prof = cfg.Active
			}

			url, _ := cmd.Root().PersistentFlags().GetString("api-url")
			if !loginNonInteractive {
				if url == "" {
					url = prompt("API URL", cfg.Profiles[prof].APIURL)
				}
				if username == "" {
					username = prompt("Username", "")
				}
				if password == "" {
					password = promptSecret("Password")
				}
			}
			if url == "" || username == "" || password == "" {
				return fmt.Errorf("api-url, username and password are required (provide flags or use interactive mode)")
			}

			pair, err := client.New(url).Login(context.Background(), username, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			cp := cfg.Profiles[prof]
			cp.Name = prof
			cp.APIURL = url
			cp.Token = pair.AccessToken
			cp.RefreshToken = pair.RefreshToken
			cfg.Profiles[prof] = cp
			cfg.Active = prof

			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in. Active profile: %s\n", prof)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().BoolVar(&loginNonInteractive, "non-interactive", false, "Fail instead of prompting")
	return cmd
}

func prompt(label, def string) string {
	fmt.Printf("%s [%s]: ", label, def)
	var s string
	if _, err := fmt.Scanln(&s); err != nil {
		return def
	}
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func promptSecret(label string) string {
	fmt.Printf("%s: ", label)
	b, _ := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	return strings.TrimSpace(string(b))
}
