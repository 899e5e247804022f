package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

type Resolved struct {
	APIURL       string
	Token        string
	RefreshToken string
	Profile      string
}

// Resolve picks the API URL and tokens from flags, environment and the saved
// profile, in that order of precedence.
func Resolve(cmd *cobra.Command) (Resolved, error) {
	flagURL, _ := cmd.Root().PersistentFlags().GetString("api-url")
	flagToken, _ := cmd.Root().PersistentFlags().GetString("token")

	envURL := os.Getenv("WINGCTL_API_URL")
	envToken := os.Getenv("WINGCTL_TOKEN")

	cfg, _ := Load()
	prof := cfg.Active
	if p, _ := cmd.Root().PersistentFlags().GetString("profile"); p != "" {
		prof = p
	}
	cp := cfg.Profiles[prof]

	url := firstNonEmpty(flagURL, envURL, cp.APIURL)
	tok := firstNonEmpty(flagToken, envToken, cp.Token)
	if url == "" {
		return Resolved{}, fmt.Errorf("API URL not set (flag/env/config)")
	}

	return Resolved{
		APIURL:       url,
		Token:        tok,
		RefreshToken: cp.RefreshToken,
		Profile:      prof,
	}, nil
}

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
