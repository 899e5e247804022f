package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wingbank/appconfig/pkg/config"
	"github.com/wingbank/appconfig/sdk/client"
)

func newReleaseCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "release", Short: "Manage app releases"}
	cmd.AddCommand(newReleaseListCmd())
	cmd.AddCommand(newReleaseCheckCmd())
	return cmd
}

func newReleaseListCmd() *cobra.Command {
	var page, size int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List app releases",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newClient(cmd)
			if err != nil {
				return err
			}
			res, err := cli.ListReleases(context.Background(), page, size)
			if err != nil {
				return err
			}
			return printOutput(cmd, res.Content)
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "page number (zero based)")
	cmd.Flags().IntVar(&size, "size", 50, "page size")
	return cmd
}

func newReleaseCheckCmd() *cobra.Command {
	var platform, version, lang string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Preview the update gate for a client version",
		RunE: func(cmd *cobra.Command, args []string) error {
			// mobile endpoints are public, no token needed
			r, err := config.Resolve(cmd)
			if err != nil {
				return err
			}
			mc, err := client.New(r.APIURL).MobileConfig(context.Background(), platform, version, lang)
			if err != nil {
				return err
			}
			gate := mc.Release
			fmt.Fprintf(cmd.OutOrStdout(), "latest=%s updateNeeded=%t forceUpdate=%t\n", gate.LatestVersion, gate.UpdateNeeded, gate.ForceUpdate)
			if gate.ReleaseNotes != "" {
				fmt.Fprintln(cmd.OutOrStdout(), gate.ReleaseNotes)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&platform, "platform", "IOS", "client platform (IOS|ANDROID)")
	cmd.Flags().StringVar(&version, "version", "", "installed client version")
	cmd.Flags().StringVar(&lang, "lang", "en", "language code for the payload")
	cmd.MarkFlagRequired("version")
	return cmd
}
