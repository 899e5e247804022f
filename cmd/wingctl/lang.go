package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newLangCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "lang", Short: "Manage app languages"}
	cmd.AddCommand(newLangListCmd())
	return cmd
}

func newLangListCmd() *cobra.Command {
	var page, size int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List app languages",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newClient(cmd)
			if err != nil {
				return err
			}
			res, err := cli.ListLanguages(context.Background(), page, size)
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
