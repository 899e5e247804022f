package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	sdk "github.com/wingbank/appconfig/sdk"
)

// translationFile is the YAML document written by export and read by apply.
type translationFile struct {
	Translations []sdk.Translation `yaml:"translations"`
}

func newTranslationCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "translation", Short: "Manage translations"}
	cmd.AddCommand(newTranslationListCmd())
	cmd.AddCommand(newTranslationExportCmd())
	cmd.AddCommand(newTranslationApplyCmd())
	return cmd
}

func newTranslationListCmd() *cobra.Command {
	var page, size int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List translations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newClient(cmd)
			if err != nil {
				return err
			}
			res, err := cli.ListTranslations(context.Background(), page, size)
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

func newTranslationExportCmd() *cobra.Command {
	var (
		out   string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export translations to YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return errors.New("--out is required")
			}
			if _, err := os.Stat(out); err == nil && !force {
				return fmt.Errorf("%s exists (use --force to overwrite)", out)
			}
			cli, err := newClient(cmd)
			if err != nil {
				return err
			}
			ctx := context.Background()
			var doc translationFile
			for page := 0; ; page++ {
				res, err := cli.ListTranslations(ctx, page, 200)
				if err != nil {
					return err
				}
				doc.Translations = append(doc.Translations, res.Content...)
				if res.Last {
					break
				}
			}
			data, err := yaml.Marshal(&doc)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d translations to %s\n", len(doc.Translations), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "translations.yaml", "output file")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite without confirmation")
	return cmd
}

func newTranslationApplyCmd() *cobra.Command {
	var (
		file   string
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply translations from YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return errors.New("--file is required")
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var doc translationFile
			if err := yaml.Unmarshal(data, &doc); err != nil {
				return err
			}
			cli, err := newClient(cmd)
			if err != nil {
				return err
			}
			ctx := context.Background()
			var created, updated int
			for _, t := range doc.Translations {
				if t.Key == "" {
					return fmt.Errorf("translation without key in %s", file)
				}
				if dryRun {
					continue
				}
				if t.ID == "" {
					if _, err := cli.CreateTranslation(ctx, t); err != nil {
						return fmt.Errorf("create %s: %w", t.Key, err)
					}
					created++
					continue
				}
				if _, err := cli.UpdateTranslation(ctx, t); err != nil {
					return fmt.Errorf("update %s: %w", t.Key, err)
				}
				updated++
			}
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "%d translations would be applied\n", len(doc.Translations))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "+%d/±%d applied\n", created, updated)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "translations.yaml", "input file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate without applying")
	return cmd
}
