package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/wingbank/appconfig/pkg/config"
	sdk "github.com/wingbank/appconfig/sdk"
	"github.com/wingbank/appconfig/sdk/client"
)

// newClient builds an API client from the resolved profile.
func newClient(cmd *cobra.Command) (client.Client, error) {
	r, err := config.Resolve(cmd)
	if err != nil {
		return nil, err
	}
	if r.Token == "" {
		return nil, fmt.Errorf("not logged in (run wingctl login)")
	}
	return client.New(r.APIURL, client.WithToken(r.Token, r.RefreshToken)), nil
}

// printOutput prints data in either JSON or table format based on the --output flag.
func printOutput(cmd *cobra.Command, v any) error {
	format, err := cmd.Root().PersistentFlags().GetString("output")
	if err != nil {
		return err
	}
	if format == "json" {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	}
	switch x := v.(type) {
	case []sdk.Language:
		tw := tablewriter.NewWriter(os.Stdout)
		tw.SetHeader([]string{"Code", "Name", "Native", "Status", "Order"})
		for _, l := range x {
			tw.Append([]string{l.Code, l.Name, l.NativeName, l.Status, fmt.Sprint(l.DisplayOrder)})
		}
		tw.Render()
	case []sdk.Translation:
		tw := tablewriter.NewWriter(os.Stdout)
		tw.SetHeader([]string{"ID", "Key", "Module", "Platform", "Values"})
		for _, t := range x {
			tw.Append([]string{t.ID, t.Key, t.Module, t.Platform, fmt.Sprint(len(t.Values))})
		}
		tw.Render()
	case []sdk.Release:
		tw := tablewriter.NewWriter(os.Stdout)
		tw.SetHeader([]string{"ID", "Version", "Platform", "Force", "Status"})
		for _, r := range x {
			tw.Append([]string{r.ID, r.Version, r.Platform, fmt.Sprint(r.ForceUpdate), r.Status})
		}
		tw.Render()
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", v)
	}
	return nil
}
