package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	"github.com/wingbank/appconfig/internal/auth"
	"github.com/wingbank/appconfig/pkg/util"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "user", Short: "Manage dashboard users"}
	cmd.AddCommand(newUserCreateCmd())
	return cmd
}

// newUserCreateCmd writes directly to the users table so an admin account can
// be bootstrapped before the API is reachable.
func newUserCreateCmd() *cobra.Command {
	var (
		dsn, driver, tablePrefix string
		username, password, role string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dsn == "" {
				return fmt.Errorf("--db is required")
			}
			if username == "" || password == "" || role == "" {
				return fmt.Errorf("--username, --password and --role are required")
			}
			if driver == "" {
				d, err := util.DetectDriver(dsn)
				if err != nil {
					return err
				}
				driver = d
			}
			db, err := sql.Open(driver, dsn)
			if err != nil {
				return err
			}
			defer db.Close()

			hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
			if err != nil {
				return err
			}
			repo := &auth.UserRepo{DB: db, Driver: driver, TablePrefix: tablePrefix}
			_, err = repo.Create(context.Background(), auth.User{
				Username:     username,
				PasswordHash: string(hash),
				Role:         role,
			})
			return err
		},
	}
	cmd.Flags().StringVar(&dsn, "db", "", "database DSN")
	cmd.Flags().StringVar(&driver, "driver", "", "database driver (mysql|postgres)")
	cmd.Flags().StringVar(&tablePrefix, "table-prefix", "wingcfg_", "table prefix")
	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&role, "role", "", "role (admin|editor|viewer)")
	cmd.MarkFlagRequired("db")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")
	cmd.MarkFlagRequired("role")
	return cmd
}
