package app

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/jlsurveying/jls-web/internal/auth"
	"github.com/jlsurveying/jls-web/internal/config"
	"github.com/jlsurveying/jls-web/internal/db"
	"github.com/jlsurveying/jls-web/internal/db/models"
)

func init() { //nolint: gochecknoinits
	adminSetupCmd.Flags().StringVar(&setupEmail, "email", "", "admin email (default: Admin.Email from the config)")
	adminSetupCmd.Flags().StringVar(&setupName, "name", "", "admin display name (default: Admin.Name from the config)")
	adminSetupCmd.Flags().StringVar(&setupPassword, "password", "", "new password, generated when empty")

	adminCmd.AddCommand(adminSetupCmd, adminListCmd)
	rootCmd.AddCommand(adminCmd)
}

var (
	setupEmail    string
	setupName     string
	setupPassword string

	adminCmd = &cobra.Command{
		Use:   "admin",
		Short: "Manage dashboard admin users",
	}

	adminSetupCmd = &cobra.Command{
		Use:   "setup",
		Short: "Create an admin user or reset its password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd, func(cfg *config.Config, gdb *gorm.DB) error {
				email, name := setupEmail, setupName
				if email == "" {
					email = cfg.Admin.Email
				}

				if name == "" {
					name = cfg.Admin.Name
				}

				res, err := auth.NewService(gdb).Bootstrap(email, name, setupPassword)
				if err != nil {
					return err
				}

				return printBootstrap(cmd.OutOrStdout(), res)
			})
		},
	}

	adminListCmd = &cobra.Command{
		Use:   "list",
		Short: "List admin users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd, func(_ *config.Config, gdb *gorm.DB) error {
				users, err := auth.NewService(gdb).List()
				if err != nil {
					return err
				}

				writeAdminTable(cmd.OutOrStdout(), users)

				return nil
			})
		},
	}
)

// withDB opens and migrates the configured database for a command.
func withDB(cmd *cobra.Command, fn func(*config.Config, *gorm.DB) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	gdb, err := db.Open(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	defer func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	if err = db.Migrate(gdb); err != nil {
		return err
	}

	return fn(cfg, gdb)
}

func printBootstrap(w io.Writer, res *auth.BootstrapResult) error {
	action := "updated"
	if res.Created {
		action = "created"
	}

	if _, err := fmt.Fprintf(w, "admin user %s %s\n", res.User.Email, action); err != nil {
		return err
	}

	if res.Generated {
		_, err := fmt.Fprintf(w, "generated password: %s\n", res.Password)

		return err
	}

	return nil
}

func writeAdminTable(w io.Writer, users []models.AdminUser) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Email", "Name", "Role", "Created", "Last login"})
	table.SetAutoWrapText(false)

	for _, u := range users {
		lastLogin := "never"
		if u.LastLogin != nil {
			lastLogin = u.LastLogin.Format(time.RFC3339)
		}

		table.Append([]string{
			fmt.Sprint(u.ID),
			u.Email,
			u.Name,
			u.Role,
			u.CreatedAt.Format(time.RFC3339),
			lastLogin,
		})
	}

	table.Render()
}
