package main

import (
	"context"
	"fmt"

	"github.com/khabaroff/heart-risk-dashboard/src/app"
	"github.com/khabaroff/heart-risk-dashboard/src/services"
	"github.com/spf13/cobra"
)

var (
	adminUsername string
	adminPassword string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage admin accounts",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register an admin account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		store, err := app.StoreFor(db)
		if err != nil {
			return err
		}

		admin, err := services.NewAdminService(store.Admins).Register(context.Background(), adminUsername, adminPassword)
		if err != nil {
			return fmt.Errorf("failed to create admin: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "admin %q created\n", admin.Username)
		return nil
	},
}

func init() {
	adminCreateCmd.Flags().StringVarP(&adminUsername, "username", "u", "", "admin username")
	adminCreateCmd.Flags().StringVarP(&adminPassword, "password", "p", "", "admin password")
	_ = adminCreateCmd.MarkFlagRequired("username")
	_ = adminCreateCmd.MarkFlagRequired("password")

	adminCmd.AddCommand(adminCreateCmd)
}
