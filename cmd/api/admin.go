package main

import (
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	userService "github.com/cmlabs-hris/attendance-backend-go/internal/service/user"
	"github.com/spf13/cobra"
)

var adminFlags struct {
	email    string
	password string
	name     string
	surname  string
	timezone string
}

// Admins belong to no organization, so the API never creates them.
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a global administrator",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		admin, err := newAdmin(cfg.App.DefaultTimezone)
		if err != nil {
			return err
		}

		db, err := database.NewPostgreSQLDB(cmd.Context(), cfg.DatabaseURL())
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		created, err := postgresql.NewUserRepository(db).Create(cmd.Context(), admin)
		if err != nil {
			return fmt.Errorf("failed to create admin: %w", err)
		}

		slog.Info("Admin created", "id", created.ID, "email", created.Email)
		return nil
	},
}

func newAdmin(defaultTimezone string) (user.User, error) {
	var errs validator.ValidationErrors
	email := user.NormalizeEmail(adminFlags.email)
	if !validator.IsValidEmail(email) {
		errs.Add("email", validator.KindInvalid)
	}
	if len(adminFlags.password) < user.MinPasswordLength {
		errs.Add("password", validator.KindTooShort)
	}
	if validator.IsEmpty(adminFlags.name) {
		errs.Add("name", validator.KindBlank)
	}
	if validator.IsEmpty(adminFlags.surname) {
		errs.Add("surname", validator.KindBlank)
	}
	timezone := adminFlags.timezone
	if timezone == "" {
		timezone = defaultTimezone
	}
	if !validator.IsValidTimezone(timezone) {
		errs.Add("timezone", validator.KindInvalid)
	}
	if err := errs.OrNil(); err != nil {
		return user.User{}, err
	}

	hash, err := userService.HashPassword(adminFlags.password)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	return user.User{
		Email:        email,
		PasswordHash: hash,
		Role:         user.RoleAdmin,
		Name:         adminFlags.name,
		Surname:      adminFlags.surname,
		Timezone:     timezone,
	}, nil
}

func init() {
	rootCmd.AddCommand(createAdminCmd)
	flags := createAdminCmd.Flags()
	flags.StringVar(&adminFlags.email, "email", "", "admin email")
	flags.StringVar(&adminFlags.password, "password", "", "admin password")
	flags.StringVar(&adminFlags.name, "name", "", "first name")
	flags.StringVar(&adminFlags.surname, "surname", "", "surname")
	flags.StringVar(&adminFlags.timezone, "timezone", "", "IANA timezone, defaults to DEFAULT_TIMEZONE")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}
