package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/dereksuun/ocr-frontend/internal/validation"
	apitypes "github.com/dereksuun/ocr-frontend/pkg/api"
)

func (c *Cli) runUser(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: ocrctl user <list|add|update|delete|reset-password>")
	}

	if err := c.requireAdmin(ctx); err != nil {
		return err
	}

	switch args[0] {
	case "list":
		return c.runUserList(ctx)
	case "add":
		return c.runUserAdd(ctx, args[1:])
	case "update":
		return c.runUserUpdate(ctx, args[1:])
	case "delete":
		return c.runUserDelete(ctx, args[1:])
	case "reset-password":
		return c.runUserResetPassword(ctx, args[1:])
	default:
		return fmt.Errorf("unknown user subcommand: %s", args[0])
	}
}

func (c *Cli) runUserList(ctx context.Context) error {
	users, err := c.client.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	return c.render("users", userListTemplate, users)
}

func (c *Cli) runUserAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("user add", flag.ContinueOnError)
	email := fs.String("email", "", "Email address")
	displayName := fs.String("display-name", "", "Display name")
	admin := fs.Bool("admin", false, "Grant administrator rights")
	sector := fs.String("sector", "", "Assign to this sector id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: ocrctl user add [flags] <username>")
	}

	username := fs.Arg(0)
	if err := validation.ValidateUsername(username); err != nil {
		return fmt.Errorf("invalid username: %w", err)
	}
	if *email != "" {
		if err := validation.ValidateEmail(*email); err != nil {
			return fmt.Errorf("invalid email: %w", err)
		}
	}

	password, err := c.io.ReadPassword("Initial password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	user, err := c.client.CreateUser(ctx, apitypes.CreateUserRequest{
		Username:    username,
		Email:       *email,
		DisplayName: *displayName,
		Password:    password,
		IsAdmin:     *admin,
		SectorID:    *sector,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	c.io.Printf("✓ User %q created (ID: %s)\n", user.Username, user.ID)
	return nil
}

func (c *Cli) runUserUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("user update", flag.ContinueOnError)
	email := fs.String("email", "", "New email address")
	displayName := fs.String("display-name", "", "New display name")
	admin := fs.String("admin", "", "Set administrator rights (true/false)")
	sector := fs.String("sector", "", "Move to this sector id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: ocrctl user update [flags] <id>")
	}

	// Only flags the caller actually passed are sent; the rest stay untouched.
	req := apitypes.UpdateUserRequest{}
	changed := false
	if *email != "" {
		if err := validation.ValidateEmail(*email); err != nil {
			return fmt.Errorf("invalid email: %w", err)
		}
		req.Email = email
		changed = true
	}
	if *displayName != "" {
		req.DisplayName = displayName
		changed = true
	}
	if *admin != "" {
		switch *admin {
		case "true":
			v := true
			req.IsAdmin = &v
		case "false":
			v := false
			req.IsAdmin = &v
		default:
			return fmt.Errorf("--admin must be true or false")
		}
		changed = true
	}
	if *sector != "" {
		req.SectorID = sector
		changed = true
	}
	if !changed {
		return fmt.Errorf("nothing to update: pass at least one flag")
	}

	user, err := c.client.UpdateUser(ctx, fs.Arg(0), req)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	c.io.Printf("✓ User %q updated.\n", user.Username)
	return nil
}

func (c *Cli) runUserDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: ocrctl user delete <id>")
	}

	ok, err := c.confirm(fmt.Sprintf("Delete user %s? This cannot be undone.", args[0]))
	if err != nil {
		return err
	}
	if !ok {
		c.io.Println("Aborted.")
		return nil
	}

	if err := c.client.DeleteUser(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	c.io.Println("✓ User deleted.")
	return nil
}

func (c *Cli) runUserResetPassword(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: ocrctl user reset-password <id>")
	}

	password, err := c.io.ReadPassword("New password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	if err := c.client.ResetUserPassword(ctx, args[0], password); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	c.io.Println("✓ Password reset.")
	return nil
}
