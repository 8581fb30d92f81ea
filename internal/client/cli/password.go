package cli

import (
	"context"
	"fmt"

	"github.com/dereksuun/ocr-frontend/internal/validation"
)

func (c *Cli) runPasswordReset(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: ocrctl password-reset <request|confirm>")
	}

	switch args[0] {
	case "request":
		return c.runPasswordResetRequest(ctx)
	case "confirm":
		return c.runPasswordResetConfirm(ctx, args[1:])
	default:
		return fmt.Errorf("unknown password-reset subcommand: %s", args[0])
	}
}

func (c *Cli) runPasswordResetRequest(ctx context.Context) error {
	email, err := c.io.ReadInput("Account email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	if err := validation.ValidateEmail(email); err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}

	if err := c.client.RequestPasswordReset(ctx, email); err != nil {
		return err
	}

	c.io.Println("✓ If the address is registered, a reset link has been sent.")
	return nil
}

func (c *Cli) runPasswordResetConfirm(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: ocrctl password-reset confirm <token>")
	}

	password, err := c.io.ReadPassword("New password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}
	repeat, err := c.io.ReadPassword("Repeat new password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if password != repeat {
		return fmt.Errorf("passwords do not match")
	}

	if err := c.client.ConfirmPasswordReset(ctx, args[0], password); err != nil {
		return err
	}

	c.io.Println("✓ Password changed. You can now log in with the new password.")
	return nil
}
