package cli

import (
	"context"
	"fmt"

	"github.com/dereksuun/ocr-frontend/internal/validation"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}
	if err := validation.ValidateUsername(username); err != nil {
		return fmt.Errorf("invalid username: %w", err)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	if err := c.client.Login(ctx, username, password); err != nil {
		return err
	}

	profile, err := c.identity.Reload(ctx)
	if err != nil {
		// The session is established even if the profile fetch failed.
		c.io.Errorln("Warning: could not fetch profile:", err)
		c.io.Println()
		c.io.Println("✓ Login successful!")
		return nil
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Signed in as: %s", profile.Username)
	if profile.IsAdmin {
		c.io.Printf(" (administrator)")
	}
	c.io.Println()
	c.io.Println()
	c.io.Println("Your session has been saved. It will be resumed automatically.")

	return nil
}
