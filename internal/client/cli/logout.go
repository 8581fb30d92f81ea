package cli

import (
	"context"
)

func (c *Cli) runLogout(ctx context.Context) error {
	if c.session.Store().RefreshToken(ctx) == "" && !c.session.IsAuthenticated() {
		c.io.Println("Not signed in.")
		return nil
	}

	// Best effort: revoke the session server-side, then always drop the
	// local tokens.
	if err := c.client.Logout(ctx); err != nil {
		c.io.Errorln("Warning: server-side logout failed:", err)
	}

	c.session.Store().ClearTokens(ctx)
	c.identity.Clear()

	c.io.Println("✓ Signed out. Local session removed.")
	return nil
}
