package cli

import (
	"context"
)

func (c *Cli) runWhoami(ctx context.Context) error {
	profile, err := c.restore(ctx)
	if err != nil {
		return err
	}
	if profile.Degraded {
		// The command exists to show the profile, so here the fetch
		// failure is the answer.
		if profile, err = c.identity.Current(ctx); err != nil {
			return err
		}
	}
	return c.render("profile", profileTemplate, profile)
}
