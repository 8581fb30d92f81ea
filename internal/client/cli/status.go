package cli

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dereksuun/ocr-frontend/internal/client/storage"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Session Status ===")
	c.io.Println()

	refreshToken := c.session.Store().RefreshToken(ctx)
	if refreshToken == "" && !c.session.IsAuthenticated() {
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'ocrctl login' to authenticate.")
		return nil
	}

	c.io.Println("Status: Authenticated")
	if username := c.session.Store().Username(ctx); username != "" {
		c.io.Printf("Username: %s\n", username)
	}

	if accessToken := c.session.Store().AccessToken(); accessToken != "" {
		if expiresAt, ok := tokenExpiry(accessToken); ok {
			remaining := time.Until(expiresAt)
			c.io.Printf("Access token expires: %s\n", expiresAt.Format(time.RFC3339))
			if remaining > 0 {
				c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
			} else {
				c.io.Println("Access token has expired; it will be refreshed on the next request.")
			}
		}
	} else {
		c.io.Println("No access token in memory; the session will be resumed on the next request.")
	}

	if c.settings != nil {
		debug, err := c.settings.GetFlag(ctx, storage.FlagDebugLogging)
		if err == nil && debug {
			c.io.Println()
			c.io.Println("Debug logging: enabled")
		}
	}

	return nil
}

// tokenExpiry reads the exp claim without verifying the signature. The
// client has no verification key; this is display-only.
func tokenExpiry(accessToken string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
