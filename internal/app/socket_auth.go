package app

import "context"

// authenticateSocket admits a websocket only for a token whose session is
// still signed in.
func (c *Container) authenticateSocket(ctx context.Context, token string) (string, error) {
	claims, _, err := c.Auth.Authenticate(ctx, token)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
