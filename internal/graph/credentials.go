package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"outlook-draft-mailer/internal/logging"
	"outlook-draft-mailer/internal/models"

	"golang.org/x/oauth2"
)

// Credentials owns the access token for the mail API and the serialized
// session cache on disk. It is an explicit session object: main acquires it
// once and hands the bearer token to the submitter, nothing else sees the
// cache or the refresh machinery.
type Credentials struct {
	conf      *oauth2.Config
	cachePath string
	token     *oauth2.Token
	out       io.Writer
}

// NewCredentials builds a credential manager for the given public client
// application against the identity authority (device-authorization grant,
// no client secret).
func NewCredentials(clientID string, auth models.AuthConfig) *Credentials {
	return &Credentials{
		conf: &oauth2.Config{
			ClientID: clientID,
			Scopes:   auth.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:       auth.Authority + "/oauth2/v2.0/authorize",
				TokenURL:      auth.Authority + "/oauth2/v2.0/token",
				DeviceAuthURL: auth.Authority + "/oauth2/v2.0/devicecode",
			},
		},
		cachePath: auth.CacheFile,
		out:       os.Stdout,
	}
}

// Authenticate acquires an access token, silently when a cached session is
// still usable and interactively via the device-authorization flow otherwise.
// On success the token is held in memory and the cache file is rewritten;
// on failure no token is held and the caller must not submit drafts.
func (c *Credentials) Authenticate(ctx context.Context) bool {
	if cached := c.loadCache(); cached != nil {
		// TokenSource reuses the cached access token while it is valid and
		// refreshes through the offline_access refresh token when it is not.
		token, err := c.conf.TokenSource(ctx, cached).Token()
		if err == nil {
			c.token = token
			c.saveCache(token)
			return true
		}
		logging.Log.Warnf("Cached session unusable, starting device authorization: %v", err)
	}

	flow, err := c.conf.DeviceAuth(ctx)
	if err != nil {
		logging.Log.Errorf("Failed to create device flow: %v", err)
		return false
	}

	fmt.Fprintf(c.out, "To sign in, use a web browser to open the page %s\n", flow.VerificationURI)
	fmt.Fprintf(c.out, "Enter the code %s to authenticate.\n", flow.UserCode)

	token, err := c.conf.DeviceAccessToken(ctx, flow)
	if err != nil {
		logging.Log.Errorf("Authentication failed: %v", err)
		return false
	}

	c.token = token
	c.saveCache(token)
	return true
}

// Token returns the bearer token value, or an empty string before a
// successful Authenticate call.
func (c *Credentials) Token() string {
	if c.token == nil {
		return ""
	}
	return c.token.AccessToken
}

func (c *Credentials) loadCache() *oauth2.Token {
	data, err := os.ReadFile(c.cachePath)
	if err != nil {
		return nil
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		logging.Log.Warnf("Ignoring unreadable token cache %s: %v", c.cachePath, err)
		return nil
	}
	return &token
}

// saveCache overwrites the on-disk session blob. The cache holds a refresh
// token, hence the restrictive mode.
func (c *Credentials) saveCache(token *oauth2.Token) {
	data, err := json.Marshal(token)
	if err != nil {
		logging.Log.Errorf("Error serializing token cache: %v", err)
		return
	}
	if err := os.WriteFile(c.cachePath, data, 0o600); err != nil {
		logging.Log.Errorf("Error writing token cache %s: %v", c.cachePath, err)
	}
}
