package facebook

import (
	"context"
	"errors"

	fb "github.com/huandu/facebook/v2"

	"fbauth/internal/port"
)

// GraphOptions tunes the Graph API clients built by a GraphClientFactory.
type GraphOptions struct {
	// Version pins the Graph API version, e.g. "v19.0". Empty uses the
	// library default.
	Version string
	// HTTPClient overrides the transport used for Graph calls.
	HTTPClient fb.HttpClient
	// AppsecretProof signs every call with the app secret.
	AppsecretProof bool
}

// GraphClient implements port.FacebookClient on top of a Graph API session.
type GraphClient struct {
	app     *fb.App
	session *fb.Session
}

// NewGraphClient returns a client holding the app access token.
func NewGraphClient(app *fb.App, opts GraphOptions) *GraphClient {
	session := app.Session(app.AppAccessToken())
	if opts.Version != "" {
		session.Version = opts.Version
	}
	if opts.HTTPClient != nil {
		session.HttpClient = opts.HTTPClient
	}
	return &GraphClient{app: app, session: session}
}

// AccessToken returns the token the session currently signs calls with.
func (c *GraphClient) AccessToken() string { return c.session.AccessToken() }

func (c *GraphClient) SetAccessToken(token string) { c.session.SetAccessToken(token) }

func (c *GraphClient) AppID() string { return c.app.AppId }

func (c *GraphClient) AppSecret() string { return c.app.AppSecret }

// User asks Graph for the owner of the current access token. It returns an
// empty UID when only the app token is set or when Graph rejects the user
// token.
func (c *GraphClient) User(ctx context.Context) (string, error) {
	token := c.session.AccessToken()
	if token == "" || token == c.app.AppAccessToken() {
		return "", nil
	}

	id, err := c.session.WithContext(ctx).User()
	if err != nil {
		var graphErr *fb.Error
		if errors.As(err, &graphErr) && graphErr.Type == "OAuthException" {
			return "", nil
		}
		return "", err
	}
	return id, nil
}

// GraphClientFactory builds one GraphClient per request around a shared app.
type GraphClientFactory struct {
	app  *fb.App
	opts GraphOptions
}

// NewGraphClientFactory creates a factory for the given Facebook app.
func NewGraphClientFactory(appID, appSecret string, opts GraphOptions) *GraphClientFactory {
	app := fb.New(appID, appSecret)
	app.EnableAppsecretProof = opts.AppsecretProof
	return &GraphClientFactory{app: app, opts: opts}
}

// NewClient returns a client holding the app access token.
func (f *GraphClientFactory) NewClient() port.FacebookClient {
	return NewGraphClient(f.app, f.opts)
}

var (
	_ port.FacebookClient        = (*GraphClient)(nil)
	_ port.FacebookClientFactory = (*GraphClientFactory)(nil)
)
