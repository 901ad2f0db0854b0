package port

import "context"

// FacebookClient is a stateful Graph API client bound to a single request.
// Until a per-user access token is installed, AccessToken returns the
// app-level token "<app id>|<app secret>".
type FacebookClient interface {
	AccessToken() string
	SetAccessToken(token string)
	AppID() string
	AppSecret() string
	// User returns the UID of the user owning the current access token, or
	// an empty string when no user is signed in.
	User(ctx context.Context) (string, error)
}

// FacebookClientFactory creates a fresh FacebookClient for each request.
type FacebookClientFactory interface {
	NewClient() FacebookClient
}
