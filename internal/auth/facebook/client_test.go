package facebook_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fbauth/internal/auth/facebook"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newGraphClient(rt roundTripFunc) *facebook.GraphClient {
	factory := facebook.NewGraphClientFactory(testAppID, testSecret, facebook.GraphOptions{
		Version:    "v19.0",
		HTTPClient: &http.Client{Transport: rt},
	})
	return factory.NewClient().(*facebook.GraphClient)
}

func TestGraphClient_StartsWithAppToken(t *testing.T) {
	calls := 0
	client := newGraphClient(func(*http.Request) (*http.Response, error) {
		calls++
		return jsonResponse(http.StatusOK, `{"id":"100"}`), nil
	})

	assert.Equal(t, testAppToken, client.AccessToken())
	assert.Equal(t, testAppToken, facebook.AppAccessToken(client))

	uid, err := client.User(context.Background())
	require.NoError(t, err)
	assert.Empty(t, uid)
	assert.Zero(t, calls)
}

func TestGraphClient_User(t *testing.T) {
	var requested string
	client := newGraphClient(func(req *http.Request) (*http.Response, error) {
		requested = req.URL.Path
		return jsonResponse(http.StatusOK, `{"id":"100"}`), nil
	})
	client.SetAccessToken("user-token")

	uid, err := client.User(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "100", uid)
	assert.Contains(t, requested, "/me")
}

func TestGraphClient_User_OAuthExceptionMeansNoUser(t *testing.T) {
	client := newGraphClient(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadRequest,
			`{"error":{"message":"Error validating access token","type":"OAuthException","code":190}}`), nil
	})
	client.SetAccessToken("expired-token")

	uid, err := client.User(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, uid)
}

func TestGraphClient_User_TransportError(t *testing.T) {
	client := newGraphClient(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp: connection refused")
	})
	client.SetAccessToken("user-token")

	uid, err := client.User(context.Background())

	assert.Error(t, err)
	assert.Empty(t, uid)
}
