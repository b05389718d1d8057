package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubSecret(t *testing.T, secret string, err error) {
	t.Helper()
	orig := getSecret
	getSecret = func(_ io.Writer, _ string) (string, error) { return secret, err }
	t.Cleanup(func() { getSecret = orig })
}

func stubText(t *testing.T, answer string) {
	t.Helper()
	orig := getSimpleText
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return answer, nil }
	t.Cleanup(func() { getSimpleText = orig })
}

func TestAuthenticate_ConfiguredToken(t *testing.T) {
	ss := &fakeSession{saved: "remembered"}
	app, _ := newTestApp(t, &fakeES{}, ss, nil)
	app.config.AccessToken = "configured"

	require.NoError(t, app.Authenticate(context.Background()))
	assert.Equal(t, "configured", ss.token)
	assert.False(t, ss.remember)
	assert.True(t, app.hasToken)
}

func TestAuthenticate_RememberedToken(t *testing.T) {
	stubSecret(t, "", errors.New("must not prompt"))
	ss := &fakeSession{saved: "remembered"}
	app, _ := newTestApp(t, &fakeES{}, ss, nil)

	require.NoError(t, app.Authenticate(context.Background()))
	assert.Equal(t, "remembered", ss.token)
	assert.True(t, app.hasToken)
}

func TestAuthenticate_PromptsAndRemembers(t *testing.T) {
	stubSecret(t, "typed", nil)
	stubText(t, "Y")
	ss := &fakeSession{savedErr: errors.New("db locked")}
	app, out := newTestApp(t, &fakeES{}, ss, nil)

	require.NoError(t, app.Authenticate(context.Background()))
	assert.Equal(t, "typed", ss.token)
	assert.True(t, ss.remember)
	assert.Equal(t, "typed", ss.saved)
	assert.Contains(t, out.String(), "Token set")
}

func TestToken_NotRemembered(t *testing.T) {
	stubSecret(t, "typed", nil)
	stubText(t, "")
	ss := &fakeSession{}
	app, _ := newTestApp(t, &fakeES{}, ss, nil)

	require.NoError(t, app.Token(context.Background()))
	assert.False(t, ss.remember)
	assert.Empty(t, ss.saved)
}

func TestToken_Empty(t *testing.T) {
	stubSecret(t, "", nil)
	ss := &fakeSession{}
	app, _ := newTestApp(t, &fakeES{}, ss, nil)

	require.Error(t, app.Token(context.Background()))
	assert.False(t, app.hasToken)
	assert.Empty(t, ss.token)
}

func TestForget(t *testing.T) {
	ss := &fakeSession{token: "t", saved: "t"}
	app, out := newTestApp(t, &fakeES{}, ss, nil)
	app.hasToken = true

	require.NoError(t, app.Forget(context.Background()))
	assert.True(t, ss.forgot)
	assert.False(t, app.hasToken)
	assert.Contains(t, out.String(), "Token forgotten")
}
