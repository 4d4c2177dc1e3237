package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/backoffice/pkg/httpcontext"
)

func serve(t *testing.T, guard Middleware, authHeader string) (*fasthttp.RequestCtx, string) {
	t.Helper()
	var rc fasthttp.RequestCtx
	if authHeader != "" {
		rc.Request.Header.Set("Authorization", authHeader)
	}
	var subject string
	guard(func(ctx *fasthttp.RequestCtx) {
		subject, _ = ctx.UserValue(httpcontext.UserValueSubject).(string)
		ctx.SetStatusCode(fasthttp.StatusOK)
	})(&rc)
	return &rc, subject
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	token, err := IssueToken("s3cret", "backoffice", "desktop", time.Minute)
	require.NoError(t, err)

	rc, subject := serve(t, JWTAuth("s3cret", "backoffice", nil), "Bearer "+token)
	assert.Equal(t, fasthttp.StatusOK, rc.Response.StatusCode())
	assert.Equal(t, "desktop", subject)
}

func TestJWTAuthRejects(t *testing.T) {
	guard := JWTAuth("s3cret", "backoffice", nil)

	rc, _ := serve(t, guard, "")
	assert.Equal(t, fasthttp.StatusUnauthorized, rc.Response.StatusCode())
	assert.Contains(t, string(rc.Response.Body()), `"code":"UNAUTHORIZED"`)

	wrongKey, err := IssueToken("other", "backoffice", "desktop", time.Minute)
	require.NoError(t, err)
	rc, _ = serve(t, guard, "Bearer "+wrongKey)
	assert.Equal(t, fasthttp.StatusUnauthorized, rc.Response.StatusCode())

	wrongIssuer, err := IssueToken("s3cret", "someone-else", "desktop", time.Minute)
	require.NoError(t, err)
	rc, _ = serve(t, guard, "Bearer "+wrongIssuer)
	assert.Equal(t, fasthttp.StatusUnauthorized, rc.Response.StatusCode())

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "backoffice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	rc, _ = serve(t, guard, "Bearer "+expired)
	assert.Equal(t, fasthttp.StatusUnauthorized, rc.Response.StatusCode())

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Issuer: "backoffice"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	rc, _ = serve(t, guard, "Bearer "+none)
	assert.Equal(t, fasthttp.StatusUnauthorized, rc.Response.StatusCode())
}

func TestPassthrough(t *testing.T) {
	rc, _ := serve(t, Passthrough, "")
	assert.Equal(t, fasthttp.StatusOK, rc.Response.StatusCode())
}
