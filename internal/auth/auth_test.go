package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSigner() *Signer {
	return NewSigner("daycare-test", "secret", time.Minute, time.Hour)
}

func TestIssueAndParse(t *testing.T) {
	s := newSigner()
	pair, err := s.Issue(42, "teacher")
	require.NoError(t, err)
	assert.True(t, pair.RefreshExp.After(pair.AccessExp))

	claims, err := s.Parse(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "teacher", claims.Role)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = s.Parse(pair.RefreshToken)
	assert.Error(t, err, "refresh token must not authenticate requests")

	refresh, err := s.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "42", refresh.Subject)
}

func TestParseRejects(t *testing.T) {
	s := newSigner()
	pair, err := s.Issue(1, "admin")
	require.NoError(t, err)

	other := NewSigner("someone-else", "secret", time.Minute, time.Hour)
	_, err = other.Parse(pair.AccessToken)
	assert.Error(t, err)

	wrongKey := NewSigner("daycare-test", "other", time.Minute, time.Hour)
	_, err = wrongKey.Parse(pair.AccessToken)
	assert.Error(t, err)

	expired := NewSigner("daycare-test", "secret", -time.Minute, time.Hour)
	pair, err = expired.Issue(1, "admin")
	require.NoError(t, err)
	_, err = s.Parse(pair.AccessToken)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := newSigner()
	r := gin.New()
	r.GET("/admin", Bearer(s), RequireRole("admin"), func(c *gin.Context) {
		claims, ok := FromContext(c)
		require.True(t, ok)
		c.String(http.StatusOK, claims.Subject)
	})

	do := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusUnauthorized, do("").Code)
	assert.Equal(t, http.StatusUnauthorized, do("Bearer garbage").Code)

	teacher, err := s.Issue(2, "teacher")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, do("Bearer "+teacher.AccessToken).Code)

	admin, err := s.Issue(7, "admin")
	require.NoError(t, err)
	rec := do("bearer " + admin.AccessToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7", rec.Body.String())
}
