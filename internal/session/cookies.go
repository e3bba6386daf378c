package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Cookie names are shared with the route guard and must match what the
// browser already holds; do not rename.
const (
	CookieAccessToken  = "accessToken"
	CookieRefreshToken = "refreshToken"
)

// Access tokens are short-lived, refresh tokens outlive them.
const (
	AccessTokenTTL  = 24 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Credential is the token pair identifying a session.
type Credential struct {
	AccessToken  string
	RefreshToken string
}

// Store abstracts where the credential lives for the current request scope.
type Store interface {
	// Credential returns the persisted pair; ok is false when no access
	// token is present.
	Credential() (Credential, bool)
	Set(Credential)
	Clear()
}

// CookieStore persists the credential as a pair of SameSite=Strict cookies
// on the request/response bound to a gin context.
type CookieStore struct {
	c      *gin.Context
	secure bool
}

func NewCookieStore(c *gin.Context, secure bool) *CookieStore {
	return &CookieStore{c: c, secure: secure}
}

func (s *CookieStore) Credential() (Credential, bool) {
	access, err := s.c.Cookie(CookieAccessToken)
	if err != nil || access == "" {
		return Credential{}, false
	}
	refresh, _ := s.c.Cookie(CookieRefreshToken)
	return Credential{AccessToken: access, RefreshToken: refresh}, true
}

func (s *CookieStore) Set(cred Credential) {
	s.c.SetSameSite(http.SameSiteStrictMode)
	s.c.SetCookie(CookieAccessToken, cred.AccessToken, int(AccessTokenTTL.Seconds()), "/", "", s.secure, true)
	s.c.SetCookie(CookieRefreshToken, cred.RefreshToken, int(RefreshTokenTTL.Seconds()), "/", "", s.secure, true)
}

func (s *CookieStore) Clear() {
	s.c.SetSameSite(http.SameSiteStrictMode)
	s.c.SetCookie(CookieAccessToken, "", -1, "/", "", s.secure, true)
	s.c.SetCookie(CookieRefreshToken, "", -1, "/", "", s.secure, true)
}

// MemoryStore backs tests.
type MemoryStore struct {
	cred Credential
	has  bool
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Credential() (Credential, bool) {
	if !s.has || s.cred.AccessToken == "" {
		return Credential{}, false
	}
	return s.cred, true
}

func (s *MemoryStore) Set(cred Credential) { s.cred, s.has = cred, true }

func (s *MemoryStore) Clear() { s.cred, s.has = Credential{}, false }
