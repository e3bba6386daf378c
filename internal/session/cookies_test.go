package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestContext(req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func TestCookieStore_SetWritesBothCookies(t *testing.T) {
	c, w := newTestContext(httptest.NewRequest(http.MethodPost, "/login", nil))
	store := NewCookieStore(c, true)

	store.Set(Credential{AccessToken: "acc", RefreshToken: "ref"})

	cookies := w.Result().Cookies()
	byName := map[string]*http.Cookie{}
	for _, ck := range cookies {
		byName[ck.Name] = ck
	}

	acc, ok := byName[CookieAccessToken]
	if !ok || acc.Value != "acc" {
		t.Fatalf("access cookie missing or wrong: %+v", acc)
	}
	ref, ok := byName[CookieRefreshToken]
	if !ok || ref.Value != "ref" {
		t.Fatalf("refresh cookie missing or wrong: %+v", ref)
	}

	for _, ck := range []*http.Cookie{acc, ref} {
		if ck.Path != "/" {
			t.Fatalf("cookie %s path = %q, want /", ck.Name, ck.Path)
		}
		if ck.SameSite != http.SameSiteStrictMode {
			t.Fatalf("cookie %s must be SameSite=Strict", ck.Name)
		}
		if !ck.Secure || !ck.HttpOnly {
			t.Fatalf("cookie %s must be Secure and HttpOnly: %+v", ck.Name, ck)
		}
	}

	if acc.MaxAge >= ref.MaxAge {
		t.Fatalf("access token (%ds) must expire before refresh token (%ds)", acc.MaxAge, ref.MaxAge)
	}
}

func TestCookieStore_ReadsCredentialFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/personal", nil)
	req.AddCookie(&http.Cookie{Name: CookieAccessToken, Value: "acc"})
	req.AddCookie(&http.Cookie{Name: CookieRefreshToken, Value: "ref"})
	c, _ := newTestContext(req)

	cred, ok := NewCookieStore(c, false).Credential()
	if !ok || cred.AccessToken != "acc" || cred.RefreshToken != "ref" {
		t.Fatalf("unexpected credential: %+v ok=%v", cred, ok)
	}
}

func TestCookieStore_MissingAccessTokenMeansNoCredential(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/personal", nil)
	req.AddCookie(&http.Cookie{Name: CookieRefreshToken, Value: "ref"})
	c, _ := newTestContext(req)

	if _, ok := NewCookieStore(c, false).Credential(); ok {
		t.Fatalf("refresh token alone must not count as a credential")
	}
}

func TestCookieStore_ClearExpiresBothCookies(t *testing.T) {
	c, w := newTestContext(httptest.NewRequest(http.MethodPost, "/logout", nil))
	NewCookieStore(c, false).Clear()

	header := strings.Join(w.Header().Values("Set-Cookie"), "\n")
	for _, name := range []string{CookieAccessToken, CookieRefreshToken} {
		if !strings.Contains(header, name+"=") {
			t.Fatalf("expected %s to be cleared, header: %s", name, header)
		}
	}
	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge >= 0 {
			t.Fatalf("cleared cookie %s must carry a negative Max-Age", ck.Name)
		}
	}
}
