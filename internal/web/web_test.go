package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/oxturret/turretweb/internal/factory"
	"github.com/oxturret/turretweb/internal/testutil"
	"github.com/oxturret/turretweb/internal/web"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T) *webTestServer {
	return newWebTestServerWithStatic(t, "")
}

func newWebTestServerWithStatic(t *testing.T, staticDir string) *webTestServer {
	t.Helper()

	app, err := factory.NewTestApp()
	require.NoError(t, err)

	router := web.NewRouter(web.RouterConfig{
		Logger:          testutil.NopLogger(),
		AuthService:     app.AuthService,
		SessionService:  app.SessionService,
		LobbyController: app.LobbyController,
		InstanceTable:   app.InstanceTable,
		Relay:           app.Relay,
		Connections:     app.Connections,
		Clock:           app.MockClock,
		StaticDir:       staticDir,
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
	}
}

// browser simulates one player's browser: its own cookie jar, optionally
// presenting basic-auth credentials.
type browser struct {
	ts        *webTestServer
	cookies   *cookieJar
	basicAuth bool
}

// browser returns a fresh browser presenting basic-auth credentials.
func (ts *webTestServer) browser() *browser {
	return &browser{ts: ts, cookies: newCookieJar(), basicAuth: true}
}

// anonymousBrowser returns a fresh browser with no credentials at all.
func (ts *webTestServer) anonymousBrowser() *browser {
	return &browser{ts: ts, cookies: newCookieJar()}
}

// request makes an HTTP request and returns the response
func (b *browser) request(method, path, contentType string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if b.basicAuth {
		req.SetBasicAuth(factory.TestCredentials.Username, factory.TestCredentials.Password)
	}
	b.cookies.addTo(req)

	rr := httptest.NewRecorder()
	b.ts.handler.ServeHTTP(rr, req)

	b.cookies.extract(rr)
	return rr
}

// get makes a GET request
func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.request(http.MethodGet, path, "", nil)
}

// postForm makes a POST request with form data
func (b *browser) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	return b.request(http.MethodPost, path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
}

// postJSON makes a POST request with a JSON body
func (b *browser) postJSON(path, body string) *httptest.ResponseRecorder {
	return b.request(http.MethodPost, path, "application/json", strings.NewReader(body))
}

// createLobby submits the creation form and returns the new lobby's id.
func (b *browser) createLobby(name string, public bool) string {
	b.ts.t.Helper()

	form := url.Values{"name": {name}, "num-players": {"2"}}
	if public {
		form.Set("public", "on")
	}

	rr := b.postForm("/lobbies/create", form)
	require.Equal(b.ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after lobby creation")

	location := rr.Header().Get("Location")
	id := strings.TrimPrefix(location, "/lobbies/detail/")
	require.NotEqual(b.ts.t, location, id, "Expected redirect to the lobby detail page")
	return id
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{
		cookies: make(map[string]*http.Cookie),
	}
}

// addTo adds all cookies to the request
func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

// extract extracts Set-Cookie headers from response
func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			// Cookie being deleted
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// sessionToken returns the session cookie value, or empty if unset
func (j *cookieJar) sessionToken() string {
	cookie, ok := j.cookies["SESSION"]
	if !ok {
		return ""
	}
	return cookie.Value
}
