package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monacovault/vaultctl/internal/client/api"
	"github.com/monacovault/vaultctl/internal/client/cache"
	"github.com/monacovault/vaultctl/internal/client/config"
	"github.com/monacovault/vaultctl/internal/client/session"
	"github.com/monacovault/vaultctl/internal/client/store"
	"github.com/monacovault/vaultctl/internal/client/transport"
	"github.com/monacovault/vaultctl/internal/logging"
)

// ---- helpers ----

// stubInput replaces the interactive input seams with canned answers,
// consumed in order.
func stubInput(t *testing.T, texts []string, password string) {
	t.Helper()
	origText := getSimpleText
	origPassword := getPassword
	t.Cleanup(func() {
		getSimpleText = origText
		getPassword = origPassword
	})

	i := 0
	getSimpleText = func(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
		require.Less(t, i, len(texts), "unexpected prompt: %s", prompt)
		v := texts[i]
		i++
		return v, nil
	}
	getPassword = func(w io.Writer) ([]byte, error) {
		return []byte(password), nil
	}
}

// newTestApp wires a full client stack against the given backend handler.
func newTestApp(t *testing.T, h http.Handler) (*App, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	st, err := store.Open(context.Background(),
		filepath.Join(dir, "session.db"), filepath.Join(dir, "device.secret"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	out := &bytes.Buffer{}
	app := &App{
		config: &config.Config{ServerEndpointURL: srv.URL},
		store:  st,
		reader: bufio.NewReader(strings.NewReader("")),
		out:    out,
		logger: logging.NewDiscard(),
	}

	sess := session.NewManager(st, session.WithExpiryHook(func(reason string) {
		app.out.Write([]byte("! " + reason + "\n"))
	}))
	tr := transport.New(srv.URL,
		transport.WithTokenSource(sess.Token),
		transport.WithAuthFailureHook(sess.HandleAuthFailure),
	)
	apiClient := api.New(tr)
	sess.BindAPI(apiClient)

	app.sess = sess
	app.api = apiClient
	app.cache = cache.New(cache.DefaultPolicy(), cache.WithTokenSource(sess.Token))
	return app, out
}

func loginEnvelope(role string) string {
	return `{"success":true,"data":{"user":{"id":"u1","email":"a@b.c","userName":"alice","role":"` + role + `"},"token":"tok-1"}}`
}

// ---- TESTS ----

func TestLogin_FullStackRoundTrip(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/users/login", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(loginEnvelope("USER")))
	})
	app, out := newTestApp(t, r)
	stubInput(t, []string{"a@b.c"}, "pw")

	require.NoError(t, app.Login(context.Background()))
	assert.Contains(t, out.String(), "Logged in as a@b.c")
	assert.True(t, app.isLoggedIn())
	assert.False(t, app.isAdmin())

	// The session survived durably.
	_, token, err := app.store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
}

func TestLogin_FailurePrintsAndStaysAnonymous(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/users/login", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"error":"bad credentials"}`))
	})
	app, out := newTestApp(t, r)
	stubInput(t, []string{"a@b.c"}, "wrong")

	err := app.Login(context.Background())
	require.Error(t, err)
	assert.Contains(t, out.String(), "Login failed")
	assert.False(t, app.isLoggedIn())
}

func TestIsAdmin_RequiresAdminRole(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/users/login", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(loginEnvelope("ADMIN")))
	})
	app, _ := newTestApp(t, r)
	stubInput(t, []string{"a@b.c"}, "pw")

	require.NoError(t, app.Login(context.Background()))
	assert.True(t, app.isAdmin())
}

func TestFiles_ListServedFromCacheOnSecondCall(t *testing.T) {
	var listCalls int
	r := chi.NewRouter()
	r.Post("/users/login", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(loginEnvelope("USER")))
	})
	r.Get("/files/metadata/user", func(w http.ResponseWriter, req *http.Request) {
		listCalls++
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"f1","fileName":"a.txt","sizeInBytes":3,"isPublic":false}]}`))
	})
	app, out := newTestApp(t, r)
	stubInput(t, []string{"a@b.c"}, "pw")
	require.NoError(t, app.Login(context.Background()))

	require.NoError(t, app.Files(context.Background()))
	require.NoError(t, app.Files(context.Background()))
	assert.Equal(t, 1, listCalls)
	assert.Contains(t, out.String(), "a.txt")
}

func TestFiles_RequiresSession(t *testing.T) {
	app, _ := newTestApp(t, chi.NewRouter())
	err := app.Files(context.Background())
	require.Error(t, err)
}

func TestUpload_EmptyPathListIsNoOp(t *testing.T) {
	var anyCall bool
	r := chi.NewRouter()
	r.Post("/users/login", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(loginEnvelope("USER")))
	})
	r.Post("/files/upload", func(w http.ResponseWriter, req *http.Request) {
		anyCall = true
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	app, out := newTestApp(t, r)
	stubInput(t, []string{"a@b.c"}, "pw")
	require.NoError(t, app.Login(context.Background()))

	// paths, category, public prompt answers
	stubInput(t, []string{"", "docs", "n"}, "")
	require.NoError(t, app.Upload(context.Background()))
	assert.Contains(t, out.String(), "Nothing to upload")
	assert.False(t, anyCall)
}

func TestUpload_RetryResumesFromFailedFile(t *testing.T) {
	var uploadedNames []string
	r := chi.NewRouter()
	r.Post("/users/login", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(loginEnvelope("USER")))
	})
	r.Post("/files/upload", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, req.ParseMultipartForm(1<<20))
		_, header, err := req.FormFile("file")
		require.NoError(t, err)
		uploadedNames = append(uploadedNames, header.Filename)
		// The second call fails transiently; the retry must not repeat the
		// file that already uploaded.
		if len(uploadedNames) == 2 {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"success":false,"error":"backend hiccup"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"f","fileName":"` + header.Filename + `"}}`))
	})
	app, out := newTestApp(t, r)
	stubInput(t, []string{"a@b.c"}, "pw")
	require.NoError(t, app.Login(context.Background()))

	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.txt")
	pathB := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(pathA, []byte("aa"), 0o600))
	require.NoError(t, os.WriteFile(pathB, []byte("bb"), 0o600))

	stubInput(t, []string{pathA + " " + pathB, "docs", "n"}, "")
	require.NoError(t, app.Upload(context.Background()))

	assert.Equal(t, []string{"a.txt", "b.txt", "b.txt"}, uploadedNames)
	assert.Contains(t, out.String(), "Uploaded 2 file(s)")
}

func TestLogout_ClearsSessionAndCache(t *testing.T) {
	var listCalls int
	r := chi.NewRouter()
	r.Post("/users/login", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(loginEnvelope("USER")))
	})
	r.Post("/users/logout", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	r.Get("/files/metadata/user", func(w http.ResponseWriter, req *http.Request) {
		listCalls++
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	})
	app, out := newTestApp(t, r)
	stubInput(t, []string{"a@b.c"}, "pw")
	require.NoError(t, app.Login(context.Background()))
	require.NoError(t, app.Files(context.Background()))

	require.NoError(t, app.Logout(context.Background()))
	assert.Contains(t, out.String(), "Logged out")
	assert.False(t, app.isLoggedIn())

	_, _, err := app.store.Load(context.Background())
	require.Error(t, err)
}

func TestAdminEditCommands_ReachBackend(t *testing.T) {
	var paths []string
	record := func(data string) http.HandlerFunc {
		return func(w http.ResponseWriter, req *http.Request) {
			paths = append(paths, req.Method+" "+req.URL.Path)
			if data == "" {
				_, _ = w.Write([]byte(`{"success":true}`))
				return
			}
			_, _ = w.Write([]byte(`{"success":true,"data":` + data + `}`))
		}
	}
	r := chi.NewRouter()
	r.Post("/users/login", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(loginEnvelope("ADMIN")))
	})
	r.Put("/admin/tenants/{id}", record(`{"id":"t1","name":"acme"}`))
	r.Post("/users", record(`{"id":"u2","email":"b@b.c","role":"USER"}`))
	r.Put("/users/{id}", record(`{"id":"u2","email":"b@b.c","role":"MODERATOR"}`))
	r.Delete("/search-history/{id}", record(""))
	app, out := newTestApp(t, r)
	stubInput(t, []string{"a@b.c"}, "pw")
	require.NoError(t, app.Login(context.Background()))

	stubInput(t, []string{"t1", "acme", "25"}, "")
	require.NoError(t, app.UpdateTenant(context.Background()))

	stubInput(t, []string{"b@b.c", "bob", ""}, "pw2")
	require.NoError(t, app.AddUser(context.Background()))

	stubInput(t, []string{"u2", "moderator"}, "")
	require.NoError(t, app.UpdateUser(context.Background()))

	stubInput(t, []string{"h1"}, "")
	require.NoError(t, app.RemoveHistory(context.Background()))

	assert.Equal(t, []string{
		"PUT /admin/tenants/t1",
		"POST /users",
		"PUT /users/u2",
		"DELETE /search-history/h1",
	}, paths)
	assert.Contains(t, out.String(), "Tenant t1 updated")
	assert.Contains(t, out.String(), "User b@b.c created")
	assert.Contains(t, out.String(), "User u2 updated")
	assert.Contains(t, out.String(), "History entry deleted")
}

func TestAuthFailure_ExpiresSessionOnce(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/users/login", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(loginEnvelope("USER")))
	})
	r.Get("/license/info", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"error":"token expired"}`))
	})
	app, out := newTestApp(t, r)
	stubInput(t, []string{"a@b.c"}, "pw")
	require.NoError(t, app.Login(context.Background()))

	err := app.License(context.Background())
	require.Error(t, err)
	assert.False(t, app.isLoggedIn())
	assert.Equal(t, 1, strings.Count(out.String(), "! token expired"))
}

func TestWhoami(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/users/login", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(loginEnvelope("USER")))
	})
	app, out := newTestApp(t, r)

	require.NoError(t, app.Whoami(context.Background()))
	assert.Contains(t, out.String(), "Not logged in")

	stubInput(t, []string{"a@b.c"}, "pw")
	require.NoError(t, app.Login(context.Background()))
	require.NoError(t, app.Whoami(context.Background()))
	assert.Contains(t, out.String(), "alice")
}
