package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/readinglog/pkg/authsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for auth service end-to-end tests.
 * This includes container setup, a fake identity provider and assertions.
 */

const (
	testImageName = "readinglog-auth-test:latest"

	jwtSecret  = "e2e-secret-0123456789abcdef-0123456789"
	adminEmail = "admin@example.com"

	// hostAlias is how a container reaches ports exposed through HostAccessPorts.
	hostAlias = "host.testcontainers.internal"
)

// TestMain builds the service image once before all tests and removes it
// afterwards. The suite needs docker, so it only runs when asked to.
func TestMain(m *testing.M) {
	if os.Getenv("GO_TEST_INTEGRATION") != "1" {
		fmt.Fprintln(os.Stdout, "skipping e2e suite, set GO_TEST_INTEGRATION=1 to run it")
		os.Exit(0)
	}

	fmt.Fprintf(os.Stdout, "Building Auth Service Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Auth Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/readinglog/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// identity is one account known to the fake provider, selected by the
// authorization code the test presents.
type identity struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// fakeGoogle is a minimal google look-alike: codes map to identities and
// every code can be exchanged any number of times.
type fakeGoogle struct {
	srv  *httptest.Server
	port int

	mu    sync.Mutex
	codes map[string]identity
}

func newFakeGoogle(t *testing.T) *fakeGoogle {
	t.Helper()

	f := &fakeGoogle{codes: make(map[string]identity)}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		code := r.PostForm.Get("code")

		f.mu.Lock()
		_, ok := f.codes[code]
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "provider-" + code,
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("GET /userinfo", func(w http.ResponseWriter, r *http.Request) {
		code := r.Header.Get("Authorization")
		const prefix = "Bearer provider-"
		if len(code) <= len(prefix) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		f.mu.Lock()
		id, ok := f.codes[code[len(prefix):]]
		f.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(id)
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)

	_, port, err := net.SplitHostPort(f.srv.Listener.Addr().String())
	require.NoError(t, err)
	f.port, err = strconv.Atoi(port)
	require.NoError(t, err)

	return f
}

// issue registers code as a login for id.
func (f *fakeGoogle) issue(code string, id identity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.codes[code] = id
}

func (f *fakeGoogle) env() map[string]string {
	base := fmt.Sprintf("http://%s:%d", hostAlias, f.port)
	return map[string]string{
		"OAUTH2_GOOGLE_CLIENT_ID":     "e2e-client",
		"OAUTH2_GOOGLE_CLIENT_SECRET": "e2e-secret",
		"OAUTH2_GOOGLE_REDIRECT_URL":  "http://localhost/oauth2/google",
		"OAUTH2_GOOGLE_AUTH_URL":      base + "/authorize",
		"OAUTH2_GOOGLE_TOKEN_URL":     base + "/token",
		"OAUTH2_GOOGLE_USERINFO_URL":  base + "/userinfo",
	}
}

// setupAuthContainer starts the service wired to the fake provider and
// returns its base URL. extra overrides the default environment and the
// container joins any networks given.
func setupAuthContainer(t *testing.T, provider *fakeGoogle, extra map[string]string, networks ...string) string {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"AUTH_DATABASE_FILE": "/data/auth.db",
		"AUTH_ISSUER":        "readinglog-auth",
		"AUTH_ALGORITHM":     "HS256",
		"AUTH_JWT_SECRET":    jwtSecret,
		"AUTH_ADMIN_EMAILS":  adminEmail,
		"ENV":                "test",
		"LOG_LEVEL":          "info",
		"LOG_FORMAT":         "json",
	}
	var hostPorts []int
	if provider != nil {
		for k, v := range provider.env() {
			env[k] = v
		}
		hostPorts = []int{provider.port}
	}
	for k, v := range extra {
		env[k] = v
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:           testImageName,
			ExposedPorts:    []string{"8080/tcp"},
			Env:             env,
			HostAccessPorts: hostPorts,
			Networks:        networks,
			WaitingFor: wait.ForHTTP("/livez").
				WithPort("8080/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}

// login runs the provider callback for a fresh code bound to id.
func login(t *testing.T, client *authsdk.SDKClient, provider *fakeGoogle, id identity) *authsdk.Session {
	t.Helper()

	code := "code-" + id.Sub
	provider.issue(code, id)

	session, err := client.AuthenticateWithOAuth2(t.Context(), "google", code)
	require.NoError(t, err, "OAuth2 login should succeed")
	return session
}

// assertTokenPair verifies a token pair has all required fields.
func assertTokenPair(t *testing.T, pair *authsdk.TokenPairResponse) {
	t.Helper()
	require.NotNil(t, pair)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.Equal(t, "Bearer", pair.TokenType)
	require.Greater(t, pair.RefreshTokenExpiresAt, pair.AccessTokenExpiresAt)
}

// assertStatus checks err is an APIError carrying status.
func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)

	var apiErr *authsdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected an APIError, got %T: %v", err, err)
	require.Equal(t, status, apiErr.StatusCode, apiErr.Error())
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *authsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
