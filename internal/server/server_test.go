package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"

	"placeshare/internal/config"
	"placeshare/internal/database"
	"placeshare/internal/geocode"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// pngBytes is a minimal payload the content sniffer accepts as image/png.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

// stubGeocoder resolves every address to a fixed point unless failing.
type stubGeocoder struct {
	noResults bool
	outage    bool
}

func (g *stubGeocoder) Geocode(context.Context, string) (geocode.Coordinates, error) {
	if g.outage {
		return geocode.Coordinates{}, errors.New("provider unreachable")
	}
	if g.noResults {
		return geocode.Coordinates{}, geocode.ErrNoResults
	}
	return geocode.Coordinates{Latitude: 40.7484405, Longitude: -73.9878531}, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		JWTSecret:   "test-secret-key-for-handler-tests!!",
		Port:        "0",
		UploadDir:   t.TempDir(),
		MaxUploadKB: 500,
		Env:         "test",
	}
}

// newTestServer builds a server on in-memory sqlite with a stub geocoder and
// a ready-to-use Fiber app running the full middleware and route setup.
func newTestServer(t *testing.T, geocoder *stubGeocoder) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	if geocoder == nil {
		geocoder = &stubGeocoder{}
	}

	s, err := NewServerWithDeps(testConfig(t), db, nil, geocoder)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "An unknown error occurred!",
			})
		},
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	return s, app
}

// multipartForm builds a multipart body with text fields and one image file.
func multipartForm(t *testing.T, fields map[string]string, fileField, fileName, contentType string, fileBytes []byte) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="`+fileField+`"; filename="`+fileName+`"`)
		header.Set("Content-Type", contentType)
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(fileBytes)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return buf, w.FormDataContentType()
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body), "body: %s", raw)
	return body
}

// signupUser registers a user through the API and returns its id and token.
func signupUser(t *testing.T, app *fiber.App, name, email, password string) (uint, string) {
	t.Helper()

	buf, contentType := multipartForm(t, map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, "image", "avatar.png", "image/png", pngBytes)

	req := makeRequest(http.MethodPost, "/api/users/signup", buf, contentType, "")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body := decodeBody(t, resp)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "signup failed: %v", body)

	id, ok := body["userId"].(float64)
	require.True(t, ok, "missing userId in %v", body)
	token, ok := body["token"].(string)
	require.True(t, ok, "missing token in %v", body)
	return uint(id), token
}

func makeRequest(method, target string, body io.Reader, contentType, token string) *http.Request {
	req, _ := http.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAuthRequired_RejectsForgedTokens(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t, nil)
	userID, _ := signupUser(t, app, "Owner", "owner@example.com", "supersecret")

	// Token signed with a different secret.
	forged := *s.config
	forged.JWTSecret = "some-other-secret-entirely-wrong!!!"
	forgedServer := &Server{config: &forged}
	badToken, err := forgedServer.generateToken(userID, "owner@example.com")
	require.NoError(t, err)

	body := strings.NewReader(`{"title":"x","description":"long enough"}`)
	resp, err := app.Test(makeRequest(http.MethodPatch, "/api/places/1", body, "application/json", badToken), -1)
	require.NoError(t, err)
	decoded := decodeBody(t, resp)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "Authentication failed!", decoded["message"])

	// Garbage token.
	resp, err = app.Test(makeRequest(http.MethodDelete, "/api/places/1", nil, "", "not.a.jwt"), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUnknownRouteFallback(t *testing.T) {
	t.Parallel()
	_, app := newTestServer(t, nil)

	resp, err := app.Test(makeRequest(http.MethodGet, "/api/nope", nil, "", ""), -1)
	require.NoError(t, err)
	body := decodeBody(t, resp)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Could not find this route.", body["message"])
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()
	_, app := newTestServer(t, nil)

	live, err := app.Test(makeRequest(http.MethodGet, "/health/live", nil, "", ""), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, live.StatusCode)
	_ = live.Body.Close()

	ready, err := app.Test(makeRequest(http.MethodGet, "/health/ready", nil, "", ""), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, ready.StatusCode)
	_ = ready.Body.Close()
}
