package media

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"asset-janitor/core/server"
	"asset-janitor/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(svc *Service) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: server.ErrorHandler})
	NewHandler(svc).RegisterRoutes(app)
	return app
}

func uploadRequest(t *testing.T, folder, filename, contentType string, data []byte) *http.Request {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	if folder != "" {
		require.NoError(t, w.WriteField("folder", folder))
	}
	if data != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/admin/media/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decode(t *testing.T, r io.Reader) map[string]any {
	var out map[string]any
	require.NoError(t, json.NewDecoder(r).Decode(&out))
	return out
}

func TestHandleUpload(t *testing.T) {
	client := new(mocks.Client)
	expectPut(client, "services/1700000000000.png", nil)
	app := newTestApp(newTestService(t, client, nil))

	resp, err := app.Test(uploadRequest(t, "services", "logo.png", "image/png", []byte("png")), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode(t, resp.Body)
	assert.Equal(t, "https://cdn.example.com/storage/v1/object/public/assets/services/1700000000000.png", body["url"])
	assert.NotContains(t, body, "poster_error")
	record := body["record"].(map[string]any)
	assert.Equal(t, "services/1700000000000.png", record["file_path"])
	assert.Equal(t, TypeImage, record["type"])
}

func TestHandleUpload_PartialSuccess(t *testing.T) {
	client := new(mocks.Client)
	expectPut(client, "portfolio/1700000000000.mp4", nil)
	app := newTestApp(newTestService(t, client, &fakeGenerator{err: errors.New("no video stream")}))

	resp, err := app.Test(uploadRequest(t, "portfolio", "clip.mp4", "video/mp4", []byte("mp4")), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode(t, resp.Body)
	assert.Contains(t, body["poster_error"], "no video stream")
	assert.NotContains(t, body, "poster_url")
	record := body["record"].(map[string]any)
	assert.Equal(t, TypeVideo, record["type"])
	assert.Nil(t, record["poster_path"])
}

func TestHandleUpload_MissingFile(t *testing.T) {
	app := newTestApp(newTestService(t, new(mocks.Client), nil))

	resp, err := app.Test(uploadRequest(t, "blog", "", "", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleUpload_RejectedFolder(t *testing.T) {
	app := newTestApp(newTestService(t, new(mocks.Client), nil))

	resp, err := app.Test(uploadRequest(t, "private", "a.png", "image/png", []byte("png")), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "InvalidRequest", decode(t, resp.Body)["error"])
}

func TestHandleUpload_StorageDown(t *testing.T) {
	client := new(mocks.Client)
	expectPut(client, "blog/1700000000000.png", errors.New("connection refused"))
	app := newTestApp(newTestService(t, client, nil))

	resp, err := app.Test(uploadRequest(t, "blog", "a.png", "image/png", []byte("png")), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body := decode(t, resp.Body)
	assert.Equal(t, "StorageUnavailable", body["error"])
	assert.Equal(t, true, body["retryable"])
}

func TestHandleLookup(t *testing.T) {
	svc := newTestService(t, new(mocks.Client), nil)
	_, err := svc.Repository().RecordUpload(t.Context(), "blog/1.jpg", nil, "blog", TypeImage)
	require.NoError(t, err)
	app := newTestApp(svc)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/media?path=blog/1.jpg", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "blog/1.jpg", decode(t, resp.Body)["file_path"])

	resp, err = app.Test(httptest.NewRequest("GET", "/admin/media?path=blog/2.jpg", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/admin/media", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestFeature(t *testing.T) {
	f := NewFeature(newTestService(t, new(mocks.Client), nil))
	assert.Equal(t, "media", f.Name())
	assert.True(t, f.IsEnabled())
	assert.False(t, NewFeature(NewService(NewRepository(nil), nil, Options{}, nil, nil)).IsEnabled())
}
