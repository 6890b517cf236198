package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"company-board-api/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var errDBDown = errors.New("db down")

// asUser is a stand-in for the auth middleware: it primes the context keys
// the handlers read.
func asUser(userID int, role models.UserRole, fullName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("username", "testuser")
		c.Set("fullName", fullName)
		c.Set("role", role)
		c.Next()
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doForm(t *testing.T, router *gin.Engine, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// doMultipart posts fields plus an optional file part named "file".
func doMultipart(t *testing.T, router *gin.Engine, path string, fields map[string]string, fileName string, fileContent []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if fileName != "" {
		part, err := mw.CreateFormFile("file", fileName)
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := part.Write(fileContent); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response body %q: %v", w.Body.String(), err)
	}
	return body
}

/* ==========================
   FileStorage stubs
   ========================== */

type stubStorage struct {
	uploads   []string
	signedURL string
	readData  []byte
	readErr   error
}

func (s *stubStorage) Upload(_ context.Context, content io.Reader, fileName, _ string) (string, error) {
	io.Copy(io.Discard, content)
	s.uploads = append(s.uploads, fileName)
	return "responses/ab12cd34_" + fileName, nil
}

func (s *stubStorage) SignedURL(string, time.Duration) (string, error) {
	return s.signedURL, nil
}

func (s *stubStorage) Read(string) ([]byte, error) {
	return s.readData, s.readErr
}

type failingStorage struct{}

func (failingStorage) Upload(context.Context, io.Reader, string, string) (string, error) {
	return "", errors.New("storage unavailable")
}

func (failingStorage) SignedURL(string, time.Duration) (string, error) {
	return "", errors.New("storage unavailable")
}

func (failingStorage) Read(string) ([]byte, error) {
	return nil, errors.New("storage unavailable")
}
