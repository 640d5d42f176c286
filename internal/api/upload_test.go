package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadImage(t *testing.T) {
	var gotFilename, gotKind, gotContent string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload/image", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		data, err := io.ReadAll(file)
		require.NoError(t, err)

		gotFilename = header.Filename
		gotContent = string(data)
		gotKind = r.FormValue("type")
		w.Write([]byte(`{"url":"/images/poster-1.png"}`))
	}))

	url, err := client.UploadImage(context.Background(), "poster.png", strings.NewReader("png-bytes"), "poster")
	require.NoError(t, err)

	assert.Equal(t, "/images/poster-1.png", url)
	assert.Equal(t, "poster.png", gotFilename)
	assert.Equal(t, "png-bytes", gotContent)
	assert.Equal(t, "poster", gotKind)
}

func TestUploadImageOutlivesJSONTimeout(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{"url":"/images/slow.png"}`))
	}), WithTimeout(100*time.Millisecond), WithUploadTimeout(5*time.Second))

	url, err := client.UploadImage(context.Background(), "slow.png", strings.NewReader("x"), "poster")
	require.NoError(t, err, "an upload slower than the JSON timeout must still finish")
	assert.Equal(t, "/images/slow.png", url)
}

func TestUploadImageCarriesSessionCookie(t *testing.T) {
	var gotCookie string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/member/login":
			http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "xyz789", Path: "/"})
			w.Write([]byte(`{}`))
		case "/upload/image":
			if c, err := r.Cookie("JSESSIONID"); err == nil {
				gotCookie = c.Value
			}
			w.Write([]byte(`{"url":"/images/p.png"}`))
		}
	}))

	_, err := client.Login(context.Background(), Credentials{ID: "jane", Password: "pw"})
	require.NoError(t, err)

	_, err = client.UploadImage(context.Background(), "p.png", strings.NewReader("x"), "poster")
	require.NoError(t, err)
	assert.Equal(t, "xyz789", gotCookie)
}

func TestUploadImageNilReader(t *testing.T) {
	client := NewClient("http://unused", nil)

	_, err := client.UploadImage(context.Background(), "poster.png", nil, "poster")
	require.Error(t, err)

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "file", verr.Field)
}

func TestUploadImageHTTPError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"unsupported file type"}`))
	}))

	_, err := client.UploadImage(context.Background(), "poster.bmp", strings.NewReader("x"), "poster")
	require.Error(t, err)

	var terr *TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, http.StatusBadRequest, terr.Status)
	assert.Equal(t, "unsupported file type", terr.Message)
}
