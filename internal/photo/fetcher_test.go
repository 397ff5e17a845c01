package photo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// testImagePNG encodes a small solid-colour image for the fake image
// endpoint.
func testImagePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf(`png.Encode failed: %v`, err)
	}
	return buf.Bytes()
}

// newPhotoServer serves the info payload at / and the image at
// /photo.png, filling in its own URL for image_url.
func newPhotoServer(t *testing.T, location string, imageBody []byte) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"image_url": %q, "location_name": %q}`, srv.URL+"/photo.png", location)
	})
	mux.HandleFunc("/photo.png", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(imageBody)
	})
	return srv
}

func TestAPISourceFetchesPhotoAndLocation(t *testing.T) {
	srv := newPhotoServer(t, "Paris", testImagePNG(t))
	source := NewAPISource(srv.URL, time.Second)

	rec, err := source.Next(context.Background())
	if err != nil {
		t.Fatalf(`Next failed: %v`, err)
	}
	if rec.Location != "Paris" {
		t.Fatalf(`Location = %q, want "Paris"`, rec.Location)
	}
	if rec.Bitmap == nil {
		t.Fatal("Bitmap is nil")
	}
	if got := rec.Bitmap.Bounds(); got != image.Rect(0, 0, 8, 6) {
		t.Fatalf(`Bitmap bounds = %v, want (0,0)-(8,6)`, got)
	}
}

func TestAPISourceAcceptsLegacyFieldNames(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()
	body := testImagePNG(t)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"fullUrl": %q, "place": "new_york"}`, srv.URL+"/p")
	})
	mux.HandleFunc("/p", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	})

	rec, err := NewAPISource(srv.URL, time.Second).Next(context.Background())
	if err != nil {
		t.Fatalf(`Next failed: %v`, err)
	}
	if rec.Location != "New York" {
		t.Fatalf(`Location = %q, want "New York"`, rec.Location)
	}
}

func TestAPISourceServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewAPISource(srv.URL, time.Second).Next(context.Background())
	var protoErr *ProtocolError
	if !errors.As(err, &protoErr) {
		t.Fatalf(`Next error = %v, want ProtocolError`, err)
	}
	if protoErr.Status != http.StatusInternalServerError {
		t.Fatalf(`Status = %d, want 500`, protoErr.Status)
	}
}

func TestAPISourceUnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewAPISource(url, time.Second).Next(context.Background())
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf(`Next error = %v, want NetworkError`, err)
	}
}

func TestAPISourceMalformedPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not JSON", body: "<html>so wrong</html>"},
		{name: "no image URL", body: `{"location_name": "Paris"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewAPISource(srv.URL, time.Second).Next(context.Background())
			var protoErr *ProtocolError
			if !errors.As(err, &protoErr) {
				t.Fatalf(`Next error = %v, want ProtocolError`, err)
			}
		})
	}
}

func TestAPISourceUndecodableImage(t *testing.T) {
	srv := newPhotoServer(t, "Paris", []byte("definitely not a PNG"))

	_, err := NewAPISource(srv.URL, time.Second).Next(context.Background())
	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf(`Next error = %v, want DecodeError`, err)
	}
}
