package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func writePNG(t *testing.T, path string) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.NRGBA{R: 0xff, A: 0xff})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("could not encode the test image: %v", err)
	}
	if path != "" {
		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			t.Fatalf("could not write the test image: %v", err)
		}
	}
	return buf.Bytes()
}

func TestUtils_ShouldBeValidUrl(t *testing.T) {
	assert := assert.New(t)

	assert.True(IsValidUrl("https://github.com/esimov/ristretto/"))
	assert.False(IsValidUrl("/home/user/pictures/a.jpg"))
	assert.False(IsValidUrl("pictures/a.jpg"))
	assert.False(IsValidUrl("file:///tmp/a.jpg"))
}

func TestUtils_ShouldDetectValidFileType(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	img := filepath.Join(dir, "sample.png")
	writePNG(t, img)
	txt := filepath.Join(dir, "notes.png")
	assert.NoError(os.WriteFile(txt, []byte("definitely not a picture"), 0644))

	ctype, err := DetectContentType(img)
	assert.NoError(err)
	assert.Equal("image/png", ctype)

	assert.True(IsImage(img))
	assert.False(IsImage(txt))
	assert.False(IsImage(filepath.Join(dir, "missing.png")))
}

func TestUtils_ShouldDownloadImage(t *testing.T) {
	assert := assert.New(t)
	data := writePNG(t, "")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sample.png":
			w.Write(data)
		case "/page.html":
			w.Write([]byte("<html><body>nope</body></html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f, err := DownloadImage(srv.URL + "/sample.png")
	if err != nil {
		t.Fatalf("couldn't download test file: %v", err)
	}
	defer os.Remove(f.Name())
	defer f.Close()

	assert.True(strings.HasSuffix(f.Name(), ".png"))
	assert.True(IsImage(f.Name()))

	_, err = DownloadImage(srv.URL + "/page.html")
	assert.ErrorIs(err, ErrNotImage)

	_, err = DownloadImage(srv.URL + "/missing.png")
	assert.Error(err)
}

func TestUtils_DecorateText(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(ErrorColor+"failed"+DefaultColor, DecorateText("failed", ErrorMessage))
	assert.Equal(SuccessColor+"done"+DefaultColor, DecorateText("done", SuccessMessage))
	assert.Equal("plain", DecorateText("plain", MessageType(42)))
}

func TestUtils_FormatTime(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{1500 * time.Millisecond, "1.50s"},
		{2*time.Minute + 3*time.Second, "2m 3.00s"},
		{time.Hour + 2*time.Minute + 3400*time.Millisecond, "1h 2m 3.40s"},
		{26*time.Hour + 5*time.Minute, "1d 2h 5m 0.00s"},
	}
	for _, c := range cases {
		t.Run(c.want, func(t *testing.T) {
			assert.Equal(t, c.want, FormatTime(c.in))
		})
	}
}

func TestUtils_MathHelpers(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(2, Min(2, 3))
	assert.Equal(2, Min(3, 2))
	assert.Equal(3.5, Max(1.0, 3.5))
	assert.Equal(0.0, Clamp(-1.0, 0, 10))
	assert.Equal(10.0, Clamp(12.0, 0, 10))
	assert.Equal(5.0, Clamp(5.0, 0, 10))
	assert.Equal(0.0, Clamp(5.0, 0, -3))
	assert.True(Contains([]string{"a", "b"}, "b"))
	assert.False(Contains([]string{"a", "b"}, "c"))
	assert.Equal("125.0%", FormatScale(1.25))
	assert.Equal("12.5%", FormatScale(0.125))
}

func TestUtils_Spinner(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner("loading", time.Millisecond, false)
	s.writer = &buf
	s.StopMsg = "finished"

	s.Start()
	s.Start()
	time.Sleep(5 * time.Millisecond)
	s.SetMessage("still loading")
	s.Stop()
	s.Stop()

	assert.Contains(t, buf.String(), "loading")
	assert.True(t, strings.HasSuffix(buf.String(), "finished"))
}
