package fiber_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlsurveying/jls-web/internal/logger"
	adapter "github.com/jlsurveying/jls-web/internal/logger/adapter/fiber"
)

type accessLine struct {
	IP     string `json:"IP"`
	Status int    `json:"status"`
	URI    string `json:"URI"`
	Method string `json:"method"`
	Host   string `json:"host"`
	Cache  string `json:"cache"`
}

var consoleJSON = logger.Log{
	AccessToConsole: true,
	Console:         logger.Console{Enabled: true},
}

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		target string
		config adapter.Config
		want   *accessLine
	}{
		{
			name:   "console disabled no output",
			target: "/",
		},
		{
			name:   "home page",
			target: "/",
			config: adapter.Config{Config: consoleJSON},
			want:   &accessLine{Status: 200, URI: "/", Method: fiber.MethodGet, Host: "example.com", Cache: "MISS"},
		},
		{
			name:   "query string kept",
			target: "/news?page=2",
			config: adapter.Config{Config: consoleJSON},
			want:   &accessLine{Status: 200, URI: "/news?page=2", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:   "unknown path",
			target: "/no_path",
			config: adapter.Config{Config: consoleJSON},
			want:   &accessLine{Status: 404, URI: "/no_path", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:   "checkalive silenced",
			target: "/checkalive",
			config: adapter.Config{
				Config: logger.Log{
					AccessToConsole: true,
					SilenceProbes:   true,
					Console:         logger.Console{Enabled: true},
				},
				SilentPaths: []string{"/checkalive"},
			},
		},
		{
			name:   "checkalive logged when not disabled",
			target: "/checkalive",
			config: adapter.Config{Config: consoleJSON, SilentPaths: []string{"/checkalive"}},
			want:   &accessLine{Status: 200, URI: "/checkalive", Method: fiber.MethodGet, Host: "example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, perf := runMiddleware(t, tt.target, tt.config)
			assert.NotEmpty(t, perf)

			if tt.want == nil {
				assert.Empty(t, output)

				return
			}

			require.NotEmpty(t, output)

			var got accessLine
			require.NoError(t, json.Unmarshal([]byte(output), &got))

			assert.Equal(t, tt.want.Status, got.Status)
			assert.Equal(t, tt.want.URI, got.URI)
			assert.Equal(t, tt.want.Method, got.Method)
			assert.Equal(t, tt.want.Host, got.Host)
			assert.Equal(t, tt.want.Cache, got.Cache)
		})
	}
}

func runMiddleware(t *testing.T, target string, cfg adapter.Config) (string, string) {
	t.Helper()

	stdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w

	app := fiber.New()
	app.Use(adapter.New(cfg))
	app.Get("/", func(c *fiber.Ctx) error {
		c.Set("X-Cache", "MISS")

		return c.SendString("home")
	})
	app.Get("/news", func(c *fiber.Ctx) error {
		return c.SendString("news")
	})
	app.Get("/checkalive", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, target, nil), -1)

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	_ = w.Close()
	os.Stdout = stdout
	out := <-outC

	require.NoError(t, err)

	return out, resp.Header.Get(adapter.PerformanceHeader)
}

func TestNewAccessFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "log")

	app := fiber.New()
	app.Use(adapter.New(adapter.Config{Config: logger.Log{
		File: logger.LogFile{
			Enabled: true,
			Path:    dir,
			Access:  logger.Rotation{Name: "access.log"},
		},
	}}))
	app.Get("/services", func(c *fiber.Ctx) error {
		return c.SendString("services")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/services", nil), -1)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	data, err := os.ReadFile(filepath.Join(dir, "access.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"URI":"/services"`)
}
