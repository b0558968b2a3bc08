//go:build integration

package imagefetch_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"nasa-poster/internal/adapters/httpclient"
	"nasa-poster/internal/adapters/imagefetch"
	"nasa-poster/internal/usecases"
	"nasa-poster/test/fixtures"
)

// setupNginx serves files from a temp dir through a real nginx, which sets
// Content-Type from the extension and Content-Length from the file size.
func setupNginx(ctx context.Context, t *testing.T, files map[string][]byte) string {
	t.Helper()

	dir := t.TempDir()
	var containerFiles []testcontainers.ContainerFile
	for name, body := range files {
		host := filepath.Join(dir, name)
		if err := os.WriteFile(host, body, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		containerFiles = append(containerFiles, testcontainers.ContainerFile{
			HostFilePath:      host,
			ContainerFilePath: "/usr/share/nginx/html/" + name,
			FileMode:          0o644,
		})
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "nginx:alpine",
			ExposedPorts: []string{"80/tcp"},
			Files:        containerFiles,
			WaitingFor:   wait.ForHTTP("/").WithPort("80/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get host: %v", err)
	}
	port, err := container.MappedPort(ctx, "80")
	if err != nil {
		t.Fatalf("failed to get port: %v", err)
	}
	return fmt.Sprintf("http://%s:%s", host, port.Port())
}

func TestIntegration_Fetcher_RealServerHeaders(t *testing.T) {
	ctx := context.Background()
	base := setupNginx(ctx, t, map[string][]byte{
		"small~orig.png":  fixtures.GeneratePaddedPNG(300, 200, 500_000),
		"large~orig.png":  fixtures.GeneratePaddedPNG(300, 200, 1_500_000),
		"small~thumb.jpg": fixtures.GenerateJPEG(64, 48),
		"clip~orig.mp4":   []byte("not really a video"),
	})

	tests := []struct {
		name string
		want usecases.OutcomeKind
	}{
		{"small~orig.png", usecases.OutcomeAccepted},
		{"small~thumb.jpg", usecases.OutcomeAccepted},
		{"large~orig.png", usecases.OutcomeRejected},
		{"clip~orig.mp4", usecases.OutcomeRejected},
		{"missing.png", usecases.OutcomeTransportFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uploader := &MockUploader{}
			fetcher := imagefetch.NewFetcher(httpclient.New(10*time.Second, ""), uploader, 0, "")

			outcome := fetcher.FetchAndValidate(ctx, base+"/"+tt.name)

			if outcome.Kind != tt.want {
				t.Errorf("Kind: got %v, want %v (reason %q, err %v)", outcome.Kind, tt.want, outcome.Reason, outcome.Err)
			}
			wantUploads := 0
			if tt.want == usecases.OutcomeAccepted {
				wantUploads = 1
			}
			if uploader.Calls() != wantUploads {
				t.Errorf("uploads: got %d, want %d", uploader.Calls(), wantUploads)
			}
		})
	}
}
