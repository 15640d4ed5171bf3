// Command upload sends a single file to a signed upload service and
// prints the resulting file key.
//
// Usage:
//
//	UPLOAD_BASE_URL=https://upload.example.com \
//	UPLOAD_APP_ID=my-app \
//	UPLOAD_SECRET_KEY=... \
//	upload ./report.pdf
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tendant/simple-upload/pkg/simpleupload"
	"github.com/tendant/simple-upload/pkg/simpleupload/config"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <file>\n", os.Args[0])
		os.Exit(2)
	}

	cfg, err := config.LoadClient()
	if err != nil {
		slog.Error("Failed to load configuration", "err", err)
		os.Exit(1)
	}

	client, err := cfg.BuildClient()
	if err != nil {
		slog.Error("Failed to build client", "err", err)
		os.Exit(1)
	}

	filePath := os.Args[1]
	file, err := os.Open(filePath)
	if err != nil {
		slog.Error("Failed to open file", "path", filePath, "err", err)
		os.Exit(1)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		slog.Error("Failed to stat file", "path", filePath, "err", err)
		os.Exit(1)
	}

	result, err := client.Upload(context.Background(), simpleupload.UploadRequest{
		FileName: filepath.Base(filePath),
		Size:     info.Size(),
		Body:     file,
	})
	if err != nil {
		slog.Error("Upload failed", "path", filePath, "err", err)
		os.Exit(1)
	}

	fmt.Println("file key:", result.FileKey)
	if result.DownloadURL != "" {
		fmt.Println("download:", result.DownloadURL)
	}
}
