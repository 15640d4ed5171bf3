package simpleupload

import "testing"

func TestContentTypeForFile(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     string
	}{
		{
			name:     "jpeg",
			fileName: "photo.jpg",
			want:     "image/jpeg",
		},
		{
			name:     "uppercase extension",
			fileName: "SCAN.PDF",
			want:     "application/pdf",
		},
		{
			name:     "text",
			fileName: "notes.txt",
			want:     "text/plain",
		},
		{
			name:     "unknown extension",
			fileName: "data.bin",
			want:     "application/octet-stream",
		},
		{
			name:     "no extension",
			fileName: "README",
			want:     "application/octet-stream",
		},
		{
			name:     "path is ignored",
			fileName: "dir/sub/archive.zip",
			want:     "application/zip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContentTypeForFile(tt.fileName); got != tt.want {
				t.Errorf("ContentTypeForFile(%q) = %s, want %s", tt.fileName, got, tt.want)
			}
		})
	}
}
