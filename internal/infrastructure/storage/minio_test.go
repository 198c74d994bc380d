package storage

import (
	"net/url"
	"testing"
)

func TestWithPublicURL(t *testing.T) {
	u, err := url.Parse("http://minio:9000/transcript-search/exports/a.csv?X-Amz-Signature=abc&X-Amz-Expires=3600")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		public string
		want   string
	}{
		{"no public url", "", "http://minio:9000/transcript-search/exports/a.csv?X-Amz-Signature=abc&X-Amz-Expires=3600"},
		{"public url", "https://files.example.com", "https://files.example.com/transcript-search/exports/a.csv?X-Amz-Signature=abc&X-Amz-Expires=3600"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := withPublicURL(u, tt.public); got != tt.want {
				t.Errorf("withPublicURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
