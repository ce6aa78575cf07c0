package infrastructure

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// SupabaseStore uploads PDFs into a public Supabase storage bucket.
type SupabaseStore struct {
	client *resty.Client
	url    string
	bucket string
	prefix string
}

func NewSupabaseStore(url, key, bucket string) *SupabaseStore {
	url = strings.TrimRight(url, "/")
	client := resty.New().
		SetBaseURL(url).
		SetTimeout(60*time.Second).
		SetAuthToken(key).
		SetHeader("apikey", key)
	return &SupabaseStore{client: client, url: url, bucket: bucket, prefix: "pdfs"}
}

// Put uploads the file at path under "pdfs/<filename>", replacing any
// existing object, and returns its public URL.
func (s *SupabaseStore) Put(ctx context.Context, path, filename string) (string, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	key := s.prefix + "/" + filename

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/pdf").
		SetHeader("x-upsert", "true").
		SetBody(body).
		Post("/storage/v1/object/" + s.bucket + "/" + key)
	if err != nil {
		return "", fmt.Errorf("supabase upload: %w", err)
	}
	if resp.IsError() {
		msg := gjson.GetBytes(resp.Body(), "message").String()
		if msg == "" {
			msg = resp.String()
		}
		return "", fmt.Errorf("supabase upload: %s: %s", resp.Status(), msg)
	}
	return s.PublicURL(key), nil
}

func (s *SupabaseStore) PublicURL(key string) string {
	return s.url + "/storage/v1/object/public/" + s.bucket + "/" + key
}
