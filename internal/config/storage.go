package config

import "sync"

// StorageConfig selects where PDFs are published: "supabase" or "local".
type StorageConfig struct {
	Driver         string
	SupabaseURL    string
	SupabaseKey    string
	SupabaseBucket string
	LocalDir       string
}

var (
	storageConfig *StorageConfig
	storageOnce   sync.Once
)

func LoadStorageConfig() *StorageConfig {
	storageOnce.Do(func() {
		c := &StorageConfig{
			Driver:         getEnv("STORAGE_DRIVER", ""),
			SupabaseURL:    getEnv("SUPABASE_URL", ""),
			SupabaseKey:    getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
			SupabaseBucket: getEnv("SUPABASE_BUCKET", "resumes"),
			LocalDir:       getEnv("PDF_DIR", "pdfs"),
		}
		if c.Driver == "" {
			c.Driver = "local"
			if c.SupabaseURL != "" && c.SupabaseKey != "" {
				c.Driver = "supabase"
			}
		}
		storageConfig = c
	})
	return storageConfig
}
