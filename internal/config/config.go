package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port string

	// Auth. Empty means the API runs open (local corpus tool).
	APIKey string

	// Corpus location
	ChunksDir string

	// Upload limits
	MaxUploadBytes int64

	// Hierarchy constants stamped into every chunk
	DocTitle   string
	DocChapter string

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("LAWCHUNK_API_KEY"),

		ChunksDir: envOr("CHUNKS_DIR", "chunks"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		DocTitle:   envOr("DOC_TITLE", "27"),
		DocChapter: envOr("DOC_CHAPTER", "2"),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.DocTitle == "" {
		cfg.DocTitle = "27"
	}
	if cfg.DocChapter == "" {
		cfg.DocChapter = "2"
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
