package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/andybalholm/brotli"
)

func acceptsBrotli(accept string) bool {
	for _, part := range strings.Split(strings.ToLower(accept), ",") {
		coding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if strings.TrimSpace(coding) != "br" {
			continue
		}
		return strings.ReplaceAll(strings.TrimSpace(params), " ", "") != "q=0"
	}
	return false
}

func brotliJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	bw := brotli.NewWriterLevel(&buf, brotli.DefaultCompression)
	if err := json.NewEncoder(bw).Encode(v); err != nil {
		_ = bw.Close()
		return nil, fmt.Errorf("encode json: %w", err)
	}
	if err := bw.Close(); err != nil {
		return nil, fmt.Errorf("flush brotli: %w", err)
	}
	return buf.Bytes(), nil
}
