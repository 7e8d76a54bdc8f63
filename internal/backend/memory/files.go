package memory

import (
	"context"
	"sync"

	"wheeldeal/internal/backend"
)

var _ backend.Files = (*Files)(nil)

// Files keeps uploaded blobs in memory and hands back a synthetic URL.
type Files struct {
	mu      sync.Mutex
	baseURL string
	objects map[string][]byte
}

func NewFiles(baseURL string) *Files {
	return &Files{baseURL: baseURL, objects: make(map[string][]byte)}
}

func (f *Files) Upload(ctx context.Context, path string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	f.objects[path] = buf
	return f.baseURL + "/" + path, nil
}

// Object returns an uploaded blob, for test assertions.
func (f *Files) Object(path string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[path]
	return data, ok
}
