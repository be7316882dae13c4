// Package upload stores received files on local disk and hands back an opaque
// serving path; callers persist only the path.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) *LocalStore {
	if strings.TrimSpace(baseDir) == "" {
		baseDir = "uploads"
	}
	return &LocalStore{baseDir: baseDir}
}

// Save writes the uploaded file under baseDir/<kind>/ and returns the public
// path (/uploads/<kind>/<name>).
func (s *LocalStore) Save(fh *multipart.FileHeader, kind string) (string, error) {
	if fh == nil {
		return "", fmt.Errorf("nil file")
	}

	dir := filepath.Join(s.baseDir, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	ext := filepath.Ext(fh.Filename)
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return "/uploads/" + kind + "/" + name, nil
}
