package capture

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// UniqueCopy copies a captured image next to itself under a
// millisecond-stamped name, so providers that reuse frame filenames cannot
// clobber an earlier capture. The stamp alone is almost always enough; a
// counter suffix covers two copies within the same millisecond.
func UniqueCopy(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("source file does not exist: %s", path)
	}

	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	if stem == "" {
		stem = "screenshot"
	}
	if ext == "" {
		ext = ".png"
	}

	millis := time.Now().UnixMilli()
	dst := filepath.Join(dir, fmt.Sprintf("%s-%d%s", stem, millis, ext))
	for counter := 1; ; counter++ {
		if _, err := os.Stat(dst); os.IsNotExist(err) {
			break
		}
		dst = filepath.Join(dir, fmt.Sprintf("%s-%d-%d%s", stem, millis, counter, ext))
	}

	if err := copyFile(path, dst); err != nil {
		return "", err
	}
	return dst, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
