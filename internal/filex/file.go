// Package filex provides small file helpers: size inspection and
// human-readable size formatting.
package filex

import (
	"fmt"
	"os"
)

// Size returns the size in bytes of the file at path. Directories are
// rejected since they cannot be uploaded.
func Size(path string) (int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return 0, fmt.Errorf("%s is a directory", path)
	}
	return fi.Size(), nil
}

// FormatSize renders a byte count in human-readable form using base-1024
// units with two decimal places: bytes, KB, MB, GB. Values of a terabyte
// and beyond stay in GB.
func FormatSize(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d bytes", n)
	}
	units := []string{"KB", "MB", "GB"}
	v := float64(n) / 1024
	i := 0
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}
	return fmt.Sprintf("%.2f %s", v, units[i])
}
