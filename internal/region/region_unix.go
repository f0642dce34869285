//go:build unix

package region

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// MapFile maps the file at path read-write and returns its bytes as the
// backing region. The file is created if missing and extended to size if
// shorter; new bytes are zero-initialized by the OS. The returned cleanup
// unmaps the region and closes the file.
func MapFile(path string, size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("region: invalid size %d", size)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	if info.Size() < int64(size) {
		if err := f.Truncate(int64(size)); err != nil {
			_ = f.Close()
			return nil, nil, fmt.Errorf("region: extend %s: %w", path, err)
		}
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("region: mmap %s: %w", path, err)
	}

	cleanup := func() error {
		unmapErr := unix.Munmap(data)
		closeErr := f.Close()
		if unmapErr != nil {
			return unmapErr
		}
		return closeErr
	}
	return data, cleanup, nil
}
