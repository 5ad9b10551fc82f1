//go:build unix

package arena

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func mapAnon(size int) ([]byte, func([]byte) error, error) {
	prot := unix.PROT_READ | unix.PROT_WRITE
	flags := unix.MAP_ANON | unix.MAP_PRIVATE

	data, err := unix.Mmap(-1, 0, size, prot, flags)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrMapFailed, err)
	}

	return data, unix.Munmap, nil
}
