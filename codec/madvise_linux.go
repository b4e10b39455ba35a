//go:build linux

package codec

import "golang.org/x/sys/unix"

// madviseRandom hints to the kernel that the mapping will be accessed at
// hash-determined offsets, suppressing readahead.
// Best-effort: errors are silently ignored.
func madviseRandom(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = unix.Madvise(data, unix.MADV_RANDOM)
}
