//go:build !linux && !windows

package shm

import "os"

// path returns an equivalent named mapping for hosts without /dev/shm
// (e.g. Darwin), per spec.md §6.2's "equivalent named mapping SHOULD be
// used" allowance. It is still a real file-backed MAP_SHARED region, just
// rooted under the OS temp directory instead of tmpfs.
func path(name string) string {
	return os.TempDir() + "/" + name
}
