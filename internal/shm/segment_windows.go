//go:build windows

package shm

import "fmt"

// Windows has no POSIX shared-memory or MAP_SHARED equivalent reachable
// without cgo; spec.md's component table assumes a POSIX host (it names
// /dev/shm directly in §3.1's design notes), so Windows is left unsupported
// here rather than faked with a non-shared stand-in.
func Create(name string, size int) (*Segment, error) {
	return nil, fmt.Errorf("shm: unsupported on windows")
}

func Open(name string, size int) (*Segment, error) {
	return nil, fmt.Errorf("shm: unsupported on windows")
}

func Unlink(name string) error {
	return fmt.Errorf("shm: unsupported on windows")
}
