//go:build linux

package shm

// path returns the POSIX shared-memory rendezvous path for name, matching
// the original implementation's shm_open("/car<name>", ...) convention: on
// Linux, POSIX shared memory is backed by tmpfs mounted at /dev/shm.
func path(name string) string {
	return "/dev/shm/" + name
}
