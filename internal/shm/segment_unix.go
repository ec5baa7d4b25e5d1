//go:build unix

package shm

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Create makes a new named mapping of size bytes (HeaderSize + payload),
// truncating any stale mapping left by a prior crashed process, and zeroes
// the header so a fresh mutex/epoch pair starts unlocked at epoch 0.
func Create(name string, size int) (*Segment, error) {
	p := path(name)
	fd, err := unix.Open(p, unix.O_CREAT|unix.O_RDWR|unix.O_TRUNC, 0o666)
	if err != nil {
		return nil, fmt.Errorf("shm: open %s: %w", p, err)
	}
	if err := unix.Ftruncate(fd, int64(size)); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("shm: ftruncate %s: %w", p, err)
	}

	data, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("shm: mmap %s: %w", p, err)
	}

	seg := &Segment{
		data: data,
		name: name,
		closer: func() error {
			merr := unix.Munmap(data)
			cerr := unix.Close(fd)
			if merr != nil {
				return merr
			}
			return cerr
		},
	}
	return seg, nil
}

// Open attaches to an existing named mapping of size bytes, failing with a
// "resource unavailable" error if it does not exist (spec.md §7).
func Open(name string, size int) (*Segment, error) {
	p := path(name)
	fd, err := unix.Open(p, unix.O_RDWR, 0o666)
	if err != nil {
		return nil, fmt.Errorf("shm: unable to access %s: %w", p, err)
	}

	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("shm: stat %s: %w", p, err)
	}
	if err := validateSize(int(st.Size), size); err != nil {
		_ = unix.Close(fd)
		return nil, err
	}

	data, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("shm: mmap %s: %w", p, err)
	}

	seg := &Segment{
		data: data,
		name: name,
		closer: func() error {
			merr := unix.Munmap(data)
			cerr := unix.Close(fd)
			if merr != nil {
				return merr
			}
			return cerr
		},
	}
	return seg, nil
}

// Unlink removes the backing named mapping. Only the owning car process
// should call this, on clean SIGINT/SIGTERM shutdown.
func Unlink(name string) error {
	p := path(name)
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("shm: unlink %s: %w", p, err)
	}
	return nil
}
