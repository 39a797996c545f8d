//go:build unix

package rpa

import (
	"errors"
	"os"
	"syscall"
)

func openFileNoFollow(root *os.Root, name string) (*os.File, error) {
	f, err := root.OpenFile(name, os.O_RDONLY|syscall.O_NOFOLLOW, 0)
	if err != nil {
		if errors.Is(err, syscall.ELOOP) {
			return nil, errSymlink
		}
		return nil, err
	}
	return f, nil
}
