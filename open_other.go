//go:build !unix

package rpa

import (
	"io/fs"
	"os"
)

func openFileNoFollow(root *os.Root, name string) (*os.File, error) {
	info, err := root.Lstat(name)
	if err != nil {
		return nil, err
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		return nil, errSymlink
	}
	return root.Open(name)
}
