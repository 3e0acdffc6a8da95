// Misc OS related info for non UNIX systems

//go:build !unix

package utils

import (
	"os"
	"runtime"
)

func MachineArch() string {
	return runtime.GOARCH
}

func OnlineCpuCount() (int, error) {
	return runtime.NumCPU(), nil
}

func CheckReadable(filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	return f.Close()
}
