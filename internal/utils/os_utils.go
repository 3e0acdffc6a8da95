// Misc OS related info

//go:build unix

package utils

import (
	"bytes"
	"runtime"

	"github.com/tklauser/go-sysconf"

	"golang.org/x/sys/unix"
)

func zeroSuffixBufToString(buf []byte) string {
	i := bytes.IndexByte(buf, 0)
	if i < 0 {
		i = len(buf)
	}
	return string(buf[:i])
}

// The kernel machine name, e.g. x86_64, armv7l, sparc64, falling back to
// GOARCH if uname is not available:
func MachineArch() string {
	uname := unix.Utsname{}
	if err := unix.Uname(&uname); err == nil {
		if machine := zeroSuffixBufToString(uname.Machine[:]); machine != "" {
			return machine
		}
	}
	return runtime.GOARCH
}

func OnlineCpuCount() (int, error) {
	numCpus, err := sysconf.Sysconf(sysconf.SC_NPROCESSORS_ONLN)
	if err != nil {
		return 0, err
	}
	return int(numCpus), nil
}

// Check that the file is readable by the current process, access(2) style:
func CheckReadable(filePath string) error {
	return unix.Access(filePath, unix.R_OK)
}
