// Definitions common to all benchmarks:

package benchmarks

import (
	"bufio"
	"bytes"
	"os"
	"path"
	"testing"
)

const (
	// prometheus/procfs reads PROC_ROOT/PID/..., so the file is under PID 0:
	BENCH_TESTDATA_PROM_PROCFS_ROOT = "../testdata/procfs/benchmarks"
)

var BENCH_TESTDATA_PROCFS_ROOT = path.Join(BENCH_TESTDATA_PROM_PROCFS_ROOT, "0")

const (
	BENCH_FILE_READ = iota
	BENCH_FILE_READ_SCAN_BYTES
	BENCH_FILE_READ_SCAN_TEXT
	BENCH_FILE_SCAN_BYTES
	BENCH_FILE_SCAN_TEXT
)

var benchFileReadOpMap = map[int]string{
	BENCH_FILE_READ:            "BENCH_FILE_READ",
	BENCH_FILE_READ_SCAN_BYTES: "BENCH_FILE_READ_SCAN_BYTES",
	BENCH_FILE_READ_SCAN_TEXT:  "BENCH_FILE_READ_SCAN_TEXT",
	BENCH_FILE_SCAN_BYTES:      "BENCH_FILE_SCAN_BYTES",
	BENCH_FILE_SCAN_TEXT:       "BENCH_FILE_SCAN_TEXT",
}

func benchScan(scanner *bufio.Scanner, op int, b *testing.B) {
	for scanner.Scan() {
		if op == BENCH_FILE_READ_SCAN_BYTES || op == BENCH_FILE_SCAN_BYTES {
			_ = scanner.Bytes()
		} else {
			_ = scanner.Text()
		}
	}
	if err := scanner.Err(); err != nil {
		b.Fatal(err)
	}
}

func benchmarkFileRead(path string, op int, b *testing.B) {
	buf := &bytes.Buffer{}
	for n := 0; n < b.N; n++ {
		f, err := os.Open(path)
		if err != nil {
			b.Fatal(err)
		}
		switch op {
		case BENCH_FILE_READ, BENCH_FILE_READ_SCAN_BYTES, BENCH_FILE_READ_SCAN_TEXT:
			buf.Reset()
			if _, err = buf.ReadFrom(f); err != nil {
				b.Fatal(err)
			}
			if op != BENCH_FILE_READ {
				benchScan(bufio.NewScanner(buf), op, b)
			}
		case BENCH_FILE_SCAN_BYTES, BENCH_FILE_SCAN_TEXT:
			benchScan(bufio.NewScanner(f), op, b)
		}
		f.Close()
	}
}
