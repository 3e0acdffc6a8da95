package testutils

// The following sub-dirs are relative to module root:
const (
	TESTDATA_SUBDIR        = "testdata"
	TESTDATA_PROCFS_SUBDIR = TESTDATA_SUBDIR + "/procfs"
	TESTDATA_CONFIG_SUBDIR = TESTDATA_SUBDIR + "/config"
)
