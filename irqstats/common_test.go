// Definitions common to all tests:

package irqstats

import (
	"path"

	"github.com/bgp59/linux-irqstats/testutils"
)

const (
	PATH_TO_ROOT = ".."
)

var (
	TESTDATA_PROCFS_ROOT = path.Join(PATH_TO_ROOT, testutils.TESTDATA_PROCFS_SUBDIR)
	TESTDATA_CONFIG_DIR  = path.Join(PATH_TO_ROOT, testutils.TESTDATA_CONFIG_SUBDIR)

	interruptsTestdataDir = path.Join(TESTDATA_PROCFS_ROOT, "interrupts")
)
