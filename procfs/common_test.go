// Definitions common to all tests:

package procfs

import (
	"path"

	"github.com/bgp59/linux-irqstats/testutils"
)

const (
	PATH_TO_ROOT = ".."
)

var TESTDATA_PROCFS_ROOT = path.Join(PATH_TO_ROOT, testutils.TESTDATA_PROCFS_SUBDIR)
