// Logger for the plugin.
//
// Munin collects the plugin's stderr into its own log, therefore the default
// level is `warn', so that successful runs leave no trace.

package irqstats

import (
	"fmt"
	"os"
	"path"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	DEFAULT_LOG_LEVEL = logrus.WarnLevel
	// Extra field added for component sub loggers:
	LOGGER_COMPONENT_FIELD_NAME = "comp"
)

type LoggerConfig struct {
	UseJson bool   `yaml:"use_json"`
	Level   string `yaml:"level"`
}

func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{
		Level: DEFAULT_LOG_LEVEL.String(),
	}
}

var loggerUseJsonArg = NewBoolFlagCheckUsed(
	"log-json-format",
	"Enable log in JSON format",
)

var loggerLevelArg = NewStringFlagCheckUsed(
	"log-level",
	DEFAULT_LOG_LEVEL.String(),
	fmt.Sprintf(`
	Set log level, it should be one of the %s values.
	`, GetLogLevelNames()),
)

var logSourceRoot string

func init() {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return
	}
	if root := path.Dir(path.Dir(file)); root != "/" {
		logSourceRoot = root + "/"
	} else {
		logSourceRoot = root
	}
}

// Maintain a cache for caller PC -> file:line# to speed up the formatting:
type logFileCache struct {
	m         *sync.Mutex
	fileCache map[uintptr]string
}

// Return the function name and filename:line# info from the frame. The
// filename is relative to the source root dir and the function is omitted.
func (c *logFileCache) logCallerPrettyfier(f *runtime.Frame) (function string, file string) {
	c.m.Lock()
	defer c.m.Unlock()
	file, ok := c.fileCache[f.PC]
	if !ok {
		filename := ""
		if logSourceRoot != "" && strings.HasPrefix(f.File, logSourceRoot) {
			filename = f.File[len(logSourceRoot):]
		} else {
			_, filename = path.Split(f.File)
		}
		file = fmt.Sprintf("%s:%d", filename, f.Line)
		c.fileCache[f.PC] = file
	}
	return "", file
}

var logFunctionFileCache = &logFileCache{
	m:         &sync.Mutex{},
	fileCache: make(map[uintptr]string),
}

// The desired order is time, level, comp, file, func, other fields sorted
// alphabetically and msg. Use negative numbers for the fields preceding
// `other' to capitalize on the fact that any of the latter will return 0 at
// lookup.
var logFieldKeySortOrder = map[string]int{
	logrus.FieldKeyTime:         -5,
	logrus.FieldKeyLevel:        -4,
	LOGGER_COMPONENT_FIELD_NAME: -3,
	logrus.FieldKeyFile:         -2,
	logrus.FieldKeyFunc:         -1,
	logrus.FieldKeyMsg:          1,
}

func logSortFieldKeys(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		key_i, key_j := keys[i], keys[j]
		order_i, order_j := logFieldKeySortOrder[key_i], logFieldKeySortOrder[key_j]
		if order_i != 0 || order_j != 0 {
			return order_i < order_j
		}
		return key_i < key_j
	})
}

var LogTextFormatter = &logrus.TextFormatter{
	DisableColors:    true,
	FullTimestamp:    true,
	CallerPrettyfier: logFunctionFileCache.logCallerPrettyfier,
	DisableSorting:   false,
	SortingFunc:      logSortFieldKeys,
}

var LogJsonFormatter = &logrus.JSONFormatter{
	CallerPrettyfier: logFunctionFileCache.logCallerPrettyfier,
}

var Log = &logrus.Logger{
	ReportCaller: true,
	Out:          os.Stderr,
	Formatter:    LogTextFormatter,
	Hooks:        make(logrus.LevelHooks),
	Level:        DEFAULT_LOG_LEVEL,
}

func NewCompLogger(comp string) *logrus.Entry {
	return Log.WithField(LOGGER_COMPONENT_FIELD_NAME, comp)
}

func GetLogLevelNames() []string {
	levelNames := make([]string, len(logrus.AllLevels))
	for i, level := range logrus.AllLevels {
		levelNames[i] = level.String()
	}
	return levelNames
}

// Set the logger based on config overridden by command line args, if the latter
// were used:
func SetLogger(cfg *LoggerConfig) error {
	var levelName string
	if loggerLevelArg.Used {
		levelName = loggerLevelArg.Value
	} else if cfg != nil {
		levelName = cfg.Level
	}
	if levelName != "" {
		level, err := logrus.ParseLevel(levelName)
		if err != nil {
			return err
		}
		Log.SetLevel(level)
	}
	if loggerUseJsonArg.Used && loggerUseJsonArg.Value || !loggerUseJsonArg.Used && cfg != nil && cfg.UseJson {
		Log.SetFormatter(LogJsonFormatter)
	} else {
		Log.SetFormatter(LogTextFormatter)
	}
	return nil
}
