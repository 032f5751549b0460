package log

import (
	"github.com/spanlog/spanlog-go/logs"
)

const (
	colorReset = "\033[0m"

	colorTrace = "\033[38m"
	colorDebug = "\033[37m"
	colorInfo  = "\033[36m"
	colorWarn  = "\033[33m"
	colorError = "\033[31m"
	colorFatal = "\033[41m"
	colorQuiet = colorReset

	colorTraceBold = "\033[47m"
	colorDebugBold = "\033[100m"
	colorInfoBold  = "\033[106m"
	colorWarnBold  = "\033[30m\033[103m"
	colorErrorBold = "\033[101m"
	colorFatalBold = "\033[101m"
	colorQuietBold = ""
)

func color(l logs.Level) string {
	switch l {
	case logs.TRACE:
		return colorTrace
	case logs.DEBUG:
		return colorDebug
	case logs.INFO:
		return colorInfo
	case logs.WARN:
		return colorWarn
	case logs.ERROR:
		return colorError
	case logs.FATAL:
		return colorFatal
	default:
		return colorQuiet
	}
}

func boldColor(l logs.Level) string {
	switch l {
	case logs.TRACE:
		return colorTraceBold
	case logs.DEBUG:
		return colorDebugBold
	case logs.INFO:
		return colorInfoBold
	case logs.WARN:
		return colorWarnBold
	case logs.ERROR:
		return colorErrorBold
	case logs.FATAL:
		return colorFatalBold
	default:
		return colorQuietBold
	}
}
