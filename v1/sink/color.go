package sink

import "github.com/Aleph-Alpha/logsink/v1/severity"

const colorReset = "\033[39m"

// levelColors follows the npm level palette.
var levelColors = map[severity.Level]string{
	severity.Error:   "\033[31m", // red
	severity.Warn:    "\033[33m", // yellow
	severity.Info:    "\033[32m", // green
	severity.HTTP:    "\033[32m", // green
	severity.Verbose: "\033[36m", // cyan
	severity.Debug:   "\033[34m", // blue
	severity.Silly:   "\033[35m", // magenta
}

func colorize(level severity.Level, s string) string {
	prefix, ok := levelColors[level]
	if !ok {
		return s
	}
	return prefix + s + colorReset
}
