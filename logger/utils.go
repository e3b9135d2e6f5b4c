package logger

// Formatting helpers for values this package's callers log often:
// entry counts and report intervals.
import (
	"strconv"
	"time"
)

// SiMultiple renders n using the largest unit no bigger than maxUnit
// that keeps it >= 1, e.g. SiMultiple(12345, 1000, 'G') -> "12K". Used
// to keep an index's entry count readable in a log line instead of a
// long run of digits. multipleOf is usually 1000; pass 1024 for
// binary units instead.
func SiMultiple(n, multipleOf uint64, maxUnit byte) string {
	units := " KMGTPEZY"
	var step uint64
	var remainder uint64
	for n >= multipleOf && units[step] != maxUnit {
		remainder = n % multipleOf
		n /= multipleOf
		step++
	}
	if remainder*2 >= multipleOf {
		n++
	}
	rendered := strconv.FormatUint(n, 10)
	if step > 0 {
		rendered += string(units[step])
	}
	return rendered
}

// RoundDuration truncates d to a multiple of to, so a report line
// reads "every 2h59m58s" instead of "every 2h59m58.71s".
func RoundDuration(d, to time.Duration) string {
	return (d - d%to).String()
}
