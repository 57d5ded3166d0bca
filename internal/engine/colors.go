package engine

import "github.com/cybertron10/fuzzwalk/internal/config"

const (
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiRed    = "\x1b[31m"
	ansiDim    = "\x1b[2m"
	ansiReset  = "\x1b[0m"
)

func colorize(code, s string, o *config.Options) string {
	if o.NoColor {
		return s
	}
	return code + s + ansiReset
}

func successMark(o *config.Options) string { return colorize(ansiGreen, "[+]", o) }
func warningMark(o *config.Options) string { return colorize(ansiYellow, "[~]", o) }
func errorMark(o *config.Options) string   { return colorize(ansiRed, "[-]", o) }
func dim(s string, o *config.Options) string { return colorize(ansiDim, s, o) }
