package cli

import "github.com/fatih/color"

// Color definitions, the same small palette-per-role pattern as
// javiermolinar-sancho/internal/ui/term.go.
var (
	colorHeader = color.New(color.Bold)
	colorGood   = color.New(color.FgGreen)
	colorWarn   = color.New(color.FgYellow)
	colorMuted  = color.New(color.FgWhite, color.Faint)
)
