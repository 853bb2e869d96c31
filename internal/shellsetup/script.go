package shellsetup

import "strings"

// Dialect selects quoting and command syntax for emitted scripts.
type Dialect int

const (
	DialectPOSIX Dialect = iota
	DialectFish
	DialectPwsh
)

// DialectFor maps a canonical shell name to its dialect. Unknown shells
// get POSIX syntax.
func DialectFor(shell string) Dialect {
	switch canonicalShellName(normalizeShellName(shell)) {
	case "fish":
		return DialectFish
	case "pwsh":
		return DialectPwsh
	default:
		return DialectPOSIX
	}
}

// Quote wraps s in single quotes for the dialect.
func Quote(d Dialect, s string) string {
	switch d {
	case DialectFish:
		r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
		return "'" + r.Replace(s) + "'"
	case DialectPwsh:
		return "'" + strings.ReplaceAll(s, "'", "''") + "'"
	default:
		return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
	}
}

// CdScript changes into dir.
func CdScript(d Dialect, dir string) string {
	if d == DialectPwsh {
		return "Set-Location -LiteralPath " + Quote(d, dir)
	}
	return "cd " + Quote(d, dir)
}

// CloneScript clones uri into dir and changes into it when the clone
// succeeds.
func CloneScript(d Dialect, uri, dir string) string {
	clone := "git clone " + Quote(d, uri) + " " + Quote(d, dir)
	if d == DialectPwsh {
		return clone + "; if ($LASTEXITCODE -eq 0) { " + CdScript(d, dir) + " }"
	}
	return clone + " && " + CdScript(d, dir)
}
