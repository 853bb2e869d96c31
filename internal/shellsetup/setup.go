package shellsetup

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"
)

type ParentShellFunc func() string

type Config struct {
	DetectParent ParentShellFunc
	// Executable is the binary the wrapper calls. Defaults to os.Executable.
	Executable string
	// Root, when set, is baked into the wrapper as --path.
	Root string
}

// Commands that print for the user rather than for eval.
var passthroughCommands = []string{"init", "list", "version", "help", "completion", "-h", "--help", "-v", "--version"}

// ResolveShell returns the canonical shell name for an explicit override,
// falling back to detection.
func ResolveShell(shellOverride string, parent ParentShellFunc) string {
	if parent == nil {
		parent = DetectParentShellName
	}
	shell := normalizeShellName(shellOverride)
	if shell == "" {
		shell = detectShell(parent)
	}
	return canonicalShellName(shell)
}

// WriteInit prints the `try` shell function for the given shell. The
// function evals the binary's stdout only when it exits successfully.
func WriteInit(w io.Writer, shellOverride string, cfg Config) error {
	shell := ResolveShell(shellOverride, cfg.DetectParent)
	dialect := DialectFor(shell)

	exe := cfg.Executable
	if exe == "" {
		var err error
		exe, err = os.Executable()
		if err != nil {
			exe = "try"
		}
	}

	flags := "--shell " + shell
	if cfg.Root != "" {
		flags += " --path " + Quote(dialect, cfg.Root)
	}
	quotedExe := Quote(dialect, exe)

	var err error
	switch dialect {
	case DialectFish:
		_, err = fmt.Fprintf(w, `function try
    switch "$argv[1]"
        case %s
            command %s $argv
            return
    end
    set -l out (command %s %s $argv | string collect)
    or return
    eval $out
end
`, strings.Join(passthroughCommands, " "), quotedExe, quotedExe, flags)
	case DialectPwsh:
		quoted := make([]string, len(passthroughCommands))
		for i, c := range passthroughCommands {
			quoted[i] = Quote(DialectPwsh, c)
		}
		_, err = fmt.Fprintf(w, `function try {
    $exe = %s
    if ($args.Count -gt 0 -and @(%s) -contains $args[0]) {
        & $exe @args
        return
    }
    $out = & $exe %s @args
    if ($LASTEXITCODE -eq 0 -and $out) {
        Invoke-Expression ($out -join "`+"`"+`n")
    }
}
`, quotedExe, strings.Join(quoted, ","), flags)
	default:
		_, err = fmt.Fprintf(w, `try() {
    case "$1" in
        %s)
            command %s "$@"
            return $?;;
    esac
    try_out=$(command %s %s "$@") || return $?
    [ -n "$try_out" ] && eval "$try_out"
}
`, strings.Join(passthroughCommands, "|"), quotedExe, quotedExe, flags)
	}
	return err
}

func detectShell(parent ParentShellFunc) string {
	return detectShellInternal(runtime.GOOS, os.Getenv, parent)
}

func detectShellInternal(goos string, getenv func(string) string, parent ParentShellFunc) string {
	if shell := canonicalShellName(normalizeShellName(getenv("SHELL"))); shell != "" {
		return shell
	}

	if parent != nil {
		if shell := canonicalShellName(normalizeShellName(parent())); shell != "" {
			return shell
		}
	}

	if strings.EqualFold(goos, "windows") {
		return "pwsh"
	}

	return "bash"
}

func canonicalShellName(name string) string {
	name = strings.TrimPrefix(name, "-") // login shells report "-zsh"
	switch name {
	case "powershell":
		return "pwsh"
	default:
		return name
	}
}

func normalizeShellName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	value = extractExecutable(value)
	if value == "" {
		return ""
	}

	value = strings.Trim(value, `"'`)
	value = strings.ReplaceAll(value, "\\", "/")
	base := path.Base(value)
	base = strings.ToLower(base)
	base = strings.TrimSuffix(base, ".exe")
	return strings.TrimSpace(base)
}

func extractExecutable(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	if strings.HasPrefix(value, "\"") {
		value = value[1:]
		if idx := strings.IndexRune(value, '"'); idx >= 0 {
			return value[:idx]
		}
		return value
	}

	if strings.HasPrefix(value, "'") {
		value = value[1:]
		if idx := strings.IndexRune(value, '\''); idx >= 0 {
			return value[:idx]
		}
		return value
	}

	if idx := strings.IndexAny(value, " \t"); idx >= 0 {
		return value[:idx]
	}

	return value
}
