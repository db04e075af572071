// Package shell renders the integration scripts that let `wtw cd` change
// the directory of the calling shell.
package shell

import (
	"sort"
	"strings"

	"wtw/internal/apperror"
)

// Marker is the first line of every script; profiles that already contain
// it have been set up.
const Marker = "# wtw shell integration"

const posixScript = Marker + `
wtw() {
  if [ "$1" = "cd" ]; then
    local _wtw_dest _wtw_rc
    _wtw_dest="$(WTP_SHELL_INTEGRATION=1 command wtw "$@")"
    _wtw_rc=$?
    if [ $_wtw_rc -eq 0 ] && [ -n "$_wtw_dest" ]; then
      cd "$_wtw_dest" || return
    fi
    return $_wtw_rc
  fi
  WTP_SHELL_INTEGRATION=1 command wtw "$@"
}
`

const pwshScript = Marker + `
function Get-WtwExePath {
    $cmd = Get-Command wtw -CommandType Application -ErrorAction SilentlyContinue | Select-Object -First 1
    if ($cmd) {
        return $cmd.Source
    }
    throw 'wtw executable not found on PATH.'
}

function wtw {
    $exe = Get-WtwExePath
    $env:WTP_SHELL_INTEGRATION = '1'
    try {
        $output = & $exe @args
        $exitCode = $LASTEXITCODE
    } finally {
        Remove-Item Env:WTP_SHELL_INTEGRATION -ErrorAction SilentlyContinue
    }

    if ($exitCode -eq 0 -and $args.Count -gt 0 -and $args[0] -eq 'cd') {
        $destination = ($output | Select-Object -Last 1)
        if ($destination) {
            Set-Location $destination.Trim()
        }
    } elseif ($output) {
        $output
    }

    $global:LASTEXITCODE = $exitCode
}

Register-ArgumentCompleter -Native -CommandName wtw -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $commands = @('add', 'cd', 'init', 'list', 'prune', 'remove', 'shell-init', 'version')
    $elements = @($commandAst.CommandElements | ForEach-Object { $_.Extent.Text })

    if ($elements.Count -lt 2 -or ($elements.Count -eq 2 -and $wordToComplete)) {
        $commands | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
        return
    }

    if ($elements[1] -in @('cd', 'remove')) {
        $json = & (Get-WtwExePath) list --json 2>$null
        if ($LASTEXITCODE -ne 0) {
            return
        }
        foreach ($item in ($json | ConvertFrom-Json)) {
            $name = $item.name
            if (-not $name) { continue }
            # "@" is a splatting token in PowerShell and has to be quoted.
            if ($name -eq '@') { $name = "'@'" }
            if ($name -like "$wordToComplete*") {
                [System.Management.Automation.CompletionResult]::new($name, $name, 'ParameterValue', $name)
            }
        }
    }
}
`

var scripts = map[string]string{
	"bash": posixScript,
	"zsh":  posixScript,
	"pwsh": pwshScript,
}

var aliases = map[string]string{
	"powershell": "pwsh",
}

// Supported lists the shell names accepted by Script.
func Supported() []string {
	names := make([]string, 0, len(scripts))
	for name := range scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Script returns the integration script for the named shell.
func Script(name string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	script, ok := scripts[key]
	if !ok {
		return "", apperror.Userf("unsupported shell: %s (supported: %s)", name, strings.Join(Supported(), ", "))
	}
	return script, nil
}
