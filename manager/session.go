package manager

import (
	"errors"

	"github.com/dot5enko/miniql/command"
	"github.com/fatih/color"
)

const (
	ExitOK            = 0
	ExitFatal         = 1
	ExitCommandSyntax = 2
)

// Run is one program invocation: load, optionally execute a command, write
// the output file. It returns the process exit status.
func (m *Manager) Run(path string, input string, hasCommand bool) int {

	errOut := color.New(color.FgRed)
	warnOut := color.New(color.FgYellow)
	okOut := color.New(color.FgGreen)

	if err := m.Open(path); err != nil {
		errOut.Fprintf(m.config.LogWriter, "unable to load %s: %s\n", path, err.Error())
		return ExitFatal
	}

	status := ExitOK

	if !hasCommand {
		if err := m.Describe(); err != nil {
			errOut.Fprintf(m.config.LogWriter, "unable to print table: %s\n", err.Error())
			return ExitFatal
		}
	} else if err := m.Execute(input); err != nil {
		if !errors.Is(err, command.ErrCommandSyntax) {
			errOut.Fprintf(m.config.LogWriter, "command failed: %s\n", err.Error())
			return ExitFatal
		}

		// table is untouched, the dump below still reflects it
		warnOut.Fprintf(m.config.LogWriter, "%s\n", err.Error())
		status = ExitCommandSyntax
	}

	if err := m.Persist(); err != nil {
		errOut.Fprintf(m.config.LogWriter, "%s\n", err.Error())
		return ExitFatal
	}

	okOut.Fprintf(m.config.LogWriter, "written %s (%d rows)\n", m.config.OutputPath, m.table.RowCount())

	return status
}
