package action

import (
	"os/exec"

	"github.com/rs/zerolog"
)

// launchLog reports spawn failures. The composition root installs the
// process logger via SetLogger; the default drops everything.
var launchLog = zerolog.Nop()

// SetLogger routes launch failures to the process logger.
func SetLogger(log zerolog.Logger) {
	launchLog = log
}

// LaunchApp starts an application by name or command. Replaceable for
// tests.
var LaunchApp = func(app string) {
	spawn(exec.Command(app), "launch app", app)
}

// OpenFile opens a file or directory with the desktop's default
// handler. Replaceable for tests.
var OpenFile = func(path string) {
	spawn(exec.Command("xdg-open", path), "open file", path)
}

// spawn starts the command and reaps it in the background, so a
// launched process never lingers as a zombie while the overlay runs.
func spawn(cmd *exec.Cmd, what, target string) {
	if err := cmd.Start(); err != nil {
		launchLog.Error().Err(err).Str("target", target).Msg(what + " failed")
		return
	}
	go func() { _ = cmd.Wait() }()
}
