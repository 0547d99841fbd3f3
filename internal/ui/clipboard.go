package ui

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
)

// writeClipboard uses the primary clipboard API.
func writeClipboard(text string) error {
	return clipboard.WriteAll(text)
}

// fallbackCommands are tried in order when the primary API is unsupported
// on the current platform.
var fallbackCommands = [][]string{
	{"pbcopy"},
	{"wl-copy"},
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
}

// writeClipboardFallback pipes the text through the first available
// platform copy command.
func writeClipboardFallback(text string) error {
	for _, argv := range fallbackCommands {
		if _, err := exec.LookPath(argv[0]); err != nil {
			continue
		}
		cmd := exec.Command(argv[0], argv[1:]...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}
	return errors.New("no clipboard mechanism available")
}
