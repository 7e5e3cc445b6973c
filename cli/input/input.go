/*
Package input reads secrets from the terminal.
*/
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Terminal is a reader used instead of stdin if set, it's used in tests.
var Terminal io.Reader

// ReadPassword reads a secret with prompt. Echo is turned off when stdin is
// a terminal.
func ReadPassword(w io.Writer, prompt string) (string, error) {
	fmt.Fprint(w, prompt)
	if Terminal != nil {
		return readLine(Terminal)
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return readLine(os.Stdin)
	}
	rawPass, err := term.ReadPassword(fd)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Fprintln(w)
	return strings.TrimRight(string(rawPass), "\r\n"), nil
}

func readLine(r io.Reader) (string, error) {
	raw, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && (err != io.EOF || raw == "") {
		return "", err
	}
	return strings.TrimRight(raw, "\r\n"), nil
}
