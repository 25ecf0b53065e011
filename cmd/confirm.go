package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// confirmDestructiveAction prompts for confirmation unless autoConfirm is set.
func confirmDestructiveAction(in io.Reader, out io.Writer, autoConfirm bool) bool {
	if autoConfirm {
		fmt.Fprintln(out, "\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Fprint(out, "\n⚠️  Type 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}

// sample returns at most n entries of list and the count left out.
func sample(list []string, n int) ([]string, int) {
	if len(list) <= n {
		return list, 0
	}
	return list[:n], len(list) - n
}
