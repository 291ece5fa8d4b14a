package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"napcon/internal/naming"
)

// confirmNamingConvention asks the operator to confirm that the exports follow
// the filename convention. Any answer other than y stops the run.
func confirmNamingConvention(in io.Reader, out io.Writer) (bool, error) {
	fmt.Fprintf(out, "Files should be named as: %s\n", naming.Convention)
	fmt.Fprint(out, "Do your files follow this format (y/n)? ")

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	if errors.Is(err, io.EOF) && answer == "" {
		fmt.Fprintln(out)
		if !isTerminal(in) {
			return false, errors.New("no confirmation on stdin; pass --yes to skip the prompt")
		}
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y":
		return true, nil
	case "n":
		fmt.Fprintln(out, "Please ensure that your files follow the naming convention required.")
	default:
		fmt.Fprintln(out, "Please type 'y' or 'n'.")
	}
	return false, nil
}
