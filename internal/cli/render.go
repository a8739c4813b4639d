package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdhtml/internal/logging"
	"github.com/yaklabco/mdhtml/pkg/fsutil"
	"github.com/yaklabco/mdhtml/pkg/translate"
)

// ErrInput marks failures to read an input stream or file.
var ErrInput = errors.New("input error")

type renderFlags struct {
	output string
}

// runRender reads the named files (or standard input), translates each
// in argument order, and writes the concatenated HTML to stdout or,
// with --output, atomically to a file.
func runRender(cmd *cobra.Command, args []string, flags *renderFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	if len(args) == 0 {
		args = []string{"-"}
	}

	var out strings.Builder
	for _, arg := range args {
		input, err := readInput(cmd, arg)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInput, arg, err)
		}
		html := translate.ToHTML(input)
		logger.Debug("translated",
			logging.FieldInput, arg,
			logging.FieldBytesIn, len(input),
			logging.FieldBytesOut, len(html),
		)
		out.WriteString(html)
	}

	if flags.output != "" {
		if err := fsutil.WriteAtomic(ctx, flags.output, []byte(out.String()), 0); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		logger.Debug("wrote output", logging.FieldOutput, flags.output)
		return nil
	}

	if _, err := io.WriteString(cmd.OutOrStdout(), out.String()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// readInput slurps one input source; "-" means standard input.
func readInput(cmd *cobra.Command, arg string) (string, error) {
	if arg == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(data), nil
}
