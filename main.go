package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"mini8/pkg/asm"
	"mini8/pkg/disasm"
	"mini8/pkg/hexfile"
)

// usageError marks a failure caused by how the command was invoked rather
// than by the files it was given.
type usageError struct {
	error
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

type options struct {
	listing bool
	symbols bool
	strict  bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "mini8asm input.asm output.hex",
		Short: "Assemble mini8 source into an instruction memory image",
		Long: `mini8asm assembles a mini8 source file and writes one 16-bit word per
line, as four uppercase hex digits, ready for $readmemh.

Operand values wider than 8 bits are masked and reported as warnings.
Any other problem stops assembly, names the offending line and leaves the
output file untouched.`,
		Args:          exactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return assembleFile(cmd.OutOrStdout(), args[0], args[1], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.listing, "listing", false, "print an address and word listing of the program")
	cmd.Flags().BoolVar(&opts.symbols, "symbols", false, "print the label table")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "treat truncated operand values as errors")

	// glog's flags (-v, -logtostderr, ...)
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	cmd.AddCommand(newDisasmCmd())

	return cmd
}

func newDisasmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm image.hex",
		Short: "Print the instructions held in an instruction memory image",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := hexfile.ReadFile(args[0])
			if err != nil {
				return err
			}
			glog.V(1).Infof("%s: %d words", args[0], len(words))
			return disasm.Write(cmd.OutOrStdout(), disasm.Disassemble(words))
		},
	}
}

func assembleFile(out io.Writer, inPath, outPath string, opts options) error {
	source, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("failed to read input file %q: %w", inPath, err)
	}

	program, err := asm.Assemble(string(source))
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}

	for _, w := range program.Warnings {
		glog.Warningf("%s: %s", inPath, w)
	}
	if opts.strict && len(program.Warnings) > 0 {
		return fmt.Errorf("%s: %w", inPath, program.Warnings[0].Err())
	}

	glog.V(1).Infof("%s: %d labels, %d words", inPath, program.Labels.Len(), len(program.Words))

	if opts.symbols {
		printer := pp.New()
		printer.SetColoringEnabled(false)
		if _, err := printer.Fprintln(out, program.Labels.Symbols()); err != nil {
			return err
		}
	}

	if opts.listing {
		if err := program.WriteListing(out); err != nil {
			return err
		}
	}

	if err := hexfile.WriteFile(outPath, program.Words); err != nil {
		return fmt.Errorf("failed to write output file %q: %w", outPath, err)
	}

	fmt.Fprintf(out, "Wrote %d words to %s\n", len(program.Words), outPath)
	return nil
}

func main() {
	// glog logs to files unless told otherwise
	_ = flag.Set("logtostderr", "true")

	cmd, err := newRootCmd().ExecuteC()
	glog.Flush()

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)

		var usage usageError
		if errors.As(err, &usage) {
			fmt.Fprint(os.Stderr, cmd.UsageString())
			os.Exit(2)
		}
		os.Exit(1)
	}
}
