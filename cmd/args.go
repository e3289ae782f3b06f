package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// cargoSubcommand is the token cargo passes first when the binary runs as
// `cargo stabilize`.
const cargoSubcommand = "stabilize"

// splitArgs separates the tokens root understands from the ones it does
// not. A leading "stabilize" is dropped. When the first remaining token
// names a subcommand everything is passed through for cobra to parse.
//
// Parameters:
//   - root: Command whose flags and subcommands are recognized
//   - args: Raw arguments, without the program name
//
// Returns:
//   - known: Arguments to hand to cobra
//   - unknown: Tokens to report as unknown commands, in order
func splitArgs(root *cobra.Command, args []string) (known, unknown []string) {
	root.InitDefaultHelpFlag()
	if len(args) > 0 && args[0] == cargoSubcommand {
		args = args[1:]
	}
	if len(args) > 0 && isSubcommand(root, args[0]) {
		return args, nil
	}

	flags := root.Flags()
	flags.AddFlagSet(root.PersistentFlags())
	for i := 0; i < len(args); i++ {
		tok := args[i]
		if tok == "--" {
			unknown = append(unknown, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(tok, "-") || tok == "-" {
			unknown = append(unknown, tok)
			continue
		}

		flag, inline := lookupFlag(flags, tok)
		if flag == nil {
			unknown = append(unknown, tok)
			continue
		}
		known = append(known, tok)
		if !inline && takesValue(flag) && i+1 < len(args) {
			i++
			known = append(known, args[i])
		}
	}
	return known, unknown
}

// lookupFlag resolves --name, --name=value, -x and -xvalue. inline reports
// whether the value is part of tok.
func lookupFlag(flags *pflag.FlagSet, tok string) (flag *pflag.Flag, inline bool) {
	if name, ok := strings.CutPrefix(tok, "--"); ok {
		name, _, inline = strings.Cut(name, "=")
		return flags.Lookup(name), inline
	}

	short := strings.TrimPrefix(tok, "-")
	if short == "" {
		return nil, false
	}
	flag = flags.ShorthandLookup(short[:1])
	return flag, len(short) > 1
}

// takesValue reports whether flag consumes the next token. Boolean flags
// have a NoOptDefVal and never do.
func takesValue(flag *pflag.Flag) bool {
	return flag.NoOptDefVal == ""
}

func isSubcommand(root *cobra.Command, name string) bool {
	for _, c := range root.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return name == "help"
}
