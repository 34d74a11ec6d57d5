// Package flagx lets several configuration loaders share one command line:
// each loader picks out only the flags it owns before parsing.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs keeps the allowed flags from args, together with their values.
//
// Both "-f value" and "-f=value" forms are recognised. A token following an
// allowed flag is taken as its value unless it starts with "-". The result is
// never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]bool, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = true
	}

	kept := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		if name, _, found := strings.Cut(arg, "="); found {
			if allowed[name] {
				kept = append(kept, arg)
			}
			continue
		}

		if !allowed[arg] {
			continue
		}
		kept = append(kept, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			kept = append(kept, args[i])
		}
	}
	return kept
}

// LookupString returns the value of a string flag known under any of names
// ("-c", "-config"), or "" if none is present. The last occurrence wins.
func LookupString(args []string, names ...string) string {
	var value string

	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, name := range names {
		fs.StringVar(&value, strings.TrimLeft(name, "-"), "", "")
	}
	_ = fs.Parse(FilterArgs(args, names))

	return value
}

// ConfigFileFlag returns the JSON config path passed as -c or -config.
func ConfigFileFlag(args []string) string {
	return LookupString(args, "-c", "-config")
}

// EnvFileFlag returns the dotenv path passed as -env.
func EnvFileFlag(args []string) string {
	return LookupString(args, "-env")
}
