// Package flagx lets several independent flag sets share one command line.
// Each consumer filters os.Args down to the flags it owns before parsing, so
// unknown flags from other consumers never abort its parse.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs returns the subset of args that belongs to the given flags.
//
// valueFlags take a value, either inline (-a=x, --a=x) or as the following
// argument (-a x). boolFlags never consume the following argument; they may
// still carry an inline value (-p=false). Flag names are given with a single
// dash; the double-dash spelling of each name is accepted too, as the flag
// package does.
//
// The returned slice is never nil.
func FilterArgs(args []string, valueFlags, boolFlags []string) []string {
	takesValue := make(map[string]bool, len(valueFlags)+len(boolFlags))
	for _, f := range valueFlags {
		takesValue[canonical(f)] = true
	}
	for _, f := range boolFlags {
		takesValue[canonical(f)] = false
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, inline := strings.Cut(arg, "=")
		wantsValue, known := takesValue[canonical(name)]
		if !known {
			continue
		}

		filtered = append(filtered, arg)
		if inline || !wantsValue {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigFilePath extracts the JSON config file path given via -c or -config.
// Other arguments are ignored. It returns "" when neither flag is present.
func ConfigFilePath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}, nil))

	return path
}

func canonical(name string) string {
	return "-" + strings.TrimLeft(name, "-")
}
