package charm

import (
	"flag"
	"io"
)

// parse walks the command tree from s, creating an instance at each
// level and parsing that level's flags, descending whenever the first
// remaining argument names a subcommand.  It returns the path of
// instances, the arguments left over for the final command, and
// whether hidden commands and flags should be shown in help output.
func parse(s *Spec, args []string, parent Command) (path, []string, bool, error) {
	showHidden := hasFlag(args, "-v")
	var p path
	spec := s
	cmd := parent
	for {
		inst, err := newInstance(cmd, spec)
		if err != nil {
			return nil, nil, showHidden, err
		}
		p = append(p, inst)
		rest, err := parseFlags(inst.flags, args)
		if err != nil {
			return p, nil, showHidden, err
		}
		if len(rest) > 0 {
			if rest[0] == Help.Name {
				return p, nil, showHidden, NeedHelp
			}
			if child := spec.lookupSub(rest[0]); child != nil {
				spec = child
				cmd = inst.command
				args = rest[1:]
				continue
			}
		}
		return p, rest, showHidden, nil
	}
}

// parseHelp rebuilds the instance path named by args, ignoring flags
// and the help keyword, so help can be displayed for any point in the
// tree.
func parseHelp(s *Spec, args []string) (path, error) {
	inst, err := newInstance(nil, s)
	if err != nil {
		return nil, err
	}
	p := path{inst}
	for _, arg := range args {
		if len(arg) > 0 && arg[0] == '-' || arg == Help.Name {
			continue
		}
		child := p.last().spec.lookupSub(arg)
		if child == nil {
			break
		}
		inst, err := newInstance(p.last().command, child)
		if err != nil {
			return nil, err
		}
		p = append(p, inst)
	}
	return p, nil
}

func parseFlags(flags *flag.FlagSet, args []string) ([]string, error) {
	flags.SetOutput(io.Discard)
	flags.Usage = func() {}
	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, NeedHelp
		}
		return nil, err
	}
	return flags.Args(), nil
}

func displayHelp(p path, showHidden bool) {
	c := &HelpCommand{vflag: showHidden}
	c.help(p)
}

func hasFlag(args []string, name string) bool {
	for _, arg := range args {
		if arg == name {
			return true
		}
	}
	return false
}
