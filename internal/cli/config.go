package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	cgerrors "github.com/matzehuels/classgraph/pkg/errors"
	"github.com/matzehuels/classgraph/pkg/options"
)

// config is the classgraph.toml file:
//
//	sources = ["src/main/java"]
//	output_dir = "build/uml"
//	formats = ["svg", "png"]
//	dot_executable = "dot"
//
//	[options]
//	attributes = true
//	visibility = true
//	hide = ["java\\..*", "javax\\..*"]
//	nodefontsize = 9
//	linkoffline = [["https://docs.oracle.com/javase/8/docs/api/", "lists/jdk"]]
//
// Each key of [options] is an option name. true sets a flag and false
// negates it; a string or number is the single argument; an array of
// values repeats the option once per value; an array of arrays passes
// each inner array as the argument list.
type config struct {
	Sources       []string       `toml:"sources"`
	Model         string         `toml:"model"`
	OutputDir     string         `toml:"output_dir"`
	Formats       []string       `toml:"formats"`
	DotExecutable string         `toml:"dot_executable"`
	NoCache       bool           `toml:"no_cache"`
	Options       map[string]any `toml:"options"`

	// tokens are the option lists in file order.
	tokens [][]string
}

// loadConfig reads the config file at path. A missing file yields an empty
// config unless the path was given explicitly.
func loadConfig(path string, explicit bool) (*config, error) {
	cfg := &config{}
	if path == "" {
		path = defaultConfigFile
	}
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return nil, cgerrors.Wrap(cgerrors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return nil, cgerrors.Wrap(cgerrors.ErrCodeConfiguration, err, "%s: failed to parse TOML", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, cgerrors.New(cgerrors.ErrCodeConfiguration, "%s: unknown key %q", path, undecoded[0].String())
	}
	for _, key := range meta.Keys() {
		if len(key) != 2 || key[0] != "options" {
			continue
		}
		lists, err := optionTokens(key[1], cfg.Options[key[1]])
		if err != nil {
			return nil, cgerrors.Wrap(cgerrors.ErrCodeConfiguration, err, "%s: options.%s", path, key[1])
		}
		cfg.tokens = append(cfg.tokens, lists...)
	}
	return cfg, nil
}

// optionTokens converts one [options] entry into option token lists.
func optionTokens(name string, v any) ([][]string, error) {
	opt := "-" + name
	switch v := v.(type) {
	case bool:
		if v {
			return [][]string{{opt}}, nil
		}
		return [][]string{{"-!" + name}}, nil
	case []any:
		var out [][]string
		for _, item := range v {
			if inner, ok := item.([]any); ok {
				args, err := scalars(inner)
				if err != nil {
					return nil, err
				}
				out = append(out, append([]string{opt}, args...))
				continue
			}
			arg, err := scalar(item)
			if err != nil {
				return nil, err
			}
			out = append(out, []string{opt, arg})
		}
		return out, nil
	default:
		arg, err := scalar(v)
		if err != nil {
			return nil, err
		}
		return [][]string{{opt, arg}}, nil
	}
}

func scalars(vs []any) ([]string, error) {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		s, err := scalar(v)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func scalar(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return options.FormatNumber(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	}
	return "", fmt.Errorf("unsupported value %v (%T)", v, v)
}
