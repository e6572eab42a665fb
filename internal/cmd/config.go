package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/Alia5/matrixfw/internal/configpaths"
	"github.com/Alia5/matrixfw/sim"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// ErrDestinationExists is returned by config init when it would overwrite
// a file without --force.
var ErrDestinationExists = errors.New("destination exists; use --force to overwrite")

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init   ConfigInit   `cmd:"" help:"Generate a configuration template"`
	Schema ConfigSchema `cmd:"" help:"Print the JSON schema of scenario files"`
}

// ConfigSchema writes the scenario JSON schema for editor validation.
type ConfigSchema struct {
	Output string `help:"Destination file path (defaults to stdout)"`

	Out io.Writer `kong:"-"`
}

func (c *ConfigSchema) Run() error {
	data, err := sim.Schema()
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if c.Output != "" {
		if err := configpaths.EnsureDir(c.Output); err != nil {
			return err
		}
		return os.WriteFile(c.Output, data, 0o644)
	}
	out := c.Out
	if out == nil {
		out = os.Stdout
	}
	_, err = out.Write(data)
	return err
}

// ConfigInit scaffolds a configuration file holding the defaults of every
// configurable flag.
type ConfigInit struct {
	Command string `arg:"" optional:"" name:"command" help:"Which flags to include" enum:"run,all" default:"all"`
	Format  string `help:"Output format" enum:"json,yaml,yml,toml" default:"yaml"`
	Output  string `help:"Destination file path (defaults to matrixfw.<format> in the current directory)"`
	Force   bool   `help:"Overwrite if the file already exists"`
}

// Run writes the template. Keys follow the lookup rules of the kong
// configuration loaders: prefixes become nested tables and dashes become
// underscores.
func (c *ConfigInit) Run() error {
	format := normalizeFormat(c.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}

	root, err := c.template()
	if err != nil {
		return err
	}

	dest := c.Output
	if dest == "" {
		dest = "matrixfw." + format
	}
	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return ErrDestinationExists
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}

	data, err := encodeTemplate(root, format)
	if err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}

func (c *ConfigInit) template() (map[string]any, error) {
	switch c.Command {
	case "run":
		return buildMapFromStruct(reflect.TypeOf(Run{})), nil
	case "all", "":
		root := buildMapFromStruct(reflect.TypeOf(CLI{}))
		for k, v := range buildMapFromStruct(reflect.TypeOf(Run{})) {
			root[k] = v
		}
		return root, nil
	default:
		return nil, fmt.Errorf("unknown command %q; expected 'run' or 'all'", c.Command)
	}
}

func encodeTemplate(root map[string]any, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(root, "", "  ")
	case "yaml":
		return yaml.Marshal(root)
	case "toml":
		return toml.Marshal(root)
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

func normalizeFormat(f string) string {
	switch strings.ToLower(f) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return ""
	}
}

// configKey turns a Go field name into the key kong looks up: the flag
// name with dashes replaced by underscores.
func configKey(f reflect.StructField) string {
	if n := f.Tag.Get("name"); n != "" {
		return strings.ReplaceAll(n, "-", "_")
	}
	var b strings.Builder
	r := []rune(f.Name)
	for i, c := range r {
		if unicode.IsUpper(c) {
			if i > 0 && (unicode.IsLower(r[i-1]) || (i+1 < len(r) && unicode.IsLower(r[i+1]))) {
				b.WriteByte('_')
			}
			c = unicode.ToLower(c)
		}
		b.WriteRune(c)
	}
	return b.String()
}

func buildMapFromStruct(t reflect.Type) map[string]any {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := map[string]any{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("kong") == "-" {
			continue
		}
		// Positional arguments and subcommands are not configurable.
		if _, ok := f.Tag.Lookup("arg"); ok {
			continue
		}
		if _, ok := f.Tag.Lookup("cmd"); ok {
			continue
		}

		if _, ok := f.Tag.Lookup("embed"); ok {
			name := strings.TrimSuffix(f.Tag.Get("prefix"), ".")
			sub := buildMapFromStruct(f.Type)
			if name != "" {
				out[name] = sub
			} else {
				for k, v := range sub {
					out[k] = v
				}
			}
			continue
		}

		if val := defaultValueForField(f.Type, f.Tag.Get("default")); val != nil {
			out[configKey(f)] = val
		}
	}
	return out
}

func defaultValueForField(t reflect.Type, def string) any {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.PkgPath() == "time" && t.Name() == "Duration" {
		if def != "" {
			return def
		}
		return "0s"
	}
	switch t.Kind() {
	case reflect.String:
		return def
	case reflect.Bool:
		b, _ := strconv.ParseBool(def)
		return b
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, _ := strconv.ParseInt(def, 0, 64)
		return n
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, _ := strconv.ParseUint(def, 0, 64)
		return n
	default:
		return nil
	}
}
