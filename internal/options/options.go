// Package options parses extended "key=value" options as given with -o on
// the command line and applies them to configuration structs.
package options

import (
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/extattr/extattr/internal/errors"
)

// Options holds options in the form key=value.
type Options map[string]string

var registered []Help

// Register records the options of cfg under namespace ns so that they can
// be listed with List.
func Register(ns string, cfg interface{}) {
	registered = appendAllOptions(registered, ns, cfg)
}

// List returns all registered options.
func List() []Help {
	list := make([]Help, len(registered))
	copy(list, registered)
	return list
}

// appendAllOptions appends all options of cfg to opts, sorted by namespace
// and name.
func appendAllOptions(opts []Help, ns string, cfg interface{}) []Help {
	for _, opt := range listOptions(cfg) {
		opt.Namespace = ns
		opts = append(opts, opt)
	}

	sort.SliceStable(opts, func(i, j int) bool {
		if opts[i].Namespace == opts[j].Namespace {
			return opts[i].Name < opts[j].Name
		}
		return opts[i].Namespace < opts[j].Namespace
	})
	return opts
}

// listOptions returns the fields of cfg tagged with `option`.
func listOptions(cfg interface{}) (opts []Help) {
	v := reflect.Indirect(reflect.ValueOf(cfg))

	for i := 0; i < v.NumField(); i++ {
		f := v.Type().Field(i)

		h := Help{
			Name: f.Tag.Get("option"),
			Text: f.Tag.Get("help"),
		}
		if h.Name == "" {
			continue
		}

		opts = append(opts, h)
	}

	return opts
}

// Help describes a single option.
type Help struct {
	Namespace string
	Name      string
	Text      string
}

// splitKeyValue splits at the first equals (=) sign.
func splitKeyValue(s string) (key string, value string) {
	key, value, _ = strings.Cut(s, "=")
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)
	return key, value
}

// Parse takes a slice of key=value pairs and returns an Options type.
// The key may include namespaces, separated by dots, as in
// "xattr.namespace=trusted". Keys are converted to lower-case.
func Parse(in []string) (Options, error) {
	opts := make(Options, len(in))

	for _, opt := range in {
		key, value := splitKeyValue(opt)

		if key == "" {
			return Options{}, errors.Fatalf("empty key is not a valid option")
		}

		if v, ok := opts[key]; ok && v != value {
			return Options{}, errors.Fatalf("key %q present more than once", key)
		}

		opts[key] = value
	}

	return opts, nil
}

// Extract returns the options in namespace ns with the namespace stripped
// from their keys.
func (o Options) Extract(ns string) Options {
	if !strings.HasSuffix(ns, ".") {
		ns += "."
	}

	opts := make(Options)
	for k, v := range o {
		if name, ok := strings.CutPrefix(k, ns); ok {
			opts[name] = v
		}
	}
	return opts
}

// Apply sets the options on dst via reflection, using the struct tag
// `option`. The namespace ns is only used for error messages.
func (o Options) Apply(ns string, dst interface{}) error {
	v := reflect.ValueOf(dst).Elem()

	fields := make(map[string]int)
	for i := 0; i < v.NumField(); i++ {
		tag := v.Type().Field(i).Tag.Get("option")
		if tag == "" {
			continue
		}

		if _, ok := fields[tag]; ok {
			panic("option tag " + tag + " is not unique in " + v.Type().Name())
		}
		fields[tag] = i
	}

	for key, value := range o {
		i, ok := fields[key]
		if !ok {
			if ns != "" {
				key = ns + "." + key
			}
			return errors.Fatalf("option %v is not known", key)
		}

		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(value)

		case reflect.Int:
			vi, err := strconv.ParseInt(value, 0, 32)
			if err != nil {
				return errors.Wrapf(err, "option %v", key)
			}
			field.SetInt(vi)

		case reflect.Bool:
			vb, err := strconv.ParseBool(value)
			if err != nil {
				return errors.Wrapf(err, "option %v", key)
			}
			field.SetBool(vb)

		default:
			panic("type " + field.Type().Name() + " not handled")
		}
	}

	return nil
}
