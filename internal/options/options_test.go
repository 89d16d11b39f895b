package options

import (
	"fmt"
	"reflect"
	"regexp"
	"testing"
)

var optsTests = []struct {
	input  []string
	output Options
}{
	{
		[]string{"xattr.namespace=trusted", "bar=baz ", "k="},
		Options{
			"xattr.namespace": "trusted",
			"bar":             "baz",
			"k":               "",
		},
	},
	{
		[]string{"Foo=23", "baR", "k=thing with spaces"},
		Options{
			"foo": "23",
			"bar": "",
			"k":   "thing with spaces",
		},
	},
	{
		[]string{"k=thing with spaces", "k2=more spaces = not evil"},
		Options{
			"k":  "thing with spaces",
			"k2": "more spaces = not evil",
		},
	},
	{
		[]string{"x=1", "foo=bar", "y=2", "foo=bar"},
		Options{
			"x":   "1",
			"y":   "2",
			"foo": "bar",
		},
	},
}

func TestParseOptions(t *testing.T) {
	for i, test := range optsTests {
		t.Run(fmt.Sprintf("test-%v", i), func(t *testing.T) {
			opts, err := Parse(test.input)
			if err != nil {
				t.Fatalf("unable to parse options: %v", err)
			}

			if !reflect.DeepEqual(opts, test.output) {
				t.Fatalf("wrong result, want:\n  %#v\ngot:\n  %#v", test.output, opts)
			}
		})
	}
}

var invalidOptsTests = []struct {
	input []string
	err   string
}{
	{
		[]string{"=bar", "bar=baz", "k="},
		"Fatal: empty key is not a valid option",
	},
	{
		[]string{"x=1", "foo=bar", "y=2", "foo=baz"},
		`Fatal: key "foo" present more than once`,
	},
}

func TestParseInvalidOptions(t *testing.T) {
	for _, test := range invalidOptsTests {
		t.Run(test.err, func(t *testing.T) {
			_, err := Parse(test.input)
			if err == nil {
				t.Fatalf("expected error (%v) not found, err is nil", test.err)
			}

			if err.Error() != test.err {
				t.Fatalf("expected error %q, got %q", test.err, err.Error())
			}
		})
	}
}

func TestOptionsExtract(t *testing.T) {
	input := Options{
		"xattr.namespace": "trusted",
		"xattr.":          "empty",
		"xattrs.other":    "x",
		"global":          "foobar",
	}

	for _, ns := range []string{"xattr", "xattr."} {
		opts := input.Extract(ns)
		want := Options{"namespace": "trusted", "": "empty"}
		if !reflect.DeepEqual(opts, want) {
			t.Fatalf("wrong result for %q, want:\n  %#v\ngot:\n  %#v", ns, want, opts)
		}
	}
}

// Target is used for Apply() tests
type Target struct {
	Namespace string `option:"namespace"`
	Retries   int    `option:"retries"`
	NoFollow  bool   `option:"no-follow"`
	Other     string
}

var setTests = []struct {
	input  Options
	output Target
}{
	{
		Options{"namespace": "trusted"},
		Target{Namespace: "trusted"},
	},
	{
		Options{"namespace": "user", "retries": "3"},
		Target{Namespace: "user", Retries: 3},
	},
	{
		Options{"no-follow": "true"},
		Target{NoFollow: true},
	},
}

func TestOptionsApply(t *testing.T) {
	for i, test := range setTests {
		t.Run(fmt.Sprintf("test-%d", i), func(t *testing.T) {
			var dst Target
			err := test.input.Apply("", &dst)
			if err != nil {
				t.Fatal(err)
			}

			if dst != test.output {
				t.Fatalf("wrong result, want:\n  %#v\ngot:\n  %#v", test.output, dst)
			}
		})
	}
}

var invalidSetTests = []struct {
	input     Options
	namespace string
	err       string
}{
	{
		Options{"other": "foobar"},
		"xattr",
		"Fatal: option xattr.other is not known",
	},
	{
		Options{"retries": "many"},
		"xattr",
		`option retries: strconv.ParseInt: parsing "many": invalid syntax`,
	},
	{
		Options{"no-follow": "maybe"},
		"xattr",
		`option no-follow: strconv.ParseBool: parsing "maybe": invalid syntax`,
	},
}

func TestOptionsApplyInvalid(t *testing.T) {
	for i, test := range invalidSetTests {
		t.Run(fmt.Sprintf("test-%d", i), func(t *testing.T) {
			var dst Target
			err := test.input.Apply(test.namespace, &dst)
			if err == nil {
				t.Fatalf("expected error %v not found", test.err)
			}

			matched, err := regexp.MatchString(test.err, err.Error())
			if err != nil {
				t.Fatal(err)
			}

			if !matched {
				t.Fatalf("expected error to match %q, got %q", test.err, err.Error())
			}
		})
	}
}

func TestListOptions(t *testing.T) {
	cfg := struct {
		Namespace string `option:"namespace" help:"default namespace"`
		Untagged  string
		Retries   int `option:"retries" help:"number of retries"`
	}{}

	want := []Help{
		{Name: "namespace", Text: "default namespace"},
		{Name: "retries", Text: "number of retries"},
	}

	for _, c := range []interface{}{cfg, &cfg} {
		opts := listOptions(c)
		if !reflect.DeepEqual(opts, want) {
			t.Fatalf("wrong opts, want:\n  %v\ngot:\n  %v", want, opts)
		}
	}
}

func TestAppendAllOptions(t *testing.T) {
	var opts []Help
	opts = appendAllOptions(opts, "xattr", struct {
		Namespace string `option:"namespace" help:"default namespace"`
	}{})
	opts = appendAllOptions(opts, "cli", struct {
		Quote   bool `option:"quote" help:"quote values"`
		Columns int  `option:"columns" help:"output width"`
	}{})

	want := []Help{
		{Namespace: "cli", Name: "columns", Text: "output width"},
		{Namespace: "cli", Name: "quote", Text: "quote values"},
		{Namespace: "xattr", Name: "namespace", Text: "default namespace"},
	}
	if !reflect.DeepEqual(opts, want) {
		t.Fatalf("wrong list, want:\n  %v\ngot:\n  %v", want, opts)
	}
}
