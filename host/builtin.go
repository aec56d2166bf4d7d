package host

import (
	"fmt"
	"os"
	"strings"

	"github.com/ardnew/mung"

	"github.com/ardnew/tsub/lang"
)

// Builtins returns a Map preloaded with the standard function set:
//
//	env(name)              value of the named environment variable
//	upper(s), lower(s)     case conversion
//	len(v)                 length of a string or list
//	join(sep, v...)        flatten and join with a separator
//	rep(v, n)              list of n copies of v
//	pathprefix(subj, p...) prepend elements to a PATH-like string
//
// Additional variables and functions can be bound on the returned Map.
func Builtins() *Map {
	m := New()

	m.BindFunc("env", builtinEnv)
	m.BindFunc("upper", builtinUpper)
	m.BindFunc("lower", builtinLower)
	m.BindFunc("len", builtinLen)
	m.BindFunc("join", builtinJoin)
	m.BindFunc("rep", builtinRep)
	m.BindFunc("pathprefix", builtinPathPrefix)

	return m
}

func builtinEnv(args []lang.Value) (lang.Value, error) {
	name, err := argString("env", args, 0)
	if err != nil {
		return lang.Null(), err
	}

	if err := argCount("env", args, 1); err != nil {
		return lang.Null(), err
	}

	return lang.String(os.Getenv(name)), nil
}

func builtinUpper(args []lang.Value) (lang.Value, error) {
	s, err := argString("upper", args, 0)
	if err != nil {
		return lang.Null(), err
	}

	if err := argCount("upper", args, 1); err != nil {
		return lang.Null(), err
	}

	return lang.String(strings.ToUpper(s)), nil
}

func builtinLower(args []lang.Value) (lang.Value, error) {
	s, err := argString("lower", args, 0)
	if err != nil {
		return lang.Null(), err
	}

	if err := argCount("lower", args, 1); err != nil {
		return lang.Null(), err
	}

	return lang.String(strings.ToLower(s)), nil
}

func builtinLen(args []lang.Value) (lang.Value, error) {
	if err := argCount("len", args, 1); err != nil {
		return lang.Null(), err
	}

	switch v := args[0]; v.Kind() {
	case lang.KindString:
		return lang.Number(int32(len(v.Text()))), nil

	case lang.KindList:
		return lang.Number(int32(len(v.List()))), nil

	default:
		return lang.Null(), fmt.Errorf(
			"len: cannot take length of %s", v.Kind(),
		)
	}
}

// builtinJoin joins every argument after the separator, flattening lists.
func builtinJoin(args []lang.Value) (lang.Value, error) {
	sep, err := argString("join", args, 0)
	if err != nil {
		return lang.Null(), err
	}

	if len(args) < 2 {
		return lang.Null(), fmt.Errorf(
			"join: expected at least 2 arguments, got %d", len(args),
		)
	}

	var parts []string

	var flatten func(v lang.Value) error

	flatten = func(v lang.Value) error {
		switch v.Kind() {
		case lang.KindString:
			parts = append(parts, v.Text())

		case lang.KindNumber:
			parts = append(parts, fmt.Sprint(v.Number()))

		case lang.KindList:
			for _, e := range v.List() {
				if err := flatten(e); err != nil {
					return err
				}
			}

		default:
			return fmt.Errorf("join: cannot join %s", v.Kind())
		}

		return nil
	}

	for _, v := range args[1:] {
		if err := flatten(v); err != nil {
			return lang.Null(), err
		}
	}

	return lang.String(strings.Join(parts, sep)), nil
}

func builtinRep(args []lang.Value) (lang.Value, error) {
	if err := argCount("rep", args, 2); err != nil {
		return lang.Null(), err
	}

	if args[1].Kind() != lang.KindNumber {
		return lang.Null(), fmt.Errorf(
			"rep: count must be a number, got %s", args[1].Kind(),
		)
	}

	n := args[1].Number()
	if n < 0 {
		return lang.Null(), fmt.Errorf("rep: negative count %d", n)
	}

	elems := make([]lang.Value, n)
	for i := range elems {
		elems[i] = args[0]
	}

	return lang.List(elems...), nil
}

// builtinPathPrefix prepends elements to a PATH-like string, deduplicating
// entries that are already present.
func builtinPathPrefix(args []lang.Value) (lang.Value, error) {
	subject, err := argString("pathprefix", args, 0)
	if err != nil {
		return lang.Null(), err
	}

	if len(args) < 2 {
		return lang.Null(), fmt.Errorf(
			"pathprefix: expected at least 2 arguments, got %d", len(args),
		)
	}

	prefix := make([]string, 0, len(args)-1)

	for i, v := range args[1:] {
		if v.Kind() != lang.KindString {
			return lang.Null(), fmt.Errorf(
				"pathprefix: argument %d must be a string, got %s",
				i+2, v.Kind(),
			)
		}

		prefix = append(prefix, v.Text())
	}

	joined := mung.Make(
		mung.WithSubjectItems(subject),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()

	return lang.String(joined), nil
}

func argCount(name string, args []lang.Value, want int) error {
	if len(args) != want {
		return fmt.Errorf(
			"%s: expected %d argument(s), got %d", name, want, len(args),
		)
	}

	return nil
}

func argString(name string, args []lang.Value, i int) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("%s: missing argument %d", name, i+1)
	}

	if args[i].Kind() != lang.KindString {
		return "", fmt.Errorf(
			"%s: argument %d must be a string, got %s",
			name, i+1, args[i].Kind(),
		)
	}

	return args[i].Text(), nil
}
