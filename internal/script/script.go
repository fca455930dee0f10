// Package script parses and runs line-oriented cache sessions:
//
//	# comment
//	add <key> <value...>
//	use <key>
//	peek <key>
//	remove <key>
//	removehead
//	keys
//	len
//	purge
//
// Keys and values are strings; a value runs to the end of the line.
package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/IvanBrykalov/lrucache/cache"
)

// Verb is a script command name.
type Verb string

const (
	VerbAdd        Verb = "add"
	VerbUse        Verb = "use"
	VerbPeek       Verb = "peek"
	VerbRemove     Verb = "remove"
	VerbRemoveHead Verb = "removehead"
	VerbKeys       Verb = "keys"
	VerbLen        Verb = "len"
	VerbPurge      Verb = "purge"
)

// arity is the exact number of arguments after the verb; add takes a key
// and at least one value word.
var arity = map[Verb]int{
	VerbAdd:        2,
	VerbUse:        1,
	VerbPeek:       1,
	VerbRemove:     1,
	VerbRemoveHead: 0,
	VerbKeys:       0,
	VerbLen:        0,
	VerbPurge:      0,
}

// Command is one parsed script line.
type Command struct {
	Line  int
	Verb  Verb
	Key   string
	Value string
}

// ErrSyntax is wrapped by every *SyntaxError.
var ErrSyntax = errors.New("script: syntax error")

// SyntaxError points at the offending line.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string { return fmt.Sprintf("script: line %d: %s", e.Line, e.Msg) }

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// Parse reads commands from r. Blank lines and lines starting with '#'
// are skipped. Verbs are case-insensitive.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		cmd, err := parseLine(line, text)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("script: read: %w", err)
	}
	return cmds, nil
}

func parseLine(line int, text string) (Command, error) {
	fields := strings.Fields(text)
	verb := Verb(strings.ToLower(fields[0]))
	want, ok := arity[verb]
	if !ok {
		return Command{}, &SyntaxError{Line: line, Msg: fmt.Sprintf("unknown command %q", fields[0])}
	}
	args := fields[1:]
	switch {
	case verb == VerbAdd && len(args) < want:
		return Command{}, &SyntaxError{Line: line, Msg: "add needs a key and a value"}
	case verb != VerbAdd && len(args) != want:
		return Command{}, &SyntaxError{Line: line, Msg: fmt.Sprintf("%s takes %d argument(s), got %d", verb, want, len(args))}
	}

	cmd := Command{Line: line, Verb: verb}
	if len(args) > 0 {
		cmd.Key = args[0]
	}
	if verb == VerbAdd {
		cmd.Value = strings.Join(args[1:], " ")
	}
	return cmd, nil
}

// Run executes cmds against c, writing one result line per command to w.
// It stops early when ctx is done and returns ctx.Err().
func Run(ctx context.Context, c cache.Cache[string, string], cmds []Command, w io.Writer) error {
	for _, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, Exec(c, cmd)); err != nil {
			return err
		}
	}
	return nil
}

// Exec applies one command and returns its result line.
func Exec(c cache.Cache[string, string], cmd Command) string {
	switch cmd.Verb {
	case VerbAdd:
		if v, ok := c.Add(cmd.Key, cmd.Value); ok {
			return fmt.Sprintf("add %s: evicted %s", cmd.Key, v)
		}
		return fmt.Sprintf("add %s: ok", cmd.Key)
	case VerbUse:
		return lookup("use", cmd.Key, c.Use)
	case VerbPeek:
		return lookup("peek", cmd.Key, c.Peek)
	case VerbRemove:
		return fmt.Sprintf("remove %s: %t", cmd.Key, c.Remove(cmd.Key))
	case VerbRemoveHead:
		if v, ok := c.RemoveHead(); ok {
			return "removehead: " + v
		}
		return "removehead: empty"
	case VerbKeys:
		return fmt.Sprint(c.Keys())
	case VerbLen:
		return fmt.Sprintf("len: %d", c.Len())
	case VerbPurge:
		c.Purge()
		return "purge: ok"
	default:
		return fmt.Sprintf("%s: unsupported", cmd.Verb)
	}
}

func lookup(name, key string, get func(string) (string, bool)) string {
	if v, ok := get(key); ok {
		return fmt.Sprintf("%s %s: %s", name, key, v)
	}
	return fmt.Sprintf("%s %s: not found", name, key)
}
