package git

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Operation identifies one of the git operations the Service exposes
type Operation int

const (
	// OpClone clones a repository into a new directory
	OpClone Operation = iota
	// OpFetch downloads objects and refs from a remote
	OpFetch
	// OpPull fetches and integrates with a remote branch
	OpPull
	// OpCommit records changes to the repository
	OpCommit
	// OpPush updates remote refs
	OpPush
	// OpStatus shows the working tree status
	OpStatus
)

var operationNames = map[Operation]string{
	OpClone:  "clone",
	OpFetch:  "fetch",
	OpPull:   "pull",
	OpCommit: "commit",
	OpPush:   "push",
	OpStatus: "status",
}

func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Operation(%d)", int(o))
}

// ParseOperation returns the Operation for a git subcommand name
func ParseOperation(name string) (Operation, error) {
	for op, n := range operationNames {
		if n == strings.ToLower(strings.TrimSpace(name)) {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown git operation %q", name)
}

// optionKeys lists each operation's option keys in flag emission order
var optionKeys = map[Operation][]string{
	OpClone:  {"branch", "depth", "single-branch", "recursive"},
	OpFetch:  {"remote", "branch", "prune", "all"},
	OpPull:   {"remote", "branch", "rebase", "no-commit", "ff-only"},
	OpCommit: {"all", "amend", "no-verify", "author"},
	OpPush:   {"remote", "branch", "force", "tags"},
}

// OptionKeys returns the option keys the operation recognizes, in emission order
func (o Operation) OptionKeys() []string {
	return append([]string(nil), optionKeys[o]...)
}

// RequiresRepository reports whether the operation must run inside an existing working tree
func (o Operation) RequiresRepository() bool {
	return o != OpClone
}

// OptionSet is a loosely typed option bag, as received from JSON or other dynamic callers.
// Values are expected to be bool, string or an integer type. Keys an operation does not
// recognize are ignored when the set is decoded.
type OptionSet map[string]any

// Filter returns a copy of the set without falsy entries (nil, false, "", 0).
// Filtering an already filtered set returns an equal set.
func (s OptionSet) Filter() OptionSet {
	out := make(OptionSet, len(s))
	for k, v := range s {
		if truthy(v) {
			out[k] = v
		}
	}
	return out
}

// MarshalOrdered encodes the filtered set as a JSON object whose keys follow order.
// Keys missing from order come last, sorted.
func (s OptionSet) MarshalOrdered(order []string) ([]byte, error) {
	set := s.Filter()
	keys := make([]string, 0, len(set))
	seen := make(map[string]bool, len(set))
	for _, k := range order {
		if _, ok := set[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	var rest []string
	for k := range set {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	keys = append(keys, rest...)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(set[k])
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", k, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case int:
		return val != 0
	case int64:
		return val != 0
	case int32:
		return val != 0
	case uint:
		return val != 0
	case uint64:
		return val != 0
	case float64:
		return val != 0
	default:
		return true
	}
}

// Bool returns the option as a flag. Strings are parsed with strconv.ParseBool.
func (s OptionSet) Bool(key string) bool {
	v, ok := s[key]
	if !ok {
		return false
	}
	if str, ok := v.(string); ok {
		b, err := strconv.ParseBool(str)
		return err == nil && b
	}
	return truthy(v)
}

// Text returns the option as a string value, or "" when absent or falsy
func (s OptionSet) Text(key string) string {
	v, ok := s[key]
	if !ok || !truthy(v) {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return ""
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// Int returns the option as an integer, or 0 when absent, falsy or not numeric
func (s OptionSet) Int(key string) int {
	v, ok := s[key]
	if !ok {
		return 0
	}
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case int32:
		return int(val)
	case uint:
		return int(val)
	case uint64:
		return int(val)
	case float64:
		return int(val)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// CloneOptions contains options for cloning a repository
type CloneOptions struct {
	Branch       string // --branch <name>
	Depth        int    // --depth <n>, 0 means full history
	SingleBranch bool   // --single-branch
	Recursive    bool   // --recursive
}

// CloneOptionsFrom decodes the clone keys of an option set
func CloneOptionsFrom(set OptionSet) CloneOptions {
	return CloneOptions{
		Branch:       set.Text("branch"),
		Depth:        set.Int("depth"),
		SingleBranch: set.Bool("single-branch"),
		Recursive:    set.Bool("recursive"),
	}
}

// FetchOptions contains options for fetching from a remote
type FetchOptions struct {
	Remote string
	Branch string
	Prune  bool
	All    bool
}

// FetchOptionsFrom decodes the fetch keys of an option set
func FetchOptionsFrom(set OptionSet) FetchOptions {
	return FetchOptions{
		Remote: set.Text("remote"),
		Branch: set.Text("branch"),
		Prune:  set.Bool("prune"),
		All:    set.Bool("all"),
	}
}

// PullOptions contains options for pulling from a remote
type PullOptions struct {
	Remote   string
	Branch   string
	Rebase   bool
	NoCommit bool
	FFOnly   bool
}

// PullOptionsFrom decodes the pull keys of an option set
func PullOptionsFrom(set OptionSet) PullOptions {
	return PullOptions{
		Remote:   set.Text("remote"),
		Branch:   set.Text("branch"),
		Rebase:   set.Bool("rebase"),
		NoCommit: set.Bool("no-commit"),
		FFOnly:   set.Bool("ff-only"),
	}
}

// CommitOptions contains options for creating a commit
type CommitOptions struct {
	All      bool
	Amend    bool
	NoVerify bool
	Author   string
}

// CommitOptionsFrom decodes the commit keys of an option set
func CommitOptionsFrom(set OptionSet) CommitOptions {
	return CommitOptions{
		All:      set.Bool("all"),
		Amend:    set.Bool("amend"),
		NoVerify: set.Bool("no-verify"),
		Author:   set.Text("author"),
	}
}

// PushOptions contains options for pushing to a remote
type PushOptions struct {
	Remote string
	Branch string
	Force  bool
	Tags   bool
}

// PushOptionsFrom decodes the push keys of an option set
func PushOptionsFrom(set OptionSet) PushOptions {
	return PushOptions{
		Remote: set.Text("remote"),
		Branch: set.Text("branch"),
		Force:  set.Bool("force"),
		Tags:   set.Bool("tags"),
	}
}

// OptionSet converts the options back into their option-set form, skipping unset fields.
// The CLI uses it to echo the effective options.
func (o CloneOptions) OptionSet() OptionSet {
	return OptionSet{
		"branch":        o.Branch,
		"depth":         o.Depth,
		"single-branch": o.SingleBranch,
		"recursive":     o.Recursive,
	}.Filter()
}

func (o FetchOptions) OptionSet() OptionSet {
	return OptionSet{"remote": o.Remote, "branch": o.Branch, "prune": o.Prune, "all": o.All}.Filter()
}

func (o PullOptions) OptionSet() OptionSet {
	return OptionSet{
		"remote":    o.Remote,
		"branch":    o.Branch,
		"rebase":    o.Rebase,
		"no-commit": o.NoCommit,
		"ff-only":   o.FFOnly,
	}.Filter()
}

func (o CommitOptions) OptionSet() OptionSet {
	return OptionSet{"all": o.All, "amend": o.Amend, "no-verify": o.NoVerify, "author": o.Author}.Filter()
}

func (o PushOptions) OptionSet() OptionSet {
	return OptionSet{"remote": o.Remote, "branch": o.Branch, "force": o.Force, "tags": o.Tags}.Filter()
}
