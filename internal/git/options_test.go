package git_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stackit.dev/gitkit/internal/git"
)

func TestOptionSetFilter(t *testing.T) {
	set := git.OptionSet{
		"branch":        "main",
		"depth":         0,
		"single-branch": false,
		"recursive":     true,
		"author":        "",
		"remote":        nil,
	}

	filtered := set.Filter()
	require.Equal(t, git.OptionSet{"branch": "main", "recursive": true}, filtered)
	require.Equal(t, filtered, filtered.Filter())

	// the original is untouched
	require.Len(t, set, 6)
}

func TestOptionSetAccessors(t *testing.T) {
	set := git.OptionSet{
		"a": true,
		"b": "true",
		"c": "nope",
		"d": float64(2),
		"e": " 12 ",
		"f": int64(7),
	}

	require.True(t, set.Bool("a"))
	require.True(t, set.Bool("b"))
	require.False(t, set.Bool("c"))
	require.False(t, set.Bool("missing"))

	require.Equal(t, 2, set.Int("d"))
	require.Equal(t, 12, set.Int("e"))
	require.Equal(t, 7, set.Int("f"))
	require.Equal(t, 0, set.Int("c"))

	require.Equal(t, "2", set.Text("d"))
	require.Equal(t, "", set.Text("a"))
	require.Equal(t, "", set.Text("missing"))
}

func TestOptionsFrom(t *testing.T) {
	t.Run("clone", func(t *testing.T) {
		got := git.CloneOptionsFrom(git.OptionSet{"branch": "main", "depth": 1, "single-branch": true, "bogus": 1})
		require.Equal(t, git.CloneOptions{Branch: "main", Depth: 1, SingleBranch: true}, got)
	})

	t.Run("pull", func(t *testing.T) {
		got := git.PullOptionsFrom(git.OptionSet{"ff-only": true, "no-commit": "1", "remote": "origin"})
		require.Equal(t, git.PullOptions{Remote: "origin", NoCommit: true, FFOnly: true}, got)
	})

	t.Run("commit", func(t *testing.T) {
		got := git.CommitOptionsFrom(git.OptionSet{"no-verify": true, "author": "Me <me@example.com>"})
		require.Equal(t, git.CommitOptions{NoVerify: true, Author: "Me <me@example.com>"}, got)
	})

	t.Run("round trip through option set", func(t *testing.T) {
		opts := git.PushOptions{Remote: "origin", Tags: true}
		require.Equal(t, opts, git.PushOptionsFrom(opts.OptionSet()))
		require.Equal(t, git.OptionSet{"remote": "origin", "tags": true}, opts.OptionSet())
	})
}

func TestParseOperation(t *testing.T) {
	op, err := git.ParseOperation("Fetch")
	require.NoError(t, err)
	require.Equal(t, git.OpFetch, op)
	require.True(t, op.RequiresRepository())
	require.False(t, git.OpClone.RequiresRepository())

	_, err = git.ParseOperation("rebase")
	require.Error(t, err)
}

func TestOptionSetMarshalOrdered(t *testing.T) {
	tests := []struct {
		name string
		op   git.Operation
		set  git.OptionSet
		want string
	}{
		{
			name: "fetch keeps emission order",
			op:   git.OpFetch,
			set:  git.OptionSet{"prune": true, "remote": "origin"},
			want: `{"remote":"origin","prune":true}`,
		},
		{
			name: "clone with every option",
			op:   git.OpClone,
			set:  git.OptionSet{"recursive": true, "single-branch": true, "depth": 1, "branch": "main"},
			want: `{"branch":"main","depth":1,"single-branch":true,"recursive":true}`,
		},
		{
			name: "falsy values are dropped",
			op:   git.OpCommit,
			set:  git.OptionSet{"author": "", "amend": false, "all": true},
			want: `{"all":true}`,
		},
		{
			name: "unknown keys follow sorted",
			op:   git.OpPush,
			set:  git.OptionSet{"zeta": "z", "tags": true, "alpha": 1},
			want: `{"tags":true,"alpha":1,"zeta":"z"}`,
		},
		{
			name: "empty set",
			op:   git.OpStatus,
			set:  git.OptionSet{},
			want: `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.set.MarshalOrdered(tt.op.OptionKeys())
			require.NoError(t, err)
			require.Equal(t, tt.want, string(data))
		})
	}

	t.Run("typed options round trip in order", func(t *testing.T) {
		opts := git.PullOptions{Remote: "origin", Branch: "main", FFOnly: true}
		data, err := opts.OptionSet().MarshalOrdered(git.OpPull.OptionKeys())
		require.NoError(t, err)
		require.Equal(t, `{"remote":"origin","branch":"main","ff-only":true}`, string(data))
	})
}
