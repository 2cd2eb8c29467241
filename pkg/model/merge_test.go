package model

import (
	"testing"

	"github.com/pika-pm/pika/pkg/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dep(name string) *CompoundDepend {
	return &CompoundDepend{Possibilities: []*Depend{{Name: name}}}
}

func TestMergeSelfIsNoop(t *testing.T) {
	p := New()
	p.Name = "foo"
	p.Depends = []*CompoundDepend{dep("bar")}

	require.NoError(t, Merge(p, p))
	assert.Len(t, p.Depends, 1)
}

func TestMergeFillsUnsetFields(t *testing.T) {
	into := New()
	into.Name = "foo"

	from := New()
	from.Name = "foo"
	from.Architecture = "arm"
	from.ArchPriority = 10
	from.Section = "net"
	from.Maintainer = "someone"
	from.Description = "a tool"
	from.Filename = "foo_1.0_arm.pika"
	from.MD5Sum = "d41d8cd98f00b204e9800998ecf8427e"
	from.SHA256Sum = "deadbeef"
	from.Size = 1234
	from.InstalledSize = 5678
	from.Priority = "optional"
	from.Source = "foo.tar.gz"
	from.Tags = "cli"
	from.Essential = true
	from.AutoInstalled = true

	require.NoError(t, Merge(into, from))

	assert.Equal(t, "arm", into.Architecture)
	assert.Equal(t, 10, into.ArchPriority)
	assert.Equal(t, "net", into.Section)
	assert.Equal(t, "someone", into.Maintainer)
	assert.Equal(t, "a tool", into.Description)
	assert.Equal(t, "foo_1.0_arm.pika", into.Filename)
	assert.Equal(t, int64(1234), into.Size)
	assert.Equal(t, int64(5678), into.InstalledSize)
	assert.Equal(t, "optional", into.Priority)
	assert.True(t, into.Essential)
	assert.True(t, into.AutoInstalled)
}

func TestMergeDoesNotOverwrite(t *testing.T) {
	into := New()
	into.Name = "foo"
	into.Architecture = "x86_64"
	into.Section = "base"
	into.Size = 99

	from := New()
	from.Name = "foo"
	from.Architecture = "arm"
	from.Section = "net"
	from.Size = 1234

	require.NoError(t, Merge(into, from))

	assert.Equal(t, "x86_64", into.Architecture)
	assert.Equal(t, "base", into.Section)
	assert.Equal(t, int64(99), into.Size)
}

func TestMergeDependencyListsMoveAsGroup(t *testing.T) {
	into := New()
	into.Name = "foo"

	from := New()
	from.Name = "foo"
	from.PreDepends = []*CompoundDepend{dep("pre")}
	from.Depends = []*CompoundDepend{dep("dep")}
	from.Recommends = []*CompoundDepend{dep("rec")}
	from.Suggests = []*CompoundDepend{dep("sug")}

	require.NoError(t, Merge(into, from))

	assert.Len(t, into.PreDepends, 1)
	assert.Len(t, into.Depends, 1)
	assert.Len(t, into.Recommends, 1)
	assert.Len(t, into.Suggests, 1)
	assert.Nil(t, from.Depends)
}

func TestMergeDependencySetsNeverMix(t *testing.T) {
	into := New()
	into.Name = "foo"
	into.Suggests = []*CompoundDepend{dep("old-sug")}

	from := New()
	from.Name = "foo"
	from.Depends = []*CompoundDepend{dep("new-dep")}

	require.NoError(t, Merge(into, from))

	// Any populated list in the destination pins the whole group.
	assert.Empty(t, into.Depends)
	assert.Len(t, into.Suggests, 1)
	assert.Equal(t, "old-sug", into.Suggests[0].Possibilities[0].Name)
}

func TestMergeProvidesReplacedWhenTrivial(t *testing.T) {
	into := New()
	into.Name = "foo"
	into.Provides = []string{"foo"}

	from := New()
	from.Name = "foo"
	from.Provides = []string{"foo", "virtual-foo"}

	require.NoError(t, Merge(into, from))
	assert.Equal(t, []string{"foo", "virtual-foo"}, into.Provides)

	// A non-trivial list is kept.
	again := New()
	again.Name = "foo"
	again.Provides = []string{"foo", "other"}
	require.NoError(t, Merge(into, again))
	assert.Equal(t, []string{"foo", "virtual-foo"}, into.Provides)
}

func TestMergeConffilesAdoptedOnlyWhenEmpty(t *testing.T) {
	into := New()
	into.Name = "foo"
	into.Conffiles = []Conffile{{Name: "/etc/foo.conf", Value: "abc"}}

	from := New()
	from.Name = "foo"
	from.Conffiles = []Conffile{{Name: "/etc/other.conf", Value: "def"}}

	require.NoError(t, Merge(into, from))
	require.Len(t, into.Conffiles, 1)
	assert.Equal(t, "/etc/foo.conf", into.Conffiles[0].Name)

	empty := New()
	empty.Name = "foo"
	require.NoError(t, Merge(empty, from))
	require.Len(t, empty.Conffiles, 1)
	assert.Equal(t, "/etc/other.conf", empty.Conffiles[0].Name)
}

func TestMergeAdoptsInstalledFilesWithRefCount(t *testing.T) {
	into := New()
	into.Name = "foo"

	from := New()
	from.Name = "foo"
	from.AcquireInstalledFiles()
	list := &FileList{}
	list.Append("/usr/bin/foo", 0, "")
	from.SetInstalledFiles(list)

	require.NoError(t, Merge(into, from))

	assert.Same(t, list, into.InstalledFiles)
	assert.Equal(t, 1, into.InstalledFilesRefCount())
	assert.Nil(t, from.InstalledFiles)
}

func TestMergeIdempotent(t *testing.T) {
	mk := func() *Package {
		p := New()
		p.Name = "foo"
		p.Architecture = "arm"
		p.Depends = []*CompoundDepend{dep("bar")}
		p.Provides = []string{"foo", "virtual-foo"}
		return p
	}

	into := New()
	into.Name = "foo"

	require.NoError(t, Merge(into, mk()))
	first := *into
	require.NoError(t, Merge(into, mk()))

	assert.Equal(t, first.Architecture, into.Architecture)
	assert.Equal(t, first.Provides, into.Provides)
	assert.Len(t, into.Depends, 1)
}

func TestDependString(t *testing.T) {
	d := &Depend{Name: "libfoo"}
	assert.Equal(t, "libfoo", d.String())

	d = &Depend{Name: "libfoo", Constraint: version.ConstraintLaterEqual, Version: "1.2"}
	assert.Equal(t, "libfoo (>=1.2)", d.String())

	cd := &CompoundDepend{Possibilities: []*Depend{
		{Name: "libfoo", Constraint: version.ConstraintLaterEqual, Version: "1.2"},
		{Name: "libbar"},
	}}
	assert.Equal(t, "libfoo (>=1.2) | libbar", cd.String())
}

func TestDependSatisfiedBy(t *testing.T) {
	p := New()
	p.Name = "libfoo"
	require.NoError(t, p.SetVersion("1.5-r1"))

	ok, err := (&Depend{Name: "libfoo"}).SatisfiedBy(p)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = (&Depend{Name: "libbar"}).SatisfiedBy(p)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = (&Depend{Name: "libfoo", Constraint: version.ConstraintLaterEqual, Version: "1.2"}).SatisfiedBy(p)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = (&Depend{Name: "libfoo", Constraint: version.ConstraintEarlier, Version: "1.5"}).SatisfiedBy(p)
	require.NoError(t, err)
	assert.False(t, ok)
}
