package safepath

import (
	"path/filepath"
	"testing"

	"github.com/Cyclone1070/bashgate/internal/analyzer"
	"github.com/Cyclone1070/bashgate/internal/decision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCanonicalizer cleans paths lexically, optionally failing for a set
// of inputs to simulate a broken realpath.
type fakeCanonicalizer struct {
	fail map[string]bool
}

func (f *fakeCanonicalizer) Canonicalize(path string) (string, bool) {
	if f.fail[path] {
		return "", false
	}
	if !filepath.IsAbs(path) {
		path = "/work/" + path
	}
	return filepath.Clean(path), true
}

func rmCmd(args ...string) analyzer.Command {
	return analyzer.Command{Name: "rm", Args: args}
}

func teeCmd(args ...string) analyzer.Command {
	return analyzer.Command{Name: "tee", Args: args}
}

func TestDeleteChecker_TmpFile(t *testing.T) {
	c := NewDeleteChecker(&fakeCanonicalizer{}, "/tmp", "")
	result := c.Classify(rmCmd("/tmp/test.txt"))
	require.NotNil(t, result)
	assert.Equal(t, decision.Allow, result.Permission)
}

func TestDeleteChecker_TmpSubdir(t *testing.T) {
	c := NewDeleteChecker(&fakeCanonicalizer{}, "/tmp", "")
	result := c.Classify(rmCmd("-rf", "/tmp/mydir/subdir"))
	require.NotNil(t, result)
	assert.Equal(t, decision.Allow, result.Permission)
}

func TestDeleteChecker_TmpItselfDefers(t *testing.T) {
	c := NewDeleteChecker(&fakeCanonicalizer{}, "/tmp", "")
	assert.Nil(t, c.Classify(rmCmd("-rf", "/tmp")))
	assert.Nil(t, c.Classify(rmCmd("-rf", "/tmp/")))
	assert.Nil(t, c.Classify(rmCmd("-rf", "/tmp///")))
}

func TestDeleteChecker_OutsideTmpDefers(t *testing.T) {
	c := NewDeleteChecker(&fakeCanonicalizer{}, "/tmp", "")
	assert.Nil(t, c.Classify(rmCmd("/home/user/file")))
}

func TestDeleteChecker_DotDotEscapeDefers(t *testing.T) {
	c := NewDeleteChecker(&fakeCanonicalizer{}, "/tmp", "")
	assert.Nil(t, c.Classify(rmCmd("/tmp/x/../../etc/passwd")))
}

func TestDeleteChecker_ProjectDir(t *testing.T) {
	c := NewDeleteChecker(&fakeCanonicalizer{}, "/tmp", "/home/user/project")
	result := c.Classify(rmCmd("/home/user/project/target/debug/test"))
	require.NotNil(t, result)
	assert.Equal(t, decision.Allow, result.Permission)
}

func TestDeleteChecker_ProjectDirTrailingSlash(t *testing.T) {
	c := NewDeleteChecker(&fakeCanonicalizer{}, "/tmp", "/home/user/project/")
	result := c.Classify(rmCmd("/home/user/project/build"))
	require.NotNil(t, result)
	assert.Equal(t, decision.Allow, result.Permission)
}

func TestDeleteChecker_ProjectDirItselfDefers(t *testing.T) {
	c := NewDeleteChecker(&fakeCanonicalizer{}, "/tmp", "/home/user/project")
	assert.Nil(t, c.Classify(rmCmd("-rf", "/home/user/project")))
}

func TestDeleteChecker_OutsideProjectDefers(t *testing.T) {
	c := NewDeleteChecker(&fakeCanonicalizer{}, "/tmp", "/home/user/project")
	assert.Nil(t, c.Classify(rmCmd("/var/other/file")))
}

func TestDeleteChecker_MultipleTmpFiles(t *testing.T) {
	c := NewDeleteChecker(&fakeCanonicalizer{}, "/tmp", "")
	result := c.Classify(rmCmd("/tmp/a", "/tmp/b", "/tmp/c"))
	require.NotNil(t, result)
	assert.Equal(t, decision.Allow, result.Permission)
}

func TestDeleteChecker_MixedPathsDefer(t *testing.T) {
	// Conjunction: one unprovable path defers the whole command.
	c := NewDeleteChecker(&fakeCanonicalizer{}, "/tmp", "")
	assert.Nil(t, c.Classify(rmCmd("/tmp/a", "/home/user/b")))
}

func TestDeleteChecker_NoPathsDefers(t *testing.T) {
	c := NewDeleteChecker(&fakeCanonicalizer{}, "/tmp", "")
	assert.Nil(t, c.Classify(rmCmd("-rf")))
}

func TestDeleteChecker_SuspiciousBytesDefer(t *testing.T) {
	c := NewDeleteChecker(&fakeCanonicalizer{}, "/tmp", "")
	assert.Nil(t, c.Classify(rmCmd("/tmp/a\nb")))
	assert.Nil(t, c.Classify(rmCmd("/tmp/a\x00b")))
}

func TestDeleteChecker_CanonicalizationFailureFallsBackToParent(t *testing.T) {
	canon := &fakeCanonicalizer{fail: map[string]bool{"/tmp/missing/file": true}}
	c := NewDeleteChecker(canon, "/tmp", "")
	result := c.Classify(rmCmd("/tmp/missing/file"))
	require.NotNil(t, result)
	assert.Equal(t, decision.Allow, result.Permission)
}

func TestDeleteChecker_CanonicalizationTotallyBrokenDefers(t *testing.T) {
	canon := &fakeCanonicalizer{fail: map[string]bool{
		"/tmp/missing/file": true,
		"/tmp/missing":      true,
	}}
	c := NewDeleteChecker(canon, "/tmp", "")
	assert.Nil(t, c.Classify(rmCmd("/tmp/missing/file")))
}

func TestDeleteChecker_OtherCommandIgnored(t *testing.T) {
	c := NewDeleteChecker(&fakeCanonicalizer{}, "/tmp", "")
	assert.Nil(t, c.Classify(analyzer.Command{Name: "ls", Args: []string{"/tmp"}}))
}

func TestWriteChecker_TmpFile(t *testing.T) {
	c := NewWriteChecker(&fakeCanonicalizer{}, "/tmp")
	result := c.Classify(teeCmd("/tmp/test.log"))
	require.NotNil(t, result)
	assert.Equal(t, decision.Allow, result.Permission)
}

func TestWriteChecker_AppendFlag(t *testing.T) {
	c := NewWriteChecker(&fakeCanonicalizer{}, "/tmp")
	result := c.Classify(teeCmd("-a", "/tmp/test.log"))
	require.NotNil(t, result)
	assert.Equal(t, decision.Allow, result.Permission)
}

func TestWriteChecker_NoArgsAllowed(t *testing.T) {
	c := NewWriteChecker(&fakeCanonicalizer{}, "/tmp")
	result := c.Classify(teeCmd())
	require.NotNil(t, result)
	assert.Equal(t, decision.Allow, result.Permission)
	assert.Equal(t, "tee with no output file", result.Reason)
}

func TestWriteChecker_HomeDefers(t *testing.T) {
	c := NewWriteChecker(&fakeCanonicalizer{}, "/tmp")
	assert.Nil(t, c.Classify(teeCmd("/home/user/file.log")))
}

func TestWriteChecker_TmpItselfDefers(t *testing.T) {
	c := NewWriteChecker(&fakeCanonicalizer{}, "/tmp")
	assert.Nil(t, c.Classify(teeCmd("/tmp")))
	assert.Nil(t, c.Classify(teeCmd("/tmp/")))
}

func TestWriteChecker_MixedDefers(t *testing.T) {
	c := NewWriteChecker(&fakeCanonicalizer{}, "/tmp")
	assert.Nil(t, c.Classify(teeCmd("/tmp/ok.log", "/etc/passwd")))
}

func TestWriteChecker_OtherCommandIgnored(t *testing.T) {
	c := NewWriteChecker(&fakeCanonicalizer{}, "/tmp")
	assert.Nil(t, c.Classify(analyzer.Command{Name: "cat", Args: []string{"/tmp/x"}}))
}

func TestConfined(t *testing.T) {
	tests := []struct {
		name     string
		resolved string
		root     string
		want     bool
	}{
		{"inside", "/tmp/a", "/tmp", true},
		{"nested", "/tmp/a/b/c", "/tmp", true},
		{"root itself", "/tmp", "/tmp", false},
		{"sibling prefix", "/tmp-unsafe/a", "/tmp", false},
		{"outside", "/etc/passwd", "/tmp", false},
		{"root with trailing slash", "/tmp/a", "/tmp/", true},
		{"empty root", "/tmp/a", "", false},
		{"slash root", "/etc", "/", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, confined(tt.resolved, tt.root))
		})
	}
}
