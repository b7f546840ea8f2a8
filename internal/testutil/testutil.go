// Package testutil provides test helpers for msggen tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// MsgFile is a .msg definition at Path relative to a workspace root, e.g.
// "std_msgs/msg/Header.msg".
type MsgFile struct {
	Path    string
	Content string
}

// CommonMsgs are the std_msgs and geometry_msgs definitions most tests
// resolve against.
var CommonMsgs = []MsgFile{
	{"std_msgs/msg/Header.msg", "uint32 seq\ntime stamp\nstring frame_id\n"},
	{"std_msgs/msg/String.msg", "string data\n"},
	{"geometry_msgs/msg/Vector3.msg", "float64 x\nfloat64 y\nfloat64 z\n"},
	{"geometry_msgs/msg/Twist.msg", "Vector3 linear\nVector3 angular\n"},
	{"geometry_msgs/msg/TwistStamped.msg", "Header header\nTwist twist\n"},
}

// WriteMsgTree writes files below root on fs.
func WriteMsgTree(t *testing.T, fs afero.Fs, root string, files ...MsgFile) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, f.Path)
		if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating %s: %v", filepath.Dir(path), err)
		}
		if err := afero.WriteFile(fs, path, []byte(f.Content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
	}
}

// Workspace writes CommonMsgs plus extra into a fresh temp dir on the OS
// filesystem and returns its path.
func Workspace(t *testing.T, extra ...MsgFile) string {
	t.Helper()
	root := t.TempDir()
	WriteMsgTree(t, afero.NewOsFs(), root, append(append([]MsgFile{}, CommonMsgs...), extra...)...)
	return root
}
