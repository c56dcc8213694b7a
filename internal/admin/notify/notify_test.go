package notify

import (
	"bytes"
	"testing"
)

func TestWriterNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewWriterNotifier(&buf)

	n.Success("About: saved")
	n.Failure("Projects: save failed")

	want := "ok: About: saved\nerror: Projects: save failed\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
