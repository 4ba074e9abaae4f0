package admincli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func TestGetSimpleText_TrimsLine(t *testing.T) {
	out := &bytes.Buffer{}
	reader := bufio.NewReader(strings.NewReader("  alice@x.com  \n"))

	got, err := GetSimpleText(reader, "Email", out)
	if err != nil {
		t.Fatalf("GetSimpleText error: %v", err)
	}
	if got != "alice@x.com" {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(out.String(), "Email") {
		t.Fatalf("prompt not written: %q", out.String())
	}
}

func TestGetSimpleText_EOFAfterPartialLine(t *testing.T) {
	out := &bytes.Buffer{}
	reader := bufio.NewReader(strings.NewReader("partial"))

	got, err := GetSimpleText(reader, "Email", out)
	if err != nil {
		t.Fatalf("GetSimpleText error: %v", err)
	}
	if got != "partial" {
		t.Fatalf("got %q", got)
	}
}

func TestGetPassword_UsesTerminalReader(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	readPassword = func(fd int) ([]byte, error) {
		return []byte("secret1"), nil
	}

	out := &bytes.Buffer{}
	got, err := GetPassword(out)
	if err != nil {
		t.Fatalf("GetPassword error: %v", err)
	}
	if got != "secret1" {
		t.Fatalf("got %q", got)
	}
}
