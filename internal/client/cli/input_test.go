package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("hello world\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleText_TrimsWhitespace(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("  santanu  \n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Code?", &out)
	if err != nil || got != "santanu" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleText_EOFAfterPartialLine(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSecret_Stubbed(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return []byte("santanu"), nil
	}

	var out bytes.Buffer
	got, err := GetSecret("Enter access code", &out)
	if err != nil || got != "santanu" {
		t.Fatalf("got %q, err=%v", got, err)
	}
	if !strings.Contains(out.String(), "Enter access code") {
		t.Fatalf("prompt not written: %q", out.String())
	}
}

func TestGetSecret_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}

	var out bytes.Buffer
	if _, err := GetSecret("Enter access code", &out); err == nil {
		t.Fatal("expected error")
	}
}
