package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("  hello world  \n"))

	got, err := GetSimpleText(reader, "Say something", &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello world" {
		t.Fatalf("expected trimmed input, got %q", got)
	}
	if !strings.Contains(out.String(), "Say something") {
		t.Fatalf("prompt not written: %q", out.String())
	}
}

func TestGetSimpleText_EOFWithPartialLine(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("partial"))

	got, err := GetSimpleText(reader, "p", &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "partial" {
		t.Fatalf("expected partial line, got %q", got)
	}
}

func TestGetSimpleText_EOFWithoutInput(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader(""))

	if _, err := GetSimpleText(reader, "p", &out); err == nil {
		t.Fatal("expected error on empty EOF")
	}
}

func TestGetOptionalText(t *testing.T) {
	var out bytes.Buffer

	reader := bufio.NewReader(strings.NewReader("value\n"))
	got, err := GetOptionalText(reader, "p", &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || *got != "value" {
		t.Fatalf("expected pointer to %q, got %v", "value", got)
	}

	reader = bufio.NewReader(strings.NewReader("\n"))
	got, err = GetOptionalText(reader, "p", &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("empty line must yield nil, got %q", *got)
	}
}

func TestGetPassword_UsesSeam(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	readPassword = func(fd int) ([]byte, error) {
		return []byte("s3cret"), nil
	}

	var out bytes.Buffer
	pw, err := GetPassword(&out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(pw) != "s3cret" {
		t.Fatalf("expected stubbed password, got %q", pw)
	}
	if !strings.Contains(out.String(), "Enter password") {
		t.Fatalf("prompt not written: %q", out.String())
	}
}

func TestGetPassword_PropagatesError(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	boom := errors.New("no terminal")
	readPassword = func(fd int) ([]byte, error) {
		return nil, boom
	}

	var out bytes.Buffer
	if _, err := GetPassword(&out); !errors.Is(err, boom) {
		t.Fatalf("want stubbed error, got %v", err)
	}
}
