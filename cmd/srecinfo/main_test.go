package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	recPage0 = "S10B00000001020304050607D8"
	recPage1 = "S10B0040000102030405060798"
)

func writeROM(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rom.s19")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write rom: %v", err)
	}
	return path
}

func TestSummary(t *testing.T) {
	path := writeROM(t, recPage0+"\n"+recPage1+"\n")

	var out bytes.Buffer
	cmd := rootCommand(&out)
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Records:  2\n",
		"Bytes:    16\n",
		"Range:    0x0000-0x0047\n",
		"Pages:    2 distinct\n",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
	if strings.Contains(out.String(), "address=") {
		t.Error("records listed without -v")
	}
}

func TestVerboseListing(t *testing.T) {
	// Second record carries a wrong checksum; parsing accepts it.
	path := writeROM(t, recPage0+"\nS10B0040000102030405060799\n")

	var out bytes.Buffer
	cmd := rootCommand(&out)
	cmd.SetArgs([]string{"-v", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"    1  address=0x0000 size=8  page 0\n",
		"    2  address=0x0040 size=8  page 1  bad checksum\n",
		"Warning:  1 records have a bad checksum",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestEmptyFile(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCommand(&out)
	cmd.SetArgs([]string{writeROM(t, "")})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Records:  0") || strings.Contains(out.String(), "Range") {
		t.Errorf("output = %q", out.String())
	}
}

func TestParseFailure(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCommand(&out)
	cmd.SetArgs([]string{writeROM(t, recPage0+"\nS105003FAABB56\n")})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "line 2 crosses page boundary") {
		t.Errorf("error = %v", err)
	}
}
