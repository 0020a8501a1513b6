package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeInput(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		args    []string
		want    []string
		wantErr bool
		errMsg  string
	}{
		{
			name:  "intel hex",
			input: []byte(":0400000001020304F2\n:00000001FF\n"),
			want:  []string{"S107000001020304EE"},
		},
		{
			name:  "binary at base",
			input: []byte{1, 2, 3, 4},
			args:  []string{"--binary", "--base", "0x3E"},
			want:  []string{"S105003E0102B9", "S10500400304B3"},
		},
		{
			name:  "small chunks",
			input: []byte{1, 2, 3, 4},
			args:  []string{"--binary", "--chunk", "3"},
			want:  []string{"S1060000010203F3", "S104000304F4"},
		},
		{
			name:    "bad chunk",
			input:   []byte{1},
			args:    []string{"--binary", "--chunk", "65"},
			wantErr: true,
			errMsg:  "chunk size 65",
		},
		{
			name:    "bad base",
			input:   []byte{1},
			args:    []string{"--binary", "--base", "zz"},
			wantErr: true,
			errMsg:  "invalid base address",
		},
		{
			name:    "image too big",
			input:   []byte{1, 2},
			args:    []string{"--binary", "--base", "0x7FFF"},
			wantErr: true,
			errMsg:  "does not fit",
		},
		{
			name:    "not intel hex",
			input:   []byte("hello\n"),
			wantErr: true,
			errMsg:  "failed to parse intel hex",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := rootCommand(&out)
			cmd.SetArgs(append(tt.args, writeInput(t, "input", tt.input)))

			err := cmd.Execute()

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("error = %q, want containing %q", err.Error(), tt.errMsg)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := strings.Split(strings.TrimSpace(out.String()), "\n")
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("records = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvertToFile(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "rom.s19")
	input := writeInput(t, "image.bin", []byte{0xAA})

	var out bytes.Buffer
	cmd := rootCommand(&out)
	cmd.SetArgs([]string{"--binary", "-o", output, input})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "S1040000AA51\n" {
		t.Errorf("output = %q", data)
	}
	if out.Len() != 0 {
		t.Errorf("stdout = %q, want empty", out.String())
	}
}
