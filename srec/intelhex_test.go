package srec

import (
	"strings"
	"testing"
)

func TestLoadIntelHex(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantPages int
		wantSize  int
		wantFirst string
		wantErr   bool
		errMsg    string
	}{
		{
			name: "single data record",
			input: ":0400000001020304F2\n" +
				":00000001FF\n",
			wantPages: 1,
			wantSize:  4,
			wantFirst: "S107000001020304EE",
		},
		{
			name: "segment crossing a page",
			input: ":04003E0001020304B4\n" +
				":00000001FF\n",
			wantPages: 2,
			wantSize:  4,
		},
		{
			name:    "no data",
			input:   ":00000001FF\n",
			wantErr: true,
			errMsg:  "no data segments",
		},
		{
			name:    "not intel hex",
			input:   recPage0 + "\n",
			wantErr: true,
			errMsg:  "failed to parse intel hex",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rom, err := LoadIntelHex(strings.NewReader(tt.input), PageSize)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errMsg)
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("error = %v, want substring %q", err, tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rom.PageCount() != tt.wantPages {
				t.Errorf("PageCount = %d, want %d", rom.PageCount(), tt.wantPages)
			}
			if rom.TotalSize() != tt.wantSize {
				t.Errorf("TotalSize = %d, want %d", rom.TotalSize(), tt.wantSize)
			}
			if tt.wantFirst != "" && rom.Record(0).Raw() != tt.wantFirst {
				t.Errorf("first record = %q, want %q", rom.Record(0).Raw(), tt.wantFirst)
			}
		})
	}
}
