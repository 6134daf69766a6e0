package define

import "testing"

func TestParseOverride(t *testing.T) {
	tests := []struct {
		input   string
		perms   int
		values  []Value
		wantErr bool
	}{
		{"BLOCK_SIZE=512", 1, []Value{512}, false},
		{"BLOCK_SIZE=512,1024,4096", 3, []Value{512, 1024, 4096}, false},
		{"COUNT=range(0,8,2)", 4, []Value{0, 2, 4, 6}, false},
		{"COUNT=range(0,4)", 4, []Value{0, 1, 2, 3}, false},
		{"SIZE=0x100", 1, []Value{256}, false},
		{"NEG=-1", 1, []Value{-1}, false},
		{"", 0, nil, true},
		{"NAME", 0, nil, true},
		{"NAME=", 0, nil, true},
		{"=5", 0, nil, true},
		{"N=abc", 0, nil, true},
		{"N=1,x", 0, nil, true},
		{"N=range(1)", 0, nil, true},
		{"N=range(4,0,1)", 0, nil, true},
	}

	for _, tt := range tests {
		d, err := ParseOverride(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseOverride(%q) should error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseOverride(%q) error: %v", tt.input, err)
			continue
		}
		if d.permutations() != tt.perms {
			t.Errorf("ParseOverride(%q) permutations = %d, want %d", tt.input, d.permutations(), tt.perms)
			continue
		}
		for i, want := range tt.values {
			if v := d.Value(i); v != want {
				t.Errorf("ParseOverride(%q).Value(%d) = %d, want %d", tt.input, i, v, want)
			}
		}
	}
}

func TestParseOverrides(t *testing.T) {
	defs, err := ParseOverrides([]string{"A=1", "B=2,3"})
	if err != nil {
		t.Fatalf("ParseOverrides error: %v", err)
	}
	if len(defs) != 2 || defs[0].Name != "A" || defs[1].Name != "B" {
		t.Errorf("ParseOverrides = %+v", defs)
	}

	if _, err := ParseOverrides([]string{"A=1", "bad"}); err == nil {
		t.Error("ParseOverrides with bad entry should error")
	}
}
