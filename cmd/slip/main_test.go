package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func TestRun(t *testing.T) {
	slip := writeFile(t, `{"1":["1","X"],"2":["1","2","X"],"3":["2"]}`)
	outside := writeFile(t, `{"18":["1"]}`)
	jp := writeFile(t, `{"name":"Mega Jackpot","games":[
		{"game_order":1,"odds":{"home":1.5,"draw":4.0,"away":5.0}},
		{"game_order":2,"odds":{"home":2.6,"draw":3.1,"away":2.8}}]}`)

	tests := []struct {
		name     string
		args     []string
		wantErr  bool
		contains []string
	}{
		{
			name:     "validate",
			args:     []string{"validate", "-file", slip},
			contains: []string{"| Game 2 | 1 2 X |", "mixed", "KSh 594"},
		},
		{
			name:    "validate outside jackpot",
			args:    []string{"validate", "-file", outside},
			wantErr: true,
		},
		{
			name:    "validate without file",
			args:    []string{"validate"},
			wantErr: true,
		},
		{
			name:     "random is seeded",
			args:     []string{"random", "-games", "5", "-seed", "42"},
			contains: []string{"Random slip (seed 42)", "Game 5"},
		},
		{
			name:     "smart",
			args:     []string{"smart", "-file", jp},
			contains: []string{"Mega Jackpot", "| Game 1 | 1 X   |", "| Game 2 | 1 2 X |"},
		},
		{
			name:     "budget",
			args:     []string{"budget", "-amount", "99000", "-seed", "7"},
			contains: []string{"Budget KSh 99000", "972"},
		},
		{
			name:    "budget too low",
			args:    []string{"budget", "-amount", "50"},
			wantErr: true,
		},
		{
			name:    "unknown command",
			args:    []string{"spin"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(tt.args, &out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("run() error = %v, wantErr %v\n%s", err, tt.wantErr, out.String())
			}
			for _, want := range tt.contains {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output missing %q:\n%s", want, out.String())
				}
			}
		})
	}
}

func TestRun_SameSeedSameSlip(t *testing.T) {
	var a, b bytes.Buffer
	if err := run([]string{"random", "-seed", "99"}, &a); err != nil {
		t.Fatal(err)
	}
	if err := run([]string{"random", "-seed", "99"}, &b); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Error("same seed should print the same slip")
	}
}
