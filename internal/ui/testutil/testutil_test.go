package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Blue Train", "Blue Train"},
		{"foreground", "\x1b[31mred\x1b[0m text", "red text"},
		{"truecolor cell", "\x1b[38;2;1;2;3;48;2;4;5;6m▀\x1b[m", "▀"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripANSI(tt.input); got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single", "one", []string{"one"}},
		{"trailing newline", "one\ntwo\n", []string{"one", "two"}},
		{"trailing styled blank", "one\n\x1b[40m   \x1b[m", []string{"one"}},
		{"inner blank kept", "one\n\ntwo", []string{"one", "", "two"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLines(tt.input))
		})
	}
}

func TestLineWidths(t *testing.T) {
	got := LineWidths("ab\n\x1b[1mcde\x1b[0m\n日本")
	assert.Equal(t, []int{2, 3, 4}, got)
}

func TestFindLine(t *testing.T) {
	output := "1  Blue Train\n\x1b[1m2  Moment's Notice\x1b[0m\n3  Locomotion"

	assert.Equal(t, "2  Moment's Notice", FindLine(output, "Moment"))
	assert.Empty(t, FindLine(output, "Lazy Bird"))
	assert.True(t, ContainsLine(output, "Locomotion"))
	assert.False(t, ContainsLine(output, "Train\n2"))
}

func TestAssertContains(t *testing.T) {
	output := "\x1b[32mok\x1b[0m done"

	assert.Empty(t, AssertContains(output, "ok done"))
	assert.NotEmpty(t, AssertContains(output, "failed"))
	assert.Empty(t, AssertNotContains(output, "failed"))
	assert.NotEmpty(t, AssertNotContains(output, "done"))
}

func TestKeyMsg(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"esc", "esc"},
		{"enter", "enter"},
		{"down", "down"},
		{"ctrl+c", "ctrl+c"},
		{"j", "j"},
		{"?", "?"},
	}

	for _, tt := range tests {
		if got := KeyMsg(tt.key).String(); got != tt.want {
			t.Errorf("KeyMsg(%q).String() = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestExecuteCmd_Nil(t *testing.T) {
	assert.Nil(t, ExecuteCmd(nil))
}
