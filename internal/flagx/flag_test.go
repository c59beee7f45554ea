package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		owned []string
		want  []string
	}{
		{
			name:  "separate value",
			args:  []string{"-a", "http://api", "-d", "drive.db"},
			owned: []string{"-a"},
			want:  []string{"-a", "http://api"},
		},
		{
			name:  "inline value",
			args:  []string{"-a=http://api", "-d", "drive.db"},
			owned: []string{"-a"},
			want:  []string{"-a=http://api"},
		},
		{
			name:  "order preserved across owned flags",
			args:  []string{"-o", "http://web", "-x", "1", "-a=http://api"},
			owned: []string{"-a", "-o"},
			want:  []string{"-o", "http://web", "-a=http://api"},
		},
		{
			name:  "unknown flags and positionals dropped",
			args:  []string{"-x", "1", "positional", "--y=2"},
			owned: []string{"-a"},
			want:  []string{},
		},
		{
			name:  "flag at end without value",
			args:  []string{"-a"},
			owned: []string{"-a"},
			want:  []string{"-a"},
		},
		{
			name:  "next token is a flag, not a value",
			args:  []string{"-a", "-d", "drive.db"},
			owned: []string{"-a"},
			want:  []string{"-a"},
		},
		{
			name:  "inline value that looks like a flag",
			args:  []string{"--config=--odd.json"},
			owned: []string{"--config"},
			want:  []string{"--config=--odd.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.owned))
		})
	}
}

func TestConfigFile(t *testing.T) {
	assert.Equal(t, "a.json", ConfigFile([]string{"-a", "http://api", "-c", "a.json"}))
	assert.Equal(t, "b.json", ConfigFile([]string{"-config=b.json"}))
	assert.Equal(t, "c.json", ConfigFile([]string{"--config", "c.json"}))
	assert.Equal(t, "", ConfigFile([]string{"-a", "http://api"}))
}
