package sniff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDelimiter(t *testing.T) {
	tests := []struct {
		name   string
		sample string
		want   rune
	}{
		{
			name:   "comma",
			sample: "SessionID,Track,Lap\nS1,Brands Hatch,1\nS1,Brands Hatch,2\n",
			want:   ',',
		},
		{
			name:   "semicolon",
			sample: "SessionID;Track;Lap\nS1;Brands Hatch;1\n",
			want:   ';',
		},
		{
			name:   "tab",
			sample: "SessionID\tTrack\tLap\nS1\tBrands Hatch\t1\n",
			want:   '\t',
		},
		{
			name: "semicolon wins over commas in values",
			sample: "SessionID;Track;Notes\n" +
				"S1;Brands Hatch;bumpy, slow\n" +
				"S1;Brands Hatch;ok\n",
			want: ';',
		},
		{
			name:   "unstable counts fall back to comma",
			sample: "a;b\nc;d;e\nf\n",
			want:   ',',
		},
		{
			name:   "empty sample",
			sample: "",
			want:   ',',
		},
		{
			name:   "no delimiter at all",
			sample: "justoneword\nanother\n",
			want:   ',',
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Delimiter([]byte(tt.sample)))
		})
	}
}

func TestDelimiterIgnoresTruncatedTail(t *testing.T) {
	// last line may be cut off mid-field by the sample window
	sample := "a;b;c\nd;e;f\ng;h"
	assert.Equal(t, ';', Delimiter([]byte(sample)))
}

func TestContainsBinary(t *testing.T) {
	assert.True(t, ContainsBinary([]byte("abc\x00def")))
	assert.False(t, ContainsBinary([]byte("plain text")))
}
