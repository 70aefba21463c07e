package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSuspicious(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"upper case", "Let's ROB a bank", true},
		{"inside another word", "robotics club", true},
		{"terror prefix", "a terroriffic idea", true},
		{"skill contains kill", "improve skill levels", true},
		{"mixed case", "how to BrIbE an official", true},
		{"clean", "how to plan new housing", false},
		{"empty", "", false},
		{"near miss", "ro b the bank", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSuspicious(tt.text))
		})
	}
}

func TestEveryBlocklistTermMatches(t *testing.T) {
	assert.Len(t, Blocklist, 10)
	for _, word := range Blocklist {
		got, ok := Match("please " + word + " it")
		assert.True(t, ok, word)
		assert.Equal(t, word, got)
	}
}

func TestMatchReturnsFirstTermInListOrder(t *testing.T) {
	// "steal" precedes "hack" in the list
	got, ok := Match("hack then steal")
	assert.True(t, ok)
	assert.Equal(t, "steal", got)
}
