package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIdentifier(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		word  string
		ident bool
	}){
		{"x", true},
		{"_", true},
		{"_tmp", true},
		{"Total2", true},
		{"a_b_c", true},
		{"", false},
		{"2x", false},
		{"a b", false},
		{" a", false},
		{"a-b", false},
		{"+1", false},
		{"naïve", false},
	}

	for _, entry := range table {
		assert.Equal(entry.ident, IsIdentifier(entry.word), entry.word)
	}
}

func TestIsInteger(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		word    string
		integer bool
	}){
		{"0", true},
		{"42", true},
		{"+42", true},
		{"-42", true},
		{"99999999999", true},
		{"", false},
		{"+", false},
		{"-", false},
		{"_", false},
		{"1_000", false},
		{"4 2", false},
		{"0x10", false},
		{"x", false},
	}

	for _, entry := range table {
		assert.Equal(entry.integer, IsInteger(entry.word), entry.word)
	}
}

func FuzzIsIdentifier(f *testing.F) {
	f.Add("abc")
	f.Add("a b")
	f.Add("_9")

	f.Fuzz(func(t *testing.T, word string) {
		if strings.ContainsAny(word, " \t") {
			assert.False(t, IsIdentifier(word))
		}
		if IsIdentifier(word) {
			assert.False(t, IsInteger(word))
		}
	})
}

func TestSplitLine(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		line     string
		label    string
		mnemonic string
		operand  string
	}){
		{"        HALT", "", "HALT", ""},
		{"\tLOAD 5", "", "LOAD", "5"},
		{"LOOP    LOAD  X", "LOOP", "LOAD", "X"},
		{"        PRINT \"Hello, world\"", "", "PRINT", "Hello, world"},
		{"        PRINT \"say \\\"hi\\\"\"", "", "PRINT", "say \"hi\""},
		{"        PRINT \"open", "", "PRINT", "open"},
		{"        PRINT bare words", "", "PRINT", "bare"},
		{"LONELY", "LONELY", "", ""},
		{"   ", "", "", ""},
		{"        ADD \"$(1 + 2)\"", "", "ADD", "$(1 + 2)"},
	}

	for _, entry := range table {
		label, mnemonic, operand := splitLine(entry.line)
		assert.Equal(entry.label, label, entry.line)
		assert.Equal(entry.mnemonic, mnemonic, entry.line)
		assert.Equal(entry.operand, operand, entry.line)
	}
}
