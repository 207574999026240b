package prompt_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"

	"github.com/protosmith/protosmith/internal/prompt"
)

func newPrompter(input string) (*prompt.Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return prompt.New(strings.NewReader(input), &out), &out
}

func TestInput(t *testing.T) {
	p, out := newPrompter("\n  orders \n")

	got, err := p.Input("Module name", "customer")
	require.NoError(t, err)
	assert.Equal(t, "customer", got)

	got, err = p.Input("Module name", "")
	require.NoError(t, err)
	assert.Equal(t, "orders", got)
	assert.Contains(t, out.String(), "Module name [customer]: ")
}

func TestInputRepeatsWithoutDefault(t *testing.T) {
	p, _ := newPrompter("\n\nx\n")
	got, err := p.Input("Service", "")
	require.NoError(t, err)
	assert.Equal(t, "x", got)
}

func TestInputClosed(t *testing.T) {
	p, _ := newPrompter("")
	_, err := p.Input("Service", "")
	assert.ErrorIs(t, err, prompt.ErrInputClosed)
}

func TestSelect(t *testing.T) {
	options := []string{"clean", "modules", "flat"}
	tests := []struct {
		name  string
		input string
		def   string
		want  string
	}{
		{name: "number", input: "2\n", want: "modules"},
		{name: "value", input: "FLAT\n", want: "flat"},
		{name: "empty uses default", input: "\n", def: "modules", want: "modules"},
		{name: "empty uses first", input: "\n", want: "clean"},
		{name: "retry after invalid", input: "9\nnope\n3\n", want: "flat"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newPrompter(tt.input)
			got, err := p.Select("Structure", options, tt.def)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectNoOptions(t *testing.T) {
	p, _ := newPrompter("1\n")
	_, err := p.Select("Service", nil, "")
	assert.ErrorIs(t, err, prompt.ErrNoOptions)
}

func TestMultiSelect(t *testing.T) {
	options := []string{"transport", "contract", "repository", "service", "view-model"}

	p, _ := newPrompter("\n")
	got, err := p.MultiSelect("Layers", options)
	require.NoError(t, err)
	assert.Equal(t, options, got)

	p, out := newPrompter("service, 1, bogus\nservice,2,service\n")
	got, err = p.MultiSelect("Layers", options)
	require.NoError(t, err)
	assert.Equal(t, []string{"contract", "service"}, got)
	assert.Contains(t, out.String(), `invalid choice "bogus"`)
}

func TestNewTerminalRejectsPipes(t *testing.T) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		t.Skip("stdin is a terminal")
	}
	_, err := prompt.NewTerminal()
	assert.ErrorIs(t, err, prompt.ErrNotTerminal)
}
