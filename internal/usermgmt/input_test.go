package usermgmt

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompt(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("  alice  \nrest"))

	got, err := Prompt(r, "Username: ", &out)
	require.NoError(t, err)
	assert.Equal(t, "alice", got)
	assert.Equal(t, "Username: ", out.String())

	// partial line before EOF
	got, err = Prompt(r, "Next: ", &out)
	require.NoError(t, err)
	assert.Equal(t, "rest", got)

	_, err = Prompt(r, "More: ", &out)
	assert.Error(t, err)
}

func TestPromptPassword(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
	var out bytes.Buffer
	pw, err := PromptPassword("Password: ", &out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)
	assert.Equal(t, "Password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("no tty") }
	_, err = PromptPassword("Password: ", &out)
	assert.EqualError(t, err, "no tty")
}

func TestConfirm(t *testing.T) {
	for input, want := range map[string]bool{
		"y\n":    true,
		"YES\n":  true,
		"n\n":    false,
		"\n":     false,
		"sure\n": false,
	} {
		var out bytes.Buffer
		got, err := Confirm(bufio.NewReader(strings.NewReader(input)), "Delete?", &out)
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", input)
		assert.Equal(t, "Delete? (y/N): ", out.String())
	}
}
