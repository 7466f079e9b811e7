package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	got, err := parseTime("2026-04-01T08:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 4, 1, 8, 30, 0, 0, time.UTC), got.UTC())

	got, err = parseTime("2026-04-01 08:30")
	require.NoError(t, err)
	assert.Equal(t, 8, got.Hour())
	assert.Equal(t, time.Local, got.Location())

	_, err = parseTime("next tuesday")
	assert.Error(t, err)
}

func TestConfirm(t *testing.T) {
	defer func() { assumeYes = false }()

	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tc := range cases {
		cmd := &cobra.Command{}
		var prompt bytes.Buffer
		cmd.SetIn(strings.NewReader(tc.input))
		cmd.SetErr(&prompt)

		assert.Equal(t, tc.want, confirm(cmd, "Delete?"), "input %q", tc.input)
		assert.Equal(t, "Delete? [y/N] ", prompt.String())
	}

	assumeYes = true
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader(""))
	assert.True(t, confirm(cmd, "Delete?"))
}

func TestEmitFormats(t *testing.T) {
	defer func() { formatFlag = "json" }()

	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	emit(cmd, map[string]int{"n": 1}, func(w io.Writer) { w.Write([]byte("text\n")) })
	assert.JSONEq(t, `{"n":1}`, out.String())

	out.Reset()
	formatFlag = "text"
	emit(cmd, map[string]int{"n": 1}, func(w io.Writer) { w.Write([]byte("text\n")) })
	assert.Equal(t, "text\n", out.String())
}
