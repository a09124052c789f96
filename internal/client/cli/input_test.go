package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/blindcalc/internal/common"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	require.Equal(t, "hello world", got)
	require.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	require.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.Error(t, err)
}

func TestGetMultiline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "double enter", input: "a\nb\n\n\n", want: "a\nb"},
		{name: "crlf", input: "a\r\nb\r\n\r\n", want: "a\nb"},
		{name: "eof without blank line", input: "a\nb", want: "a\nb"},
		{name: "immediate blank line", input: "\n", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetMultiline(rdr(tt.input), "Enter text", &out)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out, "Passphrase")
	require.NoError(t, err)
	require.Equal(t, []byte("s3cret"), pw)
	require.Equal(t, "Passphrase: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword(&out, "Passphrase")
	require.Error(t, err)
}

func TestParseInteger(t *testing.T) {
	v, err := ParseInteger(" 340282366920938463463374607431768211457 ")
	require.NoError(t, err)
	require.Equal(t, "340282366920938463463374607431768211457", v.String())

	v, err = ParseInteger("-3")
	require.NoError(t, err)
	require.Equal(t, int64(-3), v.Int64())

	for _, bad := range []string{"", "1e6", "0x10", "7/2"} {
		_, err := ParseInteger(bad)
		require.ErrorIs(t, err, common.ErrRange, bad)
	}
}

func TestGetInteger(t *testing.T) {
	var out bytes.Buffer
	v, err := GetInteger(rdr("17\n"), "Value?", &out)
	require.NoError(t, err)
	require.Equal(t, int64(17), v.Int64())
	require.Equal(t, "Value?\n> ", out.String())

	_, err = GetInteger(rdr(""), "Value?", &out)
	require.Error(t, err)
}
