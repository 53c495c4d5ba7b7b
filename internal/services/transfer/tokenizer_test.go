package transfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	cases := []struct {
		name string
		line string
		want []string
	}{
		{"plain", `2024-01-02,Bread,food,-2.50,USD`, []string{"2024-01-02", "Bread", "food", "-2.50", "USD"}},
		{"quoted comma", `2024-01-02,"Rent, March",housing,-300`, []string{"2024-01-02", "Rent, March", "housing", "-300"}},
		{"doubled quotes", `"He said ""hi""",x`, []string{`He said "hi"`, "x"}},
		{"empty fields", `a,,c,`, []string{"a", "", "c", ""}},
		{"empty quoted", `"",b`, []string{"", "b"}},
		{"blank around quoted", `a, "b" ,c`, []string{"a", "b", "c"}},
		{"quote inside unquoted", `5" screen,x`, []string{`5" screen`, "x"}},
		{"single field", `only`, []string{"only"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseLine(tc.line)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseLine_Errors(t *testing.T) {
	_, err := ParseLine(`a,"unterminated`)
	assert.ErrorIs(t, err, ErrUnterminatedQuote)

	_, err = ParseLine(`"closed"junk,b`)
	assert.ErrorIs(t, err, ErrTextAfterQuote)
}

func TestQuoteRoundTrip(t *testing.T) {
	for _, s := range []string{"", "plain", "a,b", `say "x"`, `"`, `,",`} {
		got, err := ParseLine(quote(s) + "," + quote(s))
		require.NoError(t, err)
		assert.Equal(t, []string{s, s}, got)
	}
}
