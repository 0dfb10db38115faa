package cnj

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{
			name:   "formatted number in a sentence",
			text:   "Consulta sobre o processo 1234567-89.2023.4.01.1234",
			want:   "12345678920234011234",
			wantOK: true,
		},
		{
			name:   "bare digits",
			text:   "00012345620238260100",
			want:   "00012345620238260100",
			wantOK: true,
		},
		{
			name:   "noise around and inside",
			text:   "nº: 0001234-56.2023.8.26.0100 (urgente!)",
			want:   "00012345620238260100",
			wantOK: true,
		},
		{
			name:   "partial separators",
			text:   "processo 1234567892023.4.011234 por favor",
			want:   "12345678920234011234",
			wantOK: true,
		},
		{
			name:   "first of two numbers wins",
			text:   "1111111-11.2011.4.01.1111 e 2222222-22.2022.8.26.2222",
			want:   "11111111120114011111",
			wantOK: true,
		},
		{
			name:   "chit chat",
			text:   "oi, tudo bem?",
			wantOK: false,
		},
		{
			name:   "too short",
			text:   "1234567-89.2023",
			wantOK: false,
		},
		{
			name:   "empty",
			text:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			if ok {
				assert.Len(t, got, NumberLength)
			}
		})
	}
}

func TestExtractIgnoresSurroundingNoise(t *testing.T) {
	const number = "5001234-12.2024.4.04.7000"
	for _, wrap := range []string{"%s", "Olá! %s", "%s obrigado", "***%s***", "processo:\n%s\n"} {
		text := strings.Replace(wrap, "%s", number, 1)
		got, ok := Extract(text)
		require.True(t, ok, text)
		assert.Equal(t, "50012341220244047000", got)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1234567-89.2023.4.01.1234", Format("12345678920234011234"))
	assert.Equal(t, "123", Format("123"))
}

func TestResolveTribunal(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   string
	}{
		{"trf1", "12345678920234011234", "api_publica_trf1"},
		{"trf4", "50012341220244047000", "api_publica_trf4"},
		{"trf6", "00000000020245060000", "api_publica_trf6"},
		{"tjrj", "00000000020248190001", "api_publica_tjrj"},
		{"tjmg", "00000000020248130001", "api_publica_tjmg"},
		{"tjsc", "00000000020248240001", "api_publica_tjsc"},
		{"unknown code falls back", "00012345620238260100", DefaultTribunal},
		{"zero code falls back", "00000000020230000000", DefaultTribunal},
		{"year digits are not the court code", "00000000020008010000", "api_publica_trf1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveTribunal(tt.number)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveTribunalEveryTableEntry(t *testing.T) {
	for code, alias := range tribunals {
		number := "00000000020234" + code + "0000"
		got, err := ResolveTribunal(number)
		require.NoError(t, err)
		assert.Equal(t, alias, got, "code %s", code)
	}
	assert.Len(t, tribunals, 12)
}

func TestResolveTribunalWrongLength(t *testing.T) {
	for _, number := range []string{"", "123", "1234567892023401123", "123456789202340112345"} {
		_, err := ResolveTribunal(number)
		assert.ErrorIs(t, err, ErrInvalidLength, number)
	}
}
