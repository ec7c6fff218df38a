package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBrazilianCellPhone(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"já formatado", "(11) 98765-4321", "(11) 98765-4321"},
		{"somente dígitos", "11987654321", "(11) 98765-4321"},
		{"com pontuação", "11 9 8765-4321", "(11) 98765-4321"},
		{"fixo com 10 dígitos", "1133334444", ""},
		{"curto demais", "987654321", ""},
		{"longo demais", "5511987654321", ""},
		{"vazio", "", ""},
		{"letras", "telefone", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatBrazilianCellPhone(tc.input))
		})
	}
}

func TestIsBrazilianCellPhone(t *testing.T) {
	assert.True(t, IsBrazilianCellPhone("(21) 99999-0000"))
	assert.True(t, IsBrazilianCellPhone("21999990000"))
	assert.False(t, IsBrazilianCellPhone("(21) 9999-0000"))
	assert.False(t, IsBrazilianCellPhone(""))
}

func TestExtractDigits(t *testing.T) {
	assert.Equal(t, "11987654321", ExtractDigits("(11) 98765-4321"))
	assert.Equal(t, "", ExtractDigits("abc"))
}
