package helper

import (
	"regexp"
	"strings"
)

// Celular brasileiro: (XX) 9XXXX-XXXX
var brazilMobileRegex = regexp.MustCompile(`^\(\d{2}\) \d{5}-\d{4}$`)

func ExtractDigits(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatBrazilianCellPhone normaliza para (XX) 9XXXX-XXXX.
// Retorna "" quando o número não tem 11 dígitos.
func FormatBrazilianCellPhone(value string) string {
	if value == "" {
		return ""
	}

	digits := ExtractDigits(value)
	if len(digits) != 11 {
		return ""
	}

	return "(" + digits[0:2] + ") " + digits[2:7] + "-" + digits[7:]
}

func IsBrazilianCellPhone(value string) bool {
	if value == "" {
		return false
	}
	if brazilMobileRegex.MatchString(value) {
		return true
	}
	return FormatBrazilianCellPhone(value) != ""
}
