package utils

import qrcode "github.com/skip2/go-qrcode"

// GenerateQRCode gera um PNG com o conteúdo informado
func GenerateQRCode(content string, size int) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, size)
}
