package utils

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// PublicMenuURL คือ URL ที่ลูกค้าเปิดจากการสแกน QR
func PublicMenuURL(baseURL string, menuID uint) string {
	return fmt.Sprintf("%s/%d", strings.TrimRight(baseURL, "/"), menuID)
}

// MenuQRCode คืน PNG ของ QR ที่ชี้ไปยังเมนู
func MenuQRCode(baseURL string, menuID uint, size int) ([]byte, error) {
	if size < 128 || size > 1024 {
		size = 256
	}
	return qrcode.Encode(PublicMenuURL(baseURL, menuID), qrcode.Medium, size)
}
