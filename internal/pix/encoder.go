// Package pix builds PIX "copia e cola" payloads in the BR Code text format
// (EMV-QR-CPS). Encoding is one-directional: this system never ingests
// bank-issued payloads, only statement amounts typed by the operator.
package pix

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pedesim/backend/pkg/money"
)

const (
	// gui identifies the PIX arrangement inside the merchant account template.
	gui = "BR.GOV.BCB.PIX"
	// DefaultTXID is used when the organization has no identificador_pix.
	DefaultTXID = "PedeSim"

	maxMerchantName = 25
	maxMerchantCity = 15
	maxTXID         = 25
)

// ErrEmptyKey is returned when the PIX key is missing: encoding must be
// skipped entirely rather than emit a payload no bank can settle.
var ErrEmptyKey = errors.New("pix: empty key")

// Payload holds the parameters of a single payment request.
type Payload struct {
	Key          string  // normalized PIX key (email, cpf, cnpj, phone or random)
	MerchantName string  // tag 59, truncated to 25 chars
	MerchantCity string  // tag 60, truncated to 15 chars
	Amount       float64 // tag 54, rendered with exactly two decimals
	TXID         string  // tag 62/05, whitespace stripped, truncated to 25 chars
}

// Encode serializes p into the BR Code string scanned by banking apps.
// Tag order, length encoding and the CRC variant are a bit-exact external
// contract; any deviation breaks payment for end users.
func Encode(p Payload) (string, error) {
	key := strings.TrimSpace(p.Key)
	if key == "" {
		return "", ErrEmptyKey
	}

	mai := emv("00", gui) + emv("01", key)

	var b strings.Builder
	b.WriteString(emv("00", "01"))
	b.WriteString(emv("26", mai))
	b.WriteString(emv("52", "0000"))
	b.WriteString(emv("53", "986"))
	b.WriteString(emv("54", money.FormatAmount(p.Amount)))
	b.WriteString(emv("58", "BR"))
	b.WriteString(emv("59", truncate(p.MerchantName, maxMerchantName)))
	b.WriteString(emv("60", truncate(p.MerchantCity, maxMerchantCity)))
	b.WriteString(emv("62", emv("05", SanitizeTXID(p.TXID))))
	// tag 63 with its length prefix is written before the checksum is known:
	// the CRC is computed over the payload including "6304".
	b.WriteString("6304")

	payload := b.String()
	return payload + fmt.Sprintf("%04X", crc16CCITTFalse(payload)), nil
}

// SanitizeTXID strips all whitespace and truncates to the 25-char EMV TXID
// limit, falling back to DefaultTXID when nothing is left.
func SanitizeTXID(txid string) string {
	clean := strings.Join(strings.Fields(txid), "")
	if clean == "" {
		return DefaultTXID
	}
	return truncate(clean, maxTXID)
}

// emv renders one tag-length-value field: 2-digit tag, 2-digit zero-padded
// character count, raw value. Nested templates pass their flattened string
// as the value.
func emv(id, value string) string {
	return fmt.Sprintf("%s%02d%s", id, utf8.RuneCountInString(value), value)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// crc16CCITTFalse computes CRC16/CCITT-FALSE: polynomial 0x1021, initial
// value 0xFFFF, no reflection, bytes processed MSB-first.
func crc16CCITTFalse(s string) uint16 {
	crc := uint16(0xFFFF)
	for i := 0; i < len(s); i++ {
		crc ^= uint16(s[i]) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
