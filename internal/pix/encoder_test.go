package pix

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseTLV splits a flat EMV string into tag -> value. Values of nested
// templates come back as their raw flattened string.
func parseTLV(t *testing.T, s string) map[string]string {
	t.Helper()
	fields := map[string]string{}
	for i := 0; i < len(s); {
		require.LessOrEqual(t, i+4, len(s), "truncated TLV header at %d in %q", i, s)
		tag := s[i : i+2]
		length, err := strconv.Atoi(s[i+2 : i+4])
		require.NoError(t, err, "bad length for tag %s", tag)
		require.LessOrEqual(t, i+4+length, len(s), "value of tag %s overruns payload", tag)
		fields[tag] = s[i+4 : i+4+length]
		i += 4 + length
	}
	return fields
}

func TestEncodeRoundTrip(t *testing.T) {
	out, err := Encode(Payload{
		Key:          "pix@clube.org.br",
		MerchantName: "N",
		MerchantCity: "C",
		Amount:       70.01,
		TXID:         "PizzaAmigos",
	})
	require.NoError(t, err)

	fields := parseTLV(t, out)
	assert.Equal(t, "01", fields["00"])
	assert.Equal(t, "0000", fields["52"])
	assert.Equal(t, "986", fields["53"])
	assert.Equal(t, "70.01", fields["54"])
	assert.Equal(t, "BR", fields["58"])
	assert.Equal(t, "N", fields["59"])
	assert.Equal(t, "C", fields["60"])

	mai := parseTLV(t, fields["26"])
	assert.Equal(t, "BR.GOV.BCB.PIX", mai["00"])
	assert.Equal(t, "pix@clube.org.br", mai["01"])

	extra := parseTLV(t, fields["62"])
	assert.Equal(t, "PizzaAmigos", extra["05"])
}

func TestEncodeChecksum(t *testing.T) {
	out, err := Encode(Payload{Key: "11999990000", Amount: 35.00, TXID: "DPTest"})
	require.NoError(t, err)

	require.Greater(t, len(out), 8)
	body, crc := out[:len(out)-4], out[len(out)-4:]
	assert.True(t, strings.HasSuffix(body, "6304"), "payload must end with the 6304 marker before the CRC")
	assert.Equal(t, fmt.Sprintf("%04X", crc16CCITTFalse(body)), crc)
	assert.Equal(t, strings.ToUpper(crc), crc)
}

func TestCRC16CheckValue(t *testing.T) {
	// standard CRC16/CCITT-FALSE check value
	assert.Equal(t, uint16(0x29B1), crc16CCITTFalse("123456789"))
}

func TestEncodeTruncation(t *testing.T) {
	out, err := Encode(Payload{
		Key:          "chave-aleatoria-0000",
		MerchantName: "Associacao Amigos do Paraiso Central",
		MerchantCity: "Sao Jose dos Campos",
		Amount:       140.02,
		TXID:         "Pizza Amigos Paraiso Campanha Outubro",
	})
	require.NoError(t, err)

	fields := parseTLV(t, out)
	assert.Equal(t, "Associacao Amigos do Para", fields["59"])
	assert.Len(t, fields["59"], 25)
	assert.Equal(t, "Sao Jose dos Ca", fields["60"])
	assert.Len(t, fields["60"], 15)

	extra := parseTLV(t, fields["62"])
	assert.Equal(t, "PizzaAmigosParaisoCampanh", extra["05"])
	assert.NotContains(t, extra["05"], " ")
	assert.Len(t, extra["05"], 25)
}

func TestEncodeEmptyKey(t *testing.T) {
	for _, key := range []string{"", "   "} {
		_, err := Encode(Payload{Key: key, Amount: 10})
		assert.ErrorIs(t, err, ErrEmptyKey)
	}
}

func TestSanitizeTXID(t *testing.T) {
	assert.Equal(t, "PedeSim", SanitizeTXID(""))
	assert.Equal(t, "PedeSim", SanitizeTXID("  \t "))
	assert.Equal(t, "CampanhaOutubro", SanitizeTXID("Campanha Outubro"))
	assert.Len(t, SanitizeTXID(strings.Repeat("x", 40)), 25)
}
