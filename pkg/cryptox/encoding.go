package cryptox

import "encoding/base64"

// PHC strings use unpadded standard base64.
func base64Encode(b []byte) string {
	return base64.RawStdEncoding.EncodeToString(b)
}

func base64Decode(s string) ([]byte, error) {
	return base64.RawStdEncoding.DecodeString(s)
}
