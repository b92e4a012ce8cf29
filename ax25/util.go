package ax25

import "strings"

// toValidUTF8Lossy returns a UTF-8 string view of b, substituting the
// Unicode replacement character for any invalid byte sequence.
func toValidUTF8Lossy(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}
