package filekey

// defaultCodec backs the package-level convenience functions.
var defaultCodec = New()

// EncodeApplicationID encodes an application ID using the default codec
// (62-character alphanumeric alphabet, 12-character prefix).
func EncodeApplicationID(appID string) (string, error) {
	return defaultCodec.EncodeApplicationID(appID)
}

// GenerateFileKey derives a file key using the default codec.
func GenerateFileKey(appID, seed string) (string, error) {
	return defaultCodec.GenerateFileKey(appID, seed)
}
