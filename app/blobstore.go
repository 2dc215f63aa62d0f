package app

// BlobStore is the file storage collaborator. Upload stores the full byte
// content under the key; URL returns the durable public locator for a stored
// key.
type BlobStore interface {
	Upload(key string, data []byte) error
	URL(key string) string
}
