// Package cloudwriter abstracts object-storage uploads for parquet exports.
package cloudwriter

// CloudWriter buffers export bytes and flushes them to the object store on
// Close.
type CloudWriter interface {
	Write(data []byte) (int, error)
	Close() error
}

// CloudWriterFactory opens writers for individual export objects.
type CloudWriterFactory interface {
	NewWriter(bucket, objectPath string) (CloudWriter, error)
}
