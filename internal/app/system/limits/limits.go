// internal/app/system/limits/limits.go
package limits

// Request body and upload limits. These keep a single oversized request from
// exhausting memory, and mirror the product rules for the upload tools.
const (
	// MaxJSONBodySize bounds JSON API request bodies.
	MaxJSONBodySize = 1 << 20 // 1 MB

	// MaxMergeFiles is the maximum number of PDFs accepted by one merge.
	MaxMergeFiles = 35

	// MaxMergeFileSize bounds each individual PDF in a merge.
	MaxMergeFileSize = 10 << 20 // 10 MB

	// MaxMergeFormSize bounds the whole merge multipart form.
	MaxMergeFormSize = MaxMergeFiles * MaxMergeFileSize

	// MaxImageFiles is the maximum number of images per image-to-PDF request.
	MaxImageFiles = 35

	// MaxImageFileSize bounds each uploaded image.
	MaxImageFileSize = 10 << 20 // 10 MB

	// MaxMediaFileSize bounds a notification media attachment.
	MaxMediaFileSize = 25 << 20 // 25 MB
)
