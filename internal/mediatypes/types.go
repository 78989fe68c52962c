package mediatypes

import (
	"path/filepath"
	"strings"
)

// FileType represents the kind of a file.
type FileType string

const (
	// FileTypeImage represents an image file.
	FileTypeImage FileType = "image"
	// FileTypeVideo represents a video file.
	FileTypeVideo FileType = "video"
	// FileTypeOther represents an unknown or unsupported file type.
	FileTypeOther FileType = "other"
)

// ImageExtensions maps file extensions to whether they are supported image formats.
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".svg":  true,
	".ico":  true,
	".tiff": true,
	".tif":  true,
	".heic": true,
	".heif": true,
	".avif": true,
	".jxl":  true,
	".xpm":  true,
	".pnm":  true,
	".tga":  true,
}

// VideoExtensions maps file extensions to whether they are supported video formats.
var VideoExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".avi":  true,
	".mov":  true,
	".wmv":  true,
	".m4v":  true,
	".mpeg": true,
	".mpg":  true,
	".webm": true,
}

// MimeTypes maps file extensions to their MIME types.
var MimeTypes = map[string]string{
	// Images
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
	".heic": "image/heic",
	".heif": "image/heif",
	".avif": "image/avif",
	".jxl":  "image/jxl",

	// Videos
	".mp4":  "video/mp4",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
	".mov":  "video/quicktime",
	".wmv":  "video/x-ms-wmv",
	".m4v":  "video/x-m4v",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
	".webm": "video/webm",
}

// ext returns the lower-cased extension of name.
func ext(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// GetFileType returns the FileType of a file name or path.
func GetFileType(name string) FileType {
	e := ext(name)
	switch {
	case ImageExtensions[e]:
		return FileTypeImage
	case VideoExtensions[e]:
		return FileTypeVideo
	default:
		return FileTypeOther
	}
}

// IsImage reports whether name has an image extension.
func IsImage(name string) bool {
	return ImageExtensions[ext(name)]
}

// GetMimeType returns the MIME type for a file name or path, defaulting to
// application/octet-stream.
func GetMimeType(name string) string {
	if mime, ok := MimeTypes[ext(name)]; ok {
		return mime
	}
	return "application/octet-stream"
}
