package storage

import (
	"slices"
	"strings"
)

// Size ceilings for uploaded assets.
const (
	MaxModelSize     int64 = 100 << 20
	MaxThumbnailSize int64 = 5 << 20
)

var (
	ModelFormats = []string{"glb", "gltf", "fbx", "obj", "stl", "3ds", "dae"}
	ImageFormats = []string{"jpg", "jpeg", "png", "webp", "gif"}
)

var contentTypes = map[string]string{
	"glb":  "model/gltf-binary",
	"gltf": "model/gltf+json",
	"fbx":  "application/octet-stream",
	"obj":  "text/plain",
	"stl":  "model/stl",
	"3ds":  "application/x-3ds",
	"dae":  "model/vnd.collada+xml",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"webp": "image/webp",
	"gif":  "image/gif",
}

// FileExtension returns the lowercased text after the final dot of filename.
// A name without a dot is its own extension.
func FileExtension(filename string) string {
	if i := strings.LastIndexByte(filename, '.'); i >= 0 {
		return strings.ToLower(filename[i+1:])
	}
	return strings.ToLower(filename)
}

func IsValidModelFormat(filename string) bool {
	return slices.Contains(ModelFormats, FileExtension(filename))
}

func IsValidImageFormat(filename string) bool {
	return slices.Contains(ImageFormats, FileExtension(filename))
}

// ContentType maps filename's extension to a MIME type, defaulting to application/octet-stream.
func ContentType(filename string) string {
	if ct, ok := contentTypes[FileExtension(filename)]; ok {
		return ct
	}
	return "application/octet-stream"
}
