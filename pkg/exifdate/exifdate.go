// Package exifdate reads embedded capture dates from image files.
package exifdate

import (
	"os"

	"github.com/rwcarlsen/goexif/exif"
)

// Reader extracts EXIF date-time tags. It implements router.MetadataReader.
type Reader struct{}

// DateTime returns the raw "YYYY:MM:DD HH:MM:SS" value of the file's
// capture-time tag, preferring DateTimeOriginal over the generic DateTime.
// Files without readable EXIF data report absence, not an error.
func (Reader) DateTime(path string) (string, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", false, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		// Undecodable or EXIF-less files are simply dateless.
		return "", false, nil
	}

	if value, ok := tagString(x, exif.DateTimeOriginal); ok {
		return value, true, nil
	}
	if value, ok := tagString(x, exif.DateTime); ok {
		return value, true, nil
	}
	return "", false, nil
}

func tagString(x *exif.Exif, name exif.FieldName) (string, bool) {
	tag, err := x.Get(name)
	if err != nil {
		return "", false
	}
	value, err := tag.StringVal()
	if err != nil || value == "" {
		return "", false
	}
	return value, true
}
