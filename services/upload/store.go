// Package uploadsvc stores opportunity documents on local disk or S3,
// selected by configuration.
package uploadsvc

import (
	"regexp"
	"strings"

	"github.com/trezcool/beacon/core"
)

// refIDLength is the length of generated document reference ids.
const refIDLength = 6

// NewStore returns the document store selected by conf.Upload.
func NewStore(conf *core.Config, logger core.Logger) (core.DocumentStore, error) {
	if conf.Upload.UseS3 {
		return NewS3Store(conf, logger)
	}
	return NewLocalStore(conf), nil
}

var invalidFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// sanitizeFilename strips path separators and characters that could escape
// the upload root. A name made only of traversal characters comes out empty.
func sanitizeFilename(name string) string {
	name = strings.NewReplacer("/", " ", "\\", " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = invalidFilenameChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}
