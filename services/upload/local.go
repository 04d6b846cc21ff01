package uploadsvc

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/trezcool/beacon/core"
)

// localStore saves documents under a root directory on local disk.
type localStore struct {
	root string
}

var _ core.DocumentStore = (*localStore)(nil)

func NewLocalStore(conf *core.Config) *localStore {
	return &localStore{root: conf.Upload.Destination}
}

func (s localStore) Save(ctx context.Context, doc *core.Document) (string, string, error) {
	if doc == nil || doc.Content == nil {
		return "", "", nil
	}
	filename := sanitizeFilename(doc.Filename)
	if filename == "" {
		return "", "", nil
	}

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", "", errors.Wrap(err, "creating upload dir")
	}

	fpath := filepath.Join(s.root, filename)
	f, err := os.Create(fpath)
	if err != nil {
		return "", "", errors.Wrap(err, "creating document file")
	}
	defer func() { _ = f.Close() }()

	if _, err = io.Copy(f, doc.Content); err != nil {
		return "", "", errors.Wrap(err, "writing document file")
	}
	return filename, fpath, nil
}
