package helpers

import (
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/wickstudio/autoresponder/cache"
	"github.com/wickstudio/autoresponder/models"
)

const responsesFilePerm = 0644

// responsesJSON writes non-ASCII text as is, four spaces indent, sorted keys
var responsesJSON = jsoniter.Config{
	EscapeHTML:    false,
	SortMapKeys:   true,
	IndentionStep: 4,
}.Froze()

// ResponseStore persists the response map in a single JSON file.
// Every Load reads the file again, nothing is cached between calls.
type ResponseStore struct {
	path string
}

func NewResponseStore(path string) *ResponseStore {
	return &ResponseStore{path: path}
}

func (s *ResponseStore) Path() string {
	return s.path
}

// Load reads the response map. A missing file is created with the default responses first.
func (s *ResponseStore) Load() (models.ResponseMap, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			defaults := models.DefaultResponses()
			if err = s.Save(defaults); err != nil {
				return nil, err
			}
			cache.GetLogger().WithField("module", "responses").Infof("created %s with %d default responses", s.path, len(defaults))
			return defaults, nil
		}
		return nil, errors.Wrapf(ErrStorageCorrupt, "read %s: %v", s.path, err)
	}

	var responses models.ResponseMap
	if err = responsesJSON.Unmarshal(data, &responses); err != nil {
		return nil, errors.Wrapf(ErrStorageCorrupt, "parse %s: %v", s.path, err)
	}
	if responses == nil {
		return nil, errors.Wrapf(ErrStorageCorrupt, "parse %s: not a JSON object", s.path)
	}
	if _, ok := responses[""]; ok {
		return nil, errors.Wrapf(ErrStorageCorrupt, "parse %s: empty trigger", s.path)
	}

	return responses, nil
}

// Save replaces the file with $responses. The map is written to a temporary file next to
// the target and renamed over it, readers see either the old or the new map.
func (s *ResponseStore) Save(responses models.ResponseMap) (err error) {
	if responses == nil {
		responses = models.ResponseMap{}
	}

	data, err := responsesJSON.Marshal(responses)
	if err != nil {
		return errors.Wrapf(ErrStorageUnwritable, "encode: %v", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return errors.Wrapf(ErrStorageUnwritable, "create temp in %s: %v", dir, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return errors.Wrapf(ErrStorageUnwritable, "write %s: %v", tmpPath, err)
	}
	if err = tmp.Sync(); err != nil {
		return errors.Wrapf(ErrStorageUnwritable, "sync %s: %v", tmpPath, err)
	}
	if err = tmp.Chmod(responsesFilePerm); err != nil {
		return errors.Wrapf(ErrStorageUnwritable, "chmod %s: %v", tmpPath, err)
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(ErrStorageUnwritable, "close %s: %v", tmpPath, err)
	}
	if err = os.Rename(tmpPath, s.path); err != nil {
		return errors.Wrapf(ErrStorageUnwritable, "rename to %s: %v", s.path, err)
	}

	return nil
}

// EnsureDefaults creates the file with the default responses if it does not exist yet
func (s *ResponseStore) EnsureDefaults() (created bool, err error) {
	_, err = os.Stat(s.path)
	if err == nil {
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, errors.Wrapf(ErrStorageCorrupt, "stat %s: %v", s.path, err)
	}

	if err = s.Save(models.DefaultResponses()); err != nil {
		return false, err
	}
	return true, nil
}
