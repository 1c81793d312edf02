package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/afero"

	"visitors/internal/models"
	"visitors/internal/providers"
	"visitors/internal/structures"
	"visitors/internal/validator"
)

const (
	// Dir is the fixed folder, relative to the filesystem root, holding every record.
	Dir = "visitors"

	filePrefix = "visitor_"
	fileExt    = ".json"
	dateLayout = "2006-01-02"

	defaultDirMode  os.FileMode = 0o755
	defaultFileMode os.FileMode = 0o644
)

var whitespaceRun = regexp.MustCompile(`\s+`)

type RecordStoreInterface interface {
	Save(ctx context.Context, candidate *models.Candidate) (*models.Visitor, error)
	Load(ctx context.Context, fullName string) (*models.Visitor, error)
	HasDir() bool
	Cleanup() (bool, error)
}

// RecordStore keeps one JSON file per visitor under Dir.
type RecordStore struct {
	fs       afero.Fs
	ids      models.IDGenerator
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	cache    providers.VisitorCacheInterface
	dirMode  os.FileMode
	fileMode os.FileMode
}

// visitorDocument is the on-disk shape written by Save. Keys keep this order.
type visitorDocument struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"fullName"`
	Age          int       `json:"age"`
	DateOfVisit  time.Time `json:"dateOfVisit"`
	TimeOfVisit  string    `json:"timeOfVisit"`
	Comments     string    `json:"comments"`
	AssistorName string    `json:"assistorName"`
}

// storedVisitor is what Load accepts back. id and fullName must be present.
type storedVisitor struct {
	ID           *int64  `json:"id"`
	FullName     *string `json:"fullName"`
	Age          int     `json:"age"`
	DateOfVisit  string  `json:"dateOfVisit"`
	TimeOfVisit  string  `json:"timeOfVisit"`
	Comments     string  `json:"comments"`
	AssistorName string  `json:"assistorName"`
}

func NewRecordStore(fs afero.Fs, ids models.IDGenerator, conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, cache providers.VisitorCacheInterface) *RecordStore {
	dirMode, fileMode := defaultDirMode, defaultFileMode
	if conf.Store.DirMode != 0 {
		dirMode = os.FileMode(conf.Store.DirMode)
	}
	if conf.Store.FileMode != 0 {
		fileMode = os.FileMode(conf.Store.FileMode)
	}
	return &RecordStore{
		fs:       fs,
		ids:      ids,
		logger:   logger,
		metrics:  metrics,
		cache:    cache,
		dirMode:  dirMode,
		fileMode: fileMode,
	}
}

// FilePath derives the record location for fullName: lower-cased, each
// whitespace run collapsed to "_", inside Dir.
func FilePath(fullName string) string {
	sanitized := whitespaceRun.ReplaceAllString(strings.ToLower(fullName), "_")
	return filepath.Join(Dir, filePrefix+sanitized+fileExt)
}

// Save validates candidate and writes it to a new file. An existing file is
// never overwritten.
func (s *RecordStore) Save(ctx context.Context, candidate *models.Candidate) (*models.Visitor, error) {
	start := time.Now()
	visitor, err := s.save(ctx, candidate)
	s.observe(providers.OpSave, providers.TypeWrite, start, err)
	return visitor, err
}

func (s *RecordStore) save(ctx context.Context, candidate *models.Candidate) (*models.Visitor, error) {
	if err := validator.ValidateCandidate(candidate); err != nil {
		return nil, err
	}

	doc, err := newDocument(candidate)
	if err != nil {
		return nil, err
	}

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	path := FilePath(doc.FullName)
	_, err = s.fs.Stat(path)
	if err == nil {
		return nil, &models.FileExistsError{Path: path}
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	if err = s.fs.MkdirAll(Dir, s.dirMode); err != nil {
		return nil, &models.WriteFailureError{Cause: err}
	}

	data, err := encodeDocument(doc)
	if err != nil {
		return nil, &models.WriteFailureError{Cause: err}
	}

	if err = s.createFile(path, data); err != nil {
		return nil, err
	}

	s.logger.Infof(providers.TypeWrite, "Data saved to JSON file successfully!")
	return doc.visitor(), nil
}

// createFile writes data to a file that must not exist yet. The exclusive
// create flag turns a lost race after the Stat probe into FileExists.
func (s *RecordStore) createFile(path string, data []byte) error {
	file, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, s.fileMode)
	if err != nil {
		if os.IsExist(err) {
			return &models.FileExistsError{Path: path}
		}
		return &models.WriteFailureError{Cause: err}
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		s.discard(path)
		return &models.WriteFailureError{Cause: err}
	}

	if err = file.Sync(); err != nil {
		file.Close()
		s.discard(path)
		return &models.WriteFailureError{Cause: err}
	}

	if err = file.Close(); err != nil {
		s.discard(path)
		return &models.WriteFailureError{Cause: err}
	}
	return nil
}

// discard removes a partially written record. A file left behind would block
// every later save under the same name, so the failure is logged.
func (s *RecordStore) discard(path string) {
	if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warnf(providers.TypeWrite, "Unable to remove partial file %s: %s", path, err)
	}
}

// Load reads the record stored for fullName. The name is checked before
// the cache or the filesystem is touched. A cached record is only returned
// while its file still exists.
func (s *RecordStore) Load(ctx context.Context, fullName string) (*models.Visitor, error) {
	start := time.Now()
	visitor, err := s.load(ctx, fullName)
	s.observe(providers.OpLoad, providers.TypeRead, start, err)
	return visitor, err
}

func (s *RecordStore) load(ctx context.Context, fullName string) (*models.Visitor, error) {
	if err := validator.ValidateFullName(strings.ToLower(fullName)); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := FilePath(fullName)
	if cached, ok := s.cached(path); ok {
		return s.rebuild(cached), nil
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, &models.ReadFailureError{Cause: err}
	}

	stored, err := decodeStored(data)
	if err != nil {
		return nil, &models.ReconstructionError{Cause: err}
	}

	s.cache.Put(path, stored)
	return s.rebuild(stored), nil
}

// cached returns the cached record for path if its file is still there. An
// entry whose file is gone is evicted so the read below reports it missing.
func (s *RecordStore) cached(path string) (*models.Visitor, bool) {
	visitor, ok := s.cache.Get(path)
	if !ok {
		return nil, false
	}
	if _, err := s.fs.Stat(path); err != nil {
		s.cache.Delete(path)
		return nil, false
	}
	return visitor, true
}

// rebuild constructs a fresh record, which draws an id, then restores the
// persisted one.
func (s *RecordStore) rebuild(stored *models.Visitor) *models.Visitor {
	visitor := models.NewVisitor(s.ids, stored.FullName, stored.Age, stored.DateOfVisit, stored.TimeOfVisit, stored.Comments, stored.AssistorName)
	visitor.ID = stored.ID
	return visitor
}

func decodeStored(data []byte) (*models.Visitor, error) {
	var doc *storedVisitor
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	switch {
	case doc == nil:
		return nil, errors.New("visitor document is empty")
	case doc.ID == nil:
		return nil, errors.New("visitor document has no id")
	case doc.FullName == nil:
		return nil, errors.New("visitor document has no fullName")
	}
	return &models.Visitor{
		ID:           *doc.ID,
		FullName:     *doc.FullName,
		Age:          doc.Age,
		DateOfVisit:  doc.DateOfVisit,
		TimeOfVisit:  doc.TimeOfVisit,
		Comments:     doc.Comments,
		AssistorName: doc.AssistorName,
	}, nil
}

func (s *RecordStore) HasDir() bool {
	ok, err := afero.DirExists(s.fs, Dir)
	return err == nil && ok
}

// Cleanup removes Dir when it exists and holds no records.
func (s *RecordStore) Cleanup() (bool, error) {
	return RemoveIfEmpty(s.fs, Dir)
}

func (s *RecordStore) observe(op string, logType providers.TypeEnum, start time.Time, err error) {
	s.metrics.ObservePersistenceDuration(op, time.Since(start))
	kind := models.KindOf(err)
	s.metrics.IncStoreResult(op, string(kind))
	if err != nil {
		s.logger.Warnf(logType, "%s failed (%s): %s", op, kind, err)
	}
}

func newDocument(c *models.Candidate) (*visitorDocument, error) {
	age, _ := validator.IntegerValue(c.Age)
	dateText := c.DateOfVisit.(string)

	date, err := time.Parse(dateLayout, dateText)
	if err != nil {
		rule, _ := validator.RuleFor(validator.ParamDateOfVisit)
		return nil, &models.FieldValidationError{
			Value:    dateText,
			Param:    rule.Param,
			Expected: rule.Expected,
		}
	}

	return &visitorDocument{
		ID:           c.ID,
		FullName:     c.FullName.(string),
		Age:          age,
		DateOfVisit:  date.UTC(),
		TimeOfVisit:  c.TimeOfVisit.(string),
		Comments:     c.Comments.(string),
		AssistorName: c.AssistorName.(string),
	}, nil
}

func encodeDocument(doc *visitorDocument) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (d *visitorDocument) visitor() *models.Visitor {
	return &models.Visitor{
		ID:           d.ID,
		FullName:     d.FullName,
		Age:          d.Age,
		DateOfVisit:  d.DateOfVisit.Format(time.RFC3339Nano),
		TimeOfVisit:  d.TimeOfVisit,
		Comments:     d.Comments,
		AssistorName: d.AssistorName,
	}
}
