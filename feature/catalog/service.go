package catalog

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"romdat/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Service runs the compile pipeline over catalog sources. The storage client
// is optional; it is only touched by the object-based operations.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewService creates a new catalog service.
func NewService(client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// CompileResult summarizes one compile run.
type CompileResult struct {
	// Parsed is the number of records decoded from the input.
	Parsed int
	// Emitted is the number of records surviving canonicalization.
	Emitted int
	// Patches is the number of distinct interned patch payloads.
	Patches int
	// Binary is the compiled table artifact.
	Binary []byte
	// Text is the canonicalized round-trip INI.
	Text []byte
}

// Compile runs the whole pipeline over input, producing both artifacts in
// memory. Nothing touches the filesystem here.
func (s *Service) Compile(input string) (*CompileResult, error) {
	patches := NewPatchTable()
	records, err := Parse(input, patches, s.logger)
	if err != nil {
		return nil, err
	}
	Resolve(records, s.logger)
	final := Canonicalize(records, s.logger)

	bin, err := EmitBinary(final, patches)
	if err != nil {
		return nil, err
	}
	return &CompileResult{
		Parsed:  len(records),
		Emitted: len(final),
		Patches: patches.Len(),
		Binary:  bin,
		Text:    EmitText(final, patches),
	}, nil
}

// CompileFile compiles a local catalog file. Both artifacts are written only
// after the whole pipeline has succeeded; a fatal error leaves no output
// behind. The text form lands next to outPath with an .ini extension.
func (s *Service) CompileFile(inPath, outPath string) (*CompileResult, error) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	res, err := s.Compile(string(data))
	if err != nil {
		return nil, err
	}
	if err := s.writeArtifacts(res, outPath); err != nil {
		return nil, err
	}
	return res, nil
}

// CompileObject fetches the catalog from the configured bucket and compiles
// it, writing artifacts locally like CompileFile.
func (s *Service) CompileObject(ctx context.Context, objectName, outPath string) (*CompileResult, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog object: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog object: %w", err)
	}
	res, err := s.Compile(string(data))
	if err != nil {
		return nil, err
	}
	if err := s.writeArtifacts(res, outPath); err != nil {
		return nil, err
	}
	return res, nil
}

// Upload puts a compiled artifact into the bucket under objectName.
func (s *Service) Upload(ctx context.Context, objectName string, data []byte) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", s.bucket)
	}
	_, err = s.client.PutObject(ctx, s.bucket, objectName,
		strings.NewReader(string(data)), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to upload artifact: %w", err)
	}
	return nil
}

func (s *Service) writeArtifacts(res *CompileResult, outPath string) error {
	if err := os.WriteFile(outPath, res.Binary, 0644); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	textPath := TextPath(outPath)
	if err := os.WriteFile(textPath, res.Text, 0644); err != nil {
		return fmt.Errorf("failed to write canonical ini: %w", err)
	}
	s.logger.Info("artifacts written",
		zap.String("table", outPath),
		zap.String("ini", textPath),
		zap.Int("records", res.Emitted),
		zap.Int("patches", res.Patches))
	return nil
}

// TextPath derives the canonical INI path from the table path.
func TextPath(outPath string) string {
	ext := filepath.Ext(outPath)
	if ext == ".ini" {
		return strings.TrimSuffix(outPath, ext) + ".canonical.ini"
	}
	return strings.TrimSuffix(outPath, ext) + ".ini"
}
