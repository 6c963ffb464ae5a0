package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"goaguide/directory-service/internal/app/directory/util"
	"goaguide/pkg/metrics"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultUploadFolder = "reviews"

	uploadConcurrency = 4
)

// uploadFolders - разрешенные префиксы объектов в хранилище
var uploadFolders = map[string]bool{
	"reviews":    true,
	"businesses": true,
	"logos":      true,
}

// allowedImageTypes - допустимые типы по содержимому файла и расширение объекта
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadService проверяет изображения и сохраняет их в объектное хранилище
type UploadService struct {
	storage     util.ObjectStorage
	maxFiles    int
	maxFileSize int64
}

func NewUploadService(storage util.ObjectStorage, maxFiles int, maxFileSize int64) *UploadService {
	return &UploadService{
		storage:     storage,
		maxFiles:    maxFiles,
		maxFileSize: maxFileSize,
	}
}

type preparedFile struct {
	header      *multipart.FileHeader
	contentType string
	key         string
}

// Upload проверяет все файлы и только затем загружает их параллельно.
// Порядок URL совпадает с порядком файлов.
func (s *UploadService) Upload(ctx context.Context, folder string, files []*multipart.FileHeader) ([]string, error) {
	if folder == "" {
		folder = DefaultUploadFolder
	}
	if !uploadFolders[folder] {
		return nil, ErrInvalidFolder
	}

	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if len(files) > s.maxFiles {
		return nil, fmt.Errorf("%w: maximum %d files allowed", ErrTooManyFiles, s.maxFiles)
	}

	prepared := make([]preparedFile, 0, len(files))
	for _, fh := range files {
		p, err := s.prepare(folder, fh)
		if err != nil {
			metrics.UploadedFiles.WithLabelValues(folder, "rejected").Inc()
			return nil, err
		}
		prepared = append(prepared, p)
	}

	urls := make([]string, len(prepared))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)
	for i, p := range prepared {
		g.Go(func() error {
			url, err := s.put(gctx, p)
			if err != nil {
				metrics.UploadedFiles.WithLabelValues(folder, "error").Inc()
				return err
			}
			metrics.UploadedFiles.WithLabelValues(folder, "success").Inc()
			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to upload files: %w", err)
	}
	return urls, nil
}

// prepare проверяет размер и тип файла по его содержимому
func (s *UploadService) prepare(folder string, fh *multipart.FileHeader) (preparedFile, error) {
	if fh.Size > s.maxFileSize {
		return preparedFile{}, fmt.Errorf("%w: %s (maximum size is %dMB)", ErrFileTooLarge, fh.Filename, s.maxFileSize>>20)
	}

	f, err := fh.Open()
	if err != nil {
		return preparedFile{}, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return preparedFile{}, fmt.Errorf("failed to detect type of %s: %w", fh.Filename, err)
	}

	for contentType, ext := range allowedImageTypes {
		if mtype.Is(contentType) {
			return preparedFile{
				header:      fh,
				contentType: contentType,
				key:         folder + "/" + uuid.NewString() + ext,
			}, nil
		}
	}

	return preparedFile{}, fmt.Errorf("%w: %s (%s); only JPEG, PNG, GIF and WebP are allowed", ErrUnsupportedFileType, fh.Filename, mtype.String())
}

func (s *UploadService) put(ctx context.Context, p preparedFile) (string, error) {
	f, err := p.header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", p.header.Filename, err)
	}
	defer f.Close()

	return s.storage.PutObject(ctx, p.key, f, p.header.Size, p.contentType)
}
