package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/export"
	"alcyxob/fitness-tracker/internal/repository"
	"alcyxob/fitness-tracker/internal/storage"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/multierr"
)

// --- Error Definitions ---
var (
	ErrExportNotFound = errors.New("export not found")
	ErrInvalidRange   = errors.New("invalid date range")
)

// MaxExportDays bounds the history a single export may cover.
const MaxExportDays = 366

// ExportResult is a stored export plus a short-lived link to the file.
type ExportResult struct {
	Export      *domain.Export `json:"export"`
	DownloadURL string         `json:"downloadUrl"`
}

type ExportService interface {
	ExportHistory(ctx context.Context, userID primitive.ObjectID, from, to string) (*ExportResult, error)
	GetExportDownloadURL(ctx context.Context, userID, exportID primitive.ObjectID) (string, error)
}

type exportService struct {
	dayRepo    repository.WorkoutDayRepository
	exportRepo repository.ExportRepository
	storage    storage.FileStorage
	urlExpiry  time.Duration
	newID      func() string
}

func NewExportService(
	dayRepo repository.WorkoutDayRepository,
	exportRepo repository.ExportRepository,
	fileStorage storage.FileStorage,
	urlExpiry time.Duration,
) ExportService {
	if urlExpiry <= 0 {
		urlExpiry = storage.DefaultPresignedURLExpiry
	}
	return &exportService{
		dayRepo:    dayRepo,
		exportRepo: exportRepo,
		storage:    fileStorage,
		urlExpiry:  urlExpiry,
		newID:      uuid.NewString,
	}
}

// ExportHistory renders the user's sets between from and to as CSV, stores the
// file and returns its metadata with a download URL.
func (s *exportService) ExportHistory(ctx context.Context, userID primitive.ObjectID, from, to string) (*ExportResult, error) {
	fromDate, err := parseDate(from)
	if err != nil {
		return nil, err
	}
	toDate, err := parseDate(to)
	if err != nil {
		return nil, err
	}
	if span := domain.DaysBetween(fromDate, toDate); span < 0 || span >= MaxExportDays {
		return nil, fmt.Errorf("%w: %s..%s must be ordered and span at most %d days", ErrInvalidRange, from, to, MaxExportDays)
	}

	days, err := s.dayRepo.ListByUserInRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load workout history: %w", err)
	}

	buf := &bytes.Buffer{}
	rows, err := export.WriteCSV(buf, days)
	if err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("exports/%s/%s.csv", userID.Hex(), s.newID())
	size := int64(buf.Len())
	if err = s.storage.PutObject(ctx, objectKey, export.ContentType, buf, size); err != nil {
		return nil, err
	}

	record := &domain.Export{
		UserID:      userID,
		S3ObjectKey: objectKey,
		From:        from,
		To:          to,
		Rows:        rows,
		Size:        size,
	}
	exportID, err := s.exportRepo.Create(ctx, record)
	if err != nil {
		// no metadata means nobody can reach the object, remove it
		return nil, multierr.Combine(
			fmt.Errorf("save export: %w", err),
			s.storage.DeleteObject(ctx, objectKey),
		)
	}
	record.ID = exportID

	url, err := s.storage.GeneratePresignedDownloadURL(ctx, objectKey, s.urlExpiry)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"user": userID.Hex(), "rows": rows, "key": objectKey}).Info("history exported")
	return &ExportResult{Export: record, DownloadURL: url}, nil
}

func (s *exportService) GetExportDownloadURL(ctx context.Context, userID, exportID primitive.ObjectID) (string, error) {
	record, err := s.exportRepo.GetByID(ctx, exportID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrExportNotFound
		}
		return "", err
	}
	// other users' exports are reported as missing
	if record.UserID != userID {
		return "", ErrExportNotFound
	}
	return s.storage.GeneratePresignedDownloadURL(ctx, record.S3ObjectKey, s.urlExpiry)
}
