// Package service retrieves and opens a dependent's encrypted medical
// document. The document is decrypted here rather than handed to the
// client raw so that "no document", "cannot decrypt", and "here is your
// PDF" stay three distinct outcomes.
package service

import (
	"context"
	"errors"
	"log/slog"

	"rutasegura/internal/dependent/models"
	"rutasegura/internal/medrecord/codec"
	dErrors "rutasegura/pkg/domain-errors"
	"rutasegura/pkg/platform/sentinel"
)

// DependentStore is the subset of dependent persistence this service reads.
type DependentStore interface {
	FindByRUT(ctx context.Context, rut string) (*models.Dependent, error)
}

// Document is a decrypted medical record ready for display.
type Document struct {
	FileName string `json:"fileName"`
	DataURI  string `json:"dataUri"`
}

type Metrics interface {
	IncrementDocumentOpened()
	IncrementDecryptionFailure()
}

type Service struct {
	dependents DependentStore
	logger     *slog.Logger
	metrics    Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(dependents DependentStore, opts ...Option) *Service {
	s := &Service{
		dependents: dependents,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch loads the dependent's medical document and decrypts it with the
// passphrase derived from the guardian stored on the record. Any viewer
// holding the record can open the document; possession of the record is
// the access control, exactly as the existing clients behave.
func (s *Service) Fetch(ctx context.Context, dependentRUT string) (*Document, error) {
	if dependentRUT == "" {
		return nil, dErrors.New(dErrors.CodeMissingIdentity, "dependent rut is required")
	}

	dep, err := s.dependents.FindByRUT(ctx, dependentRUT)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "dependent not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "fetching dependent")
	}
	if !dep.MedicalRecord.Exists() {
		return nil, dErrors.New(dErrors.CodeMissingDocument, "no medical document on file")
	}
	if dep.GuardianRUT == "" {
		return nil, dErrors.New(dErrors.CodeMissingIdentity, "document owner could not be resolved")
	}

	plain, err := codec.Decrypt(dep.MedicalRecord.CipherText, dep.GuardianRUT)
	if err != nil {
		s.logger.WarnContext(ctx, "medical document decryption failed",
			slog.String("dependent_rut", dependentRUT))
		if s.metrics != nil {
			s.metrics.IncrementDecryptionFailure()
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementDocumentOpened()
	}
	return &Document{
		FileName: dep.MedicalRecord.FileName,
		DataURI:  codec.DataURI(plain),
	}, nil
}
