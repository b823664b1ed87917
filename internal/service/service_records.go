// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-contacts-keeper/internal/logger"
	"github.com/MKhiriev/go-contacts-keeper/internal/store"
	"github.com/MKhiriev/go-contacts-keeper/internal/utils"
	"github.com/MKhiriev/go-contacts-keeper/internal/validators"
	"github.com/MKhiriev/go-contacts-keeper/models"
)

// systemFields are owned by the server or by the device store and are never
// accepted from a request body.
var systemFields = []string{
	models.FieldID,
	models.FieldLastModifiedDate,
	models.FieldAttributes,
	models.FieldSoupEntryID,
	models.FieldSoupLastModifiedDate,
	models.FieldLocal,
	models.FieldLocallyCreated,
	models.FieldLocallyUpdated,
	models.FieldLocallyDeleted,
	models.FieldSyncError,
}

type idGenerator interface {
	Generate() string
}

type recordService struct {
	records   store.RecordRepository
	ids       idGenerator
	validator validators.Validator

	logger *logger.Logger
}

func NewRecordService(records store.RecordRepository, logger *logger.Logger) RecordService {
	return &recordService{
		records:   records,
		ids:       utils.NewUUIDGenerator(),
		validator: validators.NewRecordValidator(),
		logger:    logger,
	}
}

func (s *recordService) Query(ctx context.Context, objectName string, req models.QueryRequest) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	if err := s.validate(ctx, validators.RecordRef{ObjectName: objectName}, validators.FieldObjectName); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, req); err != nil {
		log.Warn().Str("func", "*recordService.Query").Str("object", objectName).Int("limit", req.Limit).Msg("invalid query")
		return nil, err
	}

	found, err := s.records.Query(ctx, objectName, req)
	if err != nil {
		log.Err(err).Str("func", "*recordService.Query").Str("object", objectName).Msg("query failed")
		return nil, fmt.Errorf("query %s: %w", objectName, err)
	}

	out := make([]models.Record, 0, len(found))
	for _, rec := range found {
		out = append(out, project(rec.ToRecord(), req.Fields))
	}

	return out, nil
}

// project keeps fields plus Id, LastModifiedDate and attributes. An empty
// field list keeps everything.
func project(record models.Record, fields []string) models.Record {
	if len(fields) == 0 {
		return record
	}

	out := record.Pick(fields)
	out[models.FieldID] = record[models.FieldID]
	out[models.FieldLastModifiedDate] = record[models.FieldLastModifiedDate]
	out[models.FieldAttributes] = record[models.FieldAttributes]
	return out
}

func (s *recordService) Create(ctx context.Context, objectName string, fields models.Record) (models.SaveResponse, error) {
	log := logger.FromContext(ctx)

	if err := s.validate(ctx, validators.RecordRef{ObjectName: objectName}, validators.FieldObjectName); err != nil {
		return models.SaveResponse{}, err
	}
	body := userFields(fields)
	if err := s.validate(ctx, body); err != nil {
		return models.SaveResponse{}, err
	}

	created, err := s.records.Create(ctx, models.RemoteRecord{
		ID:         s.ids.Generate(),
		ObjectName: objectName,
		Fields:     body,
	})
	if err != nil {
		log.Err(err).Str("func", "*recordService.Create").Str("object", objectName).Msg("create failed")
		return models.SaveResponse{}, fmt.Errorf("create %s: %w", objectName, err)
	}

	clientID, _ := utils.GetClientIDFromContext(ctx)
	log.Debug().
		Str("func", "*recordService.Create").
		Str("object", objectName).
		Str("id", created.ID).
		Str("client", clientID).
		Msg("record created")
	return saveResponse(created), nil
}

func (s *recordService) Update(ctx context.Context, objectName, id string, fields models.Record) (models.SaveResponse, error) {
	log := logger.FromContext(ctx)

	if err := s.validate(ctx, validators.RecordRef{ObjectName: objectName, ID: id}); err != nil {
		return models.SaveResponse{}, err
	}
	body := userFields(fields)
	if err := s.validate(ctx, body); err != nil {
		return models.SaveResponse{}, err
	}

	updated, err := s.records.Update(ctx, objectName, id, body)
	if err != nil {
		log.Err(err).Str("func", "*recordService.Update").Str("object", objectName).Str("id", id).Msg("update failed")
		return models.SaveResponse{}, fmt.Errorf("update %s/%s: %w", objectName, id, err)
	}

	return saveResponse(updated), nil
}

func (s *recordService) Delete(ctx context.Context, objectName, id string) error {
	if err := s.validate(ctx, validators.RecordRef{ObjectName: objectName, ID: id}); err != nil {
		return err
	}

	if err := s.records.Delete(ctx, objectName, id); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*recordService.Delete").
			Str("object", objectName).
			Str("id", id).
			Msg("delete failed")
		return fmt.Errorf("delete %s/%s: %w", objectName, id, err)
	}

	return nil
}

// validate runs the record validator and folds its failure into
// ErrInvalidDataProvided so handlers map it to 400.
func (s *recordService) validate(ctx context.Context, obj any, fields ...string) error {
	if err := s.validator.Validate(ctx, obj, fields...); err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*recordService.validate").Msg("rejected input")
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return nil
}

func userFields(fields models.Record) models.Record {
	out := fields.Clone()
	if out == nil {
		out = models.Record{}
	}
	for _, f := range systemFields {
		delete(out, f)
	}
	return out
}

func saveResponse(rec models.RemoteRecord) models.SaveResponse {
	return models.SaveResponse{
		ID:               rec.ID,
		Success:          true,
		LastModifiedDate: rec.LastModifiedDate,
	}
}
