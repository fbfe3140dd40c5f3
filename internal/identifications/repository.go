package identifications

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/mariner/internal/workflow"
	"github.com/JaimeStill/mariner/pkg/pagination"
	"github.com/JaimeStill/mariner/pkg/query"
	"github.com/JaimeStill/mariner/pkg/repository"
	"github.com/JaimeStill/mariner/pkg/storage"
)

type repo struct {
	db         *sql.DB
	rt         *workflow.Runtime
	images     storage.System
	imageBase  string
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an identification repository implementing the System interface.
// imageBase is the URL prefix under which stored images are served.
func New(
	db *sql.DB,
	rt *workflow.Runtime,
	images storage.System,
	imageBase string,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		rt:         rt,
		images:     images,
		imageBase:  strings.TrimSuffix(imageBase, "/"),
		logger:     logger.With("system", "identifications"),
		pagination: pagination,
	}
}

func (r *repo) Handler(limits UploadLimits) *Handler {
	return NewHandler(r, r.logger, r.pagination, limits)
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) ([]Identification, error) {
	page.Normalize(r.pagination)

	qb := listQuery(page, filters)
	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	q, args := qb.BuildPage(page.Limit, page.Offset)
	items, err := repository.QueryMany(ctx, r.db, q, args, scanIdentification)
	if err != nil {
		return nil, fmt.Errorf("query identifications: %w", err)
	}
	return items, nil
}

func (r *repo) Count(ctx context.Context, page pagination.PageRequest, filters Filters) (int, error) {
	q, args := listQuery(page, filters).BuildCount()

	var total int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count identifications: %w", err)
	}
	return total, nil
}

func listQuery(page pagination.PageRequest, filters Filters) *query.Builder {
	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereSearch(page.Search, "BoatType", "BoatBrand", "VesselName").
		WhereContains("VesselName", &filters.Vessel)

	if filters.BoatType != "" {
		qb.WhereEquals("BoatType", filters.BoatType)
	}
	if filters.MMSI != "" {
		qb.WhereEquals("MMSI", filters.MMSI)
	}
	return qb
}

func (r *repo) Find(ctx context.Context, id int64) (*Identification, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	i, err := repository.QueryOne(ctx, r.db, q, args, scanIdentification)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &i, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Identification, error) {
	q := `
		INSERT INTO identifications(image_path, boat_type, boat_brand, boat_model, confidence, vessel_name,
			mmsi, registration, length, tonnage, owner, location, identified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`

	now := time.Now().UTC()
	args := []any{
		cmd.ImagePath,
		cmd.BoatType,
		cmd.BoatBrand,
		cmd.BoatModel,
		cmd.Confidence,
		cmd.VesselName,
		cmd.MMSI,
		cmd.Registration,
		cmd.Length,
		cmd.Tonnage,
		cmd.Owner,
		cmd.Location,
		now,
	}

	id, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int64, error) {
		var id int64
		err := tx.QueryRowContext(ctx, q, args...).Scan(&id)
		return id, err
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	i := fromCommand(id, now, cmd)
	r.logger.Info("identification created", "id", i.ID, "boat_type", i.BoatType)
	return i, nil
}

// Delete removes the record. The stored image is kept.
func (r *repo) Delete(ctx context.Context, id int64) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM identifications WHERE id = $1",
			id,
		)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("identification deleted", "id", id)
	return nil
}

// Identify stores the image, runs the identification workflow and persists
// the merged result. Only storage failures are returned as errors.
func (r *repo) Identify(ctx context.Context, cmd IdentifyCommand) (*IdentifyResult, error) {
	key := imageKey(cmd.Filename)
	contentType := cmd.ContentType
	if contentType == "" {
		contentType = storage.ContentTypeFor(key)
	}

	if _, err := r.images.Upload(ctx, key, bytes.NewReader(cmd.Data), contentType); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	result := workflow.Execute(ctx, r.rt, key)
	url := r.imageBase + "/" + key

	i, err := r.Create(ctx, commandFromResult(url, result))
	if err != nil {
		return nil, fmt.Errorf("save identification: %w", err)
	}

	return &IdentifyResult{
		Identification: i,
		ImageURL:       url,
		Classification: result.Classification,
		Vessel:         result.Vessel,
	}, nil
}

func imageKey(filename string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(filepath.Base(filename)))
}
