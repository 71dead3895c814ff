package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleet-admin/internal/data/entity"
	"fleet-admin/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type VehicleDocumentRepository interface {
	Create(ctx context.Context, doc *entity.VehicleDocument) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.VehicleDocument, error)
	FindByVehicleID(ctx context.Context, vehicleID uuid.UUID) ([]*entity.VehicleDocument, error)
	// FindExpiringBefore lists documents of live vehicles whose expiry date
	// falls before the cutoff, expired ones included
	FindExpiringBefore(ctx context.Context, cutoff time.Time) ([]*entity.VehicleDocument, error)
	Update(ctx context.Context, doc *entity.VehicleDocument) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type vehicleDocumentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVehicleDocumentRepository(db database.PgxIface, log *zap.Logger) VehicleDocumentRepository {
	return &vehicleDocumentRepository{
		db:  db,
		log: log.With(zap.String("repository", "vehicle_document")),
	}
}

const vehicleDocumentColumns = `id, vehicle_id, document_type, document_number, file_url, issue_date,
	expiry_date, is_verified, verified_at, notes, created_at, updated_at`

func scanVehicleDocument(row rowScanner) (*entity.VehicleDocument, error) {
	var d entity.VehicleDocument
	err := row.Scan(
		&d.ID, &d.VehicleID, &d.DocumentType, &d.DocumentNumber, &d.FileURL, &d.IssueDate,
		&d.ExpiryDate, &d.IsVerified, &d.VerifiedAt, &d.Notes, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *vehicleDocumentRepository) Create(ctx context.Context, d *entity.VehicleDocument) error {
	query := `
		INSERT INTO vehicle_documents (` + vehicleDocumentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		d.ID, d.VehicleID, d.DocumentType, d.DocumentNumber, d.FileURL, d.IssueDate,
		d.ExpiryDate, d.IsVerified, d.VerifiedAt, d.Notes, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create vehicle document",
			zap.Error(err),
			zap.String("vehicle_id", d.VehicleID.String()),
			zap.String("document_type", string(d.DocumentType)),
		)
		return fmt.Errorf("create %s document for vehicle %s: %w", d.DocumentType, d.VehicleID.String(), err)
	}

	return nil
}

func (r *vehicleDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.VehicleDocument, error) {
	query := `SELECT ` + vehicleDocumentColumns + ` FROM vehicle_documents WHERE id = $1`

	doc, err := scanVehicleDocument(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vehicle document",
			zap.Error(err),
			zap.String("document_id", id.String()),
		)
		return nil, fmt.Errorf("find vehicle document %s: %w", id.String(), err)
	}

	return doc, nil
}

func (r *vehicleDocumentRepository) list(ctx context.Context, query string, args ...any) ([]*entity.VehicleDocument, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*entity.VehicleDocument
	for rows.Next() {
		doc, err := scanVehicleDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

func (r *vehicleDocumentRepository) FindByVehicleID(ctx context.Context, vehicleID uuid.UUID) ([]*entity.VehicleDocument, error) {
	query := `SELECT ` + vehicleDocumentColumns + ` FROM vehicle_documents WHERE vehicle_id = $1 ORDER BY document_type, created_at DESC`

	docs, err := r.list(ctx, query, vehicleID)
	if err != nil {
		r.log.Error("Failed to list vehicle documents",
			zap.Error(err),
			zap.String("vehicle_id", vehicleID.String()),
		)
		return nil, fmt.Errorf("list documents for vehicle %s: %w", vehicleID.String(), err)
	}

	return docs, nil
}

func (r *vehicleDocumentRepository) FindExpiringBefore(ctx context.Context, cutoff time.Time) ([]*entity.VehicleDocument, error) {
	query := `
		SELECT d.id, d.vehicle_id, d.document_type, d.document_number, d.file_url, d.issue_date,
		       d.expiry_date, d.is_verified, d.verified_at, d.notes, d.created_at, d.updated_at
		FROM vehicle_documents d
		JOIN vehicles v ON v.id = d.vehicle_id AND v.deleted_at IS NULL
		WHERE d.expiry_date IS NOT NULL AND d.expiry_date <= $1
		ORDER BY d.expiry_date ASC
	`

	docs, err := r.list(ctx, query, cutoff)
	if err != nil {
		r.log.Error("Failed to list expiring vehicle documents", zap.Error(err), zap.Time("cutoff", cutoff))
		return nil, fmt.Errorf("list expiring vehicle documents: %w", err)
	}

	return docs, nil
}

func (r *vehicleDocumentRepository) Update(ctx context.Context, d *entity.VehicleDocument) error {
	query := `
		UPDATE vehicle_documents
		SET document_number = $2, file_url = $3, issue_date = $4, expiry_date = $5,
		    is_verified = $6, verified_at = $7, notes = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		d.ID, d.DocumentNumber, d.FileURL, d.IssueDate, d.ExpiryDate,
		d.IsVerified, d.VerifiedAt, d.Notes, d.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update vehicle document",
			zap.Error(err),
			zap.String("document_id", d.ID.String()),
		)
		return fmt.Errorf("update vehicle document %s: %w", d.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("vehicle document %s: %w", d.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *vehicleDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM vehicle_documents WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete vehicle document",
			zap.Error(err),
			zap.String("document_id", id.String()),
		)
		return fmt.Errorf("delete vehicle document %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("vehicle document %s: %w", id.String(), ErrNotFound)
	}

	return nil
}
