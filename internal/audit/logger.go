package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/turnolibre/internal/models"
)

// Query filters audit entries of one shop. Page is 1-based.
type Query struct {
	ShopSlug string
	Action   string
	Entity   string
	From     *time.Time
	To       *time.Time
	Page     int
	Limit    int
}

func (q Query) offset() int {
	return (q.Page - 1) * q.Limit
}

// Reader lists stored audit entries, newest first.
type Reader interface {
	List(ctx context.Context, q Query) ([]models.AuditLog, int64, error)
}

func encodeMetadata(metadata any) string {
	if metadata == nil {
		return ""
	}
	if b, err := json.Marshal(metadata); err == nil {
		return string(b)
	}
	return ""
}

func toRecord(ev Event) models.AuditLog {
	return models.AuditLog{
		ShopSlug:  ev.ShopSlug,
		ActorID:   ev.ActorID,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  encodeMetadata(ev.Metadata),
		CreatedAt: ev.At,
	}
}

// -----------------------------------------------------
// Database sink
// -----------------------------------------------------

type Logger struct {
	db *gorm.DB
}

var (
	_ Sink   = (*Logger)(nil)
	_ Reader = (*Logger)(nil)
)

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Write(ctx context.Context, ev Event) error {
	rec := toRecord(ev)
	return l.db.WithContext(ctx).Create(&rec).Error
}

func (l *Logger) List(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	tx := l.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("shop_slug = ?", q.ShopSlug)

	if q.Action != "" {
		tx = tx.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		tx = tx.Where("entity = ?", q.Entity)
	}
	if q.From != nil {
		tx = tx.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		tx = tx.Where("created_at < ?", *q.To)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := tx.
		Order("created_at DESC").
		Limit(q.Limit).
		Offset(q.offset()).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
