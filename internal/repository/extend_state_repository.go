package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/blog-admin/internal/extension"
	"github.com/d60-Lab/blog-admin/internal/model"
)

// ExtendStateRepository 按会话保存扩展页状态，过期即回到默认目录
type ExtendStateRepository interface {
	// Get 第二个返回值为 false 表示该会话尚无状态
	Get(ctx context.Context, sessionID string) (extension.State, bool, error)
	Save(ctx context.Context, sessionID string, state extension.State) error
	Delete(ctx context.Context, sessionID string) error
}

// ---- memory ----

type memoryEntry struct {
	state     extension.State
	expiresAt time.Time
}

type memoryExtendStateRepository struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]memoryEntry
	now   func() time.Time
}

func NewMemoryExtendStateRepository(ttl time.Duration) ExtendStateRepository {
	return &memoryExtendStateRepository{ttl: ttl, items: make(map[string]memoryEntry), now: time.Now}
}

func (r *memoryExtendStateRepository) Get(_ context.Context, sessionID string) (extension.State, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[sessionID]
	if !ok {
		return extension.State{}, false, nil
	}
	if r.ttl > 0 && r.now().After(e.expiresAt) {
		delete(r.items, sessionID)
		return extension.State{}, false, nil
	}
	return e.state, true, nil
}

func (r *memoryExtendStateRepository) Save(_ context.Context, sessionID string, state extension.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[sessionID] = memoryEntry{state: state, expiresAt: r.now().Add(r.ttl)}
	// 顺带清理过期会话
	if r.ttl > 0 {
		now := r.now()
		for id, e := range r.items {
			if now.After(e.expiresAt) {
				delete(r.items, id)
			}
		}
	}
	return nil
}

func (r *memoryExtendStateRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, sessionID)
	return nil
}

// ---- redis ----

type redisExtendStateRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisExtendStateRepository(client *redis.Client, ttl time.Duration) ExtendStateRepository {
	return &redisExtendStateRepository{client: client, ttl: ttl}
}

func extendStateKey(sessionID string) string { return fmt.Sprintf("extend:state:%s", sessionID) }

func (r *redisExtendStateRepository) Get(ctx context.Context, sessionID string) (extension.State, bool, error) {
	data, err := r.client.Get(ctx, extendStateKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return extension.State{}, false, nil
	}
	if err != nil {
		return extension.State{}, false, fmt.Errorf("redis get extend state: %w", err)
	}
	var st extension.State
	if err := json.Unmarshal(data, &st); err != nil {
		return extension.State{}, false, fmt.Errorf("decode extend state: %w", err)
	}
	return st, true, nil
}

func (r *redisExtendStateRepository) Save(ctx context.Context, sessionID string, state extension.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode extend state: %w", err)
	}
	if err := r.client.Set(ctx, extendStateKey(sessionID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set extend state: %w", err)
	}
	return nil
}

func (r *redisExtendStateRepository) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, extendStateKey(sessionID)).Err()
}

// ---- gorm ----

type gormExtendStateRepository struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

func NewGormExtendStateRepository(db *gorm.DB, ttl time.Duration) ExtendStateRepository {
	return &gormExtendStateRepository{db: db, ttl: ttl, now: time.Now}
}

// InitSchema 建表
func (r *gormExtendStateRepository) InitSchema() error {
	if err := r.db.AutoMigrate(&model.ExtendStateRecord{}); err != nil {
		return fmt.Errorf("failed to migrate extend_states table: %w", err)
	}
	return nil
}

// MigrateExtendState 供启动时调用
func MigrateExtendState(db *gorm.DB) error {
	return (&gormExtendStateRepository{db: db}).InitSchema()
}

func (r *gormExtendStateRepository) Get(ctx context.Context, sessionID string) (extension.State, bool, error) {
	var rec model.ExtendStateRecord
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND expires_at > ?", sessionID, r.now()).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return extension.State{}, false, nil
	}
	if err != nil {
		return extension.State{}, false, err
	}
	var st extension.State
	if err := json.Unmarshal([]byte(rec.Payload), &st); err != nil {
		return extension.State{}, false, fmt.Errorf("decode extend state: %w", err)
	}
	return st, true, nil
}

func (r *gormExtendStateRepository) Save(ctx context.Context, sessionID string, state extension.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode extend state: %w", err)
	}
	now := r.now()
	rec := &model.ExtendStateRecord{SessionID: sessionID, Payload: string(payload), ExpiresAt: r.expiresAt(now)}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "expires_at", "updated_at"}),
		}).Create(rec).Error; err != nil {
			return err
		}
		return tx.Where("expires_at <= ?", now).Delete(&model.ExtendStateRecord{}).Error
	})
}

// noExpiry ttl <= 0 时使用，与内存、redis 存储的“永不过期”一致
var noExpiry = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

func (r *gormExtendStateRepository) expiresAt(now time.Time) time.Time {
	if r.ttl <= 0 {
		return noExpiry
	}
	return now.Add(r.ttl)
}

func (r *gormExtendStateRepository) Delete(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&model.ExtendStateRecord{}).Error
}
