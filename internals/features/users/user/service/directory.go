package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jgretton/junior-development-programme-sub000/internals/constants"
	"github.com/jgretton/junior-development-programme-sub000/internals/features/users/user/model"
)

var ErrUserNotFound = errors.New("user tidak ditemukan")

// Directory: lookup user yang dipakai modul progress (id + role).
type Directory struct {
	DB *gorm.DB
}

func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{DB: db}
}

func (d *Directory) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return d.DB.WithContext(ctx)
}

func (d *Directory) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.UserModel, error) {
	var u model.UserModel
	if err := d.conn(ctx, tx).Where("id = ?", id).Take(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("ambil user %s: %w", id, err)
	}
	return &u, nil
}

// GetPlayer seperti GetByID, tapi user non-player dianggap tidak ditemukan.
func (d *Directory) GetPlayer(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.UserModel, error) {
	u, err := d.GetByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if !u.IsPlayer() {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (d *Directory) GetByEmail(ctx context.Context, email string) (*model.UserModel, error) {
	var u model.UserModel
	if err := d.conn(ctx, nil).Where("email = ?", email).Take(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("ambil user %s: %w", email, err)
	}
	return &u, nil
}

// ListPlayerIDs semua user role=player, urut stabil.
func (d *Directory) ListPlayerIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := d.conn(ctx, tx).
		Model(&model.UserModel{}).
		Where("role = ?", constants.RolePlayer).
		Order("user_name ASC, id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list player: %w", err)
	}
	return ids, nil
}

// FindPlayers ambil user role=player di antara ids; id yang bukan player tidak dikembalikan.
func (d *Directory) FindPlayers(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]model.UserModel, error) {
	out := make(map[uuid.UUID]model.UserModel, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var users []model.UserModel
	if err := d.conn(ctx, tx).
		Where("id IN ? AND role = ?", ids, constants.RolePlayer).
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("cari player: %w", err)
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

// NamesByID untuk label di listing (approval, export).
func (d *Directory) NamesByID(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []struct {
		ID       uuid.UUID
		UserName string
	}
	if err := d.conn(ctx, tx).
		Model(&model.UserModel{}).
		Select("id, user_name").
		Where("id IN ?", ids).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("ambil nama user: %w", err)
	}
	for _, r := range rows {
		out[r.ID] = r.UserName
	}
	return out, nil
}
