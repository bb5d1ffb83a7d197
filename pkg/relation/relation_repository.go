package relation

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RelationRepository interface {
		Exists(ctx context.Context, kind domain.RelationKind, userID, targetID string) (bool, error)
		TargetsOf(ctx context.Context, kind domain.RelationKind, userID string, targetIDs []string) (map[string]bool, error)
		Create(ctx context.Context, kind domain.RelationKind, userID, targetID string) error
		Delete(ctx context.Context, kind domain.RelationKind, userID, targetID string) (int64, error)
		GetSubscribedAuthors(ctx context.Context, userID string, page, limit int) ([]*entities.User, int64, error)
	}

	// relationTable maps a relation kind onto its table.
	relationTable struct {
		model        func() interface{}
		targetColumn string
		newRow       func(userID, targetID uuid.UUID) interface{}
	}

	relationRepository struct {
		db *gorm.DB
	}
)

var relationTables = map[domain.RelationKind]relationTable{
	domain.RelationFavorite: {
		model:        func() interface{} { return &entities.Favorite{} },
		targetColumn: "recipe_id",
		newRow: func(userID, targetID uuid.UUID) interface{} {
			return &entities.Favorite{ID: uuid.New(), UserID: userID, RecipeID: targetID, CreatedAt: time.Now()}
		},
	},
	domain.RelationShoppingCart: {
		model:        func() interface{} { return &entities.ShoppingCart{} },
		targetColumn: "recipe_id",
		newRow: func(userID, targetID uuid.UUID) interface{} {
			return &entities.ShoppingCart{ID: uuid.New(), UserID: userID, RecipeID: targetID, CreatedAt: time.Now()}
		},
	},
	domain.RelationSubscription: {
		model:        func() interface{} { return &entities.Subscription{} },
		targetColumn: "author_id",
		newRow: func(userID, targetID uuid.UUID) interface{} {
			return &entities.Subscription{ID: uuid.New(), UserID: userID, AuthorID: targetID, CreatedAt: time.Now()}
		},
	},
}

func NewRelationRepository(db *gorm.DB) RelationRepository {
	return &relationRepository{db: db}
}

func tableFor(kind domain.RelationKind) (relationTable, error) {
	t, ok := relationTables[kind]
	if !ok {
		return relationTable{}, domain.ErrUnknownRelation
	}
	return t, nil
}

func (r *relationRepository) Exists(ctx context.Context, kind domain.RelationKind, userID, targetID string) (bool, error) {
	t, err := tableFor(kind)
	if err != nil {
		return false, err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(t.model()).
		Where("user_id = ? AND "+t.targetColumn+" = ?", userID, targetID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *relationRepository) TargetsOf(ctx context.Context, kind domain.RelationKind, userID string, targetIDs []string) (map[string]bool, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	result := make(map[string]bool, len(targetIDs))
	if userID == "" || len(targetIDs) == 0 {
		return result, nil
	}

	var found []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(t.model()).
		Where("user_id = ? AND "+t.targetColumn+" IN ?", userID, targetIDs).
		Pluck(t.targetColumn, &found).Error; err != nil {
		return nil, err
	}
	for _, id := range found {
		result[id.String()] = true
	}
	return result, nil
}

func (r *relationRepository) Create(ctx context.Context, kind domain.RelationKind, userID, targetID string) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	targetUUID, err := uuid.Parse(targetID)
	if err != nil {
		return domain.ErrParseUUID
	}

	if err := r.db.WithContext(ctx).Create(t.newRow(userUUID, targetUUID)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrRelationConflict
		}
		return err
	}
	return nil
}

func (r *relationRepository) Delete(ctx context.Context, kind domain.RelationKind, userID, targetID string) (int64, error) {
	t, err := tableFor(kind)
	if err != nil {
		return 0, err
	}

	res := r.db.WithContext(ctx).
		Where("user_id = ? AND "+t.targetColumn+" = ?", userID, targetID).
		Delete(t.model())
	return res.RowsAffected, res.Error
}

func (r *relationRepository) GetSubscribedAuthors(ctx context.Context, userID string, page, limit int) ([]*entities.User, int64, error) {
	var authors []*entities.User
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.user_id = ?", userID).
		Order("subscriptions.created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&authors).Error; err != nil {
		return nil, 0, err
	}

	return authors, count, nil
}
