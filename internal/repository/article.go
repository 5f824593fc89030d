package repository

import (
	"context"
	"errors"

	"sphere/internal/cache"
	"sphere/internal/models"

	"gorm.io/gorm"
)

// ArticleRepository defines the interface for article data operations,
// including likes and responses which live under the article aggregate.
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Article, error)
	GetByAuthorID(ctx context.Context, authorID uint, limit, offset int, currentUserID uint) ([]*models.Article, error)
	List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Article, error)
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id uint) error

	Like(ctx context.Context, userID, articleID uint) error
	Unlike(ctx context.Context, userID, articleID uint) error
	IsLiked(ctx context.Context, userID, articleID uint) (bool, error)

	AddResponse(ctx context.Context, response *models.Response) error
	DeleteResponse(ctx context.Context, articleID, responseID uint) error
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	if err := r.db.WithContext(ctx).Create(article).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *articleRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Article, error) {
	var article models.Article

	fetch := func() error {
		err := r.applyArticleDetails(r.db.WithContext(ctx), currentUserID).
			Preload("Author").
			Preload("Responses", func(db *gorm.DB) *gorm.DB {
				return db.Order("created_at ASC")
			}).
			Preload("Responses.User").
			Preload("Likes").
			First(&article, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Article", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	}

	// Anonymous reads share one cache entry; personalized reads (liked
	// flag) always hit the database.
	var err error
	if currentUserID == 0 {
		err = cache.Aside(ctx, cache.ArticleKey(id), &article, cache.ArticleTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) GetByAuthorID(ctx context.Context, authorID uint, limit, offset int, currentUserID uint) ([]*models.Article, error) {
	var articles []*models.Article
	err := r.applyArticleDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return articles, nil
}

func (r *articleRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Article, error) {
	var articles []*models.Article
	err := r.applyArticleDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return articles, nil
}

func (r *articleRepository) Update(ctx context.Context, article *models.Article) error {
	if err := r.db.WithContext(ctx).Save(article).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateArticle(ctx, article.ID)
	return nil
}

// Delete removes the article and everything hanging off it (likes,
// responses, archive entries) in one transaction. Articles are hard
// deleted; there is no tombstone to resurrect.
func (r *articleRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", id).Delete(&models.Response{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", id).Delete(&models.Archive{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Article{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateArticle(ctx, id)
	return nil
}

func (r *articleRepository) Like(ctx context.Context, userID, articleID uint) error {
	// INSERT ... ON CONFLICT DO NOTHING gives likes set semantics and is
	// atomic under concurrent double-taps.
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (user_id, article_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (user_id, article_id) DO NOTHING`,
		userID, articleID,
	)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	cache.InvalidateArticle(ctx, articleID)
	return nil
}

func (r *articleRepository) Unlike(ctx context.Context, userID, articleID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Delete(&models.Like{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateArticle(ctx, articleID)
	return nil
}

func (r *articleRepository) IsLiked(ctx context.Context, userID, articleID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *articleRepository) AddResponse(ctx context.Context, response *models.Response) error {
	if err := r.db.WithContext(ctx).Create(response).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateArticle(ctx, response.ArticleID)
	return nil
}

// DeleteResponse removes one response by id, scoped to the article so a
// response id from another article cannot be deleted through the wrong
// route. Deleting an absent response is a no-op.
func (r *articleRepository) DeleteResponse(ctx context.Context, articleID, responseID uint) error {
	err := r.db.WithContext(ctx).
		Where("id = ? AND article_id = ?", responseID, articleID).
		Delete(&models.Response{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateArticle(ctx, articleID)
	return nil
}

// applyArticleDetails adds subqueries to fetch counts and liked status in a single query.
func (r *articleRepository) applyArticleDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "articles.*, " +
		"(SELECT COUNT(*) FROM responses WHERE responses.article_id = articles.id) as responses_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.article_id = articles.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.article_id = articles.id AND likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}
