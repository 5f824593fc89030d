// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"sphere/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions tunes how factories generate data.
type SeedOptions struct {
	// SkipBcrypt stores a plaintext marker password instead of hashing.
	// Only useful when seeding thousands of users in development.
	SkipBcrypt bool
	// DryRun builds entities without writing to the database.
	DryRun bool
	// MaxDays caps how far in the past generated created_at values spread.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts, nextID: 1000}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	handle := strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(100, 999))
	user := &models.User{
		Username:     "@" + handle,
		Email:        gofakeit.Email(),
		Fullname:     gofakeit.Name(),
		Bio:          models.DefaultBio,
		About:        gofakeit.Paragraph(1, 2, 8, " "),
		ProfileImage: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s <%s>", user.Username, user.Email)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateArticle constructs and persists a sample `models.Article` authored
// by the given user, with a realistic created_at spread.
func (f *Factory) CreateArticle(author *models.User, overrides ...func(*models.Article)) (*models.Article, error) {
	article := &models.Article{
		AuthorID: author.ID,
		Title:    gofakeit.Sentence(5),
		Summary:  gofakeit.Sentence(12),
		Content:  gofakeit.Paragraph(3, 4, 10, "\n\n"),
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	// #nosec G404: acceptable for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	daysBack := r.Intn(maxDays)
	hoursBack := r.Intn(24)
	minsBack := r.Intn(60)
	article.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(article)
	}

	if f.opts.DryRun {
		f.nextID++
		article.ID = f.nextID
		log.Printf("[dry-run] CreateArticle: author=%d title=%q", article.AuthorID, article.Title)
		return article, nil
	}

	if err := f.db.Create(article).Error; err != nil {
		return nil, err
	}
	return article, nil
}

// CreateArticlesBatch persists multiple articles in a single DB call when possible.
func (f *Factory) CreateArticlesBatch(articles []*models.Article) error {
	if f.opts.DryRun {
		for _, a := range articles {
			f.nextID++
			a.ID = f.nextID
		}
		log.Printf("[dry-run] CreateArticlesBatch: %d articles (no DB write)", len(articles))
		return nil
	}
	return f.db.Create(&articles).Error
}

// CreateResponse constructs and persists a sample `models.Response` on the
// provided article authored by the provided user.
func (f *Factory) CreateResponse(user *models.User, article *models.Article, overrides ...func(*models.Response)) (*models.Response, error) {
	response := &models.Response{
		ArticleID: article.ID,
		UserID:    user.ID,
		Text:      gofakeit.Sentence(8),
	}

	for _, override := range overrides {
		override(response)
	}

	if f.opts.DryRun {
		f.nextID++
		response.ID = f.nextID
		return response, nil
	}

	if err := f.db.Create(response).Error; err != nil {
		return nil, err
	}
	return response, nil
}

// CreateLike persists a like from `user` on `article`.
func (f *Factory) CreateLike(user *models.User, article *models.Article) error {
	if f.opts.DryRun {
		return nil
	}
	like := &models.Like{
		UserID:    user.ID,
		ArticleID: article.ID,
	}
	return f.db.Create(like).Error
}

// CreateArchive bookmarks `article` for `user`.
func (f *Factory) CreateArchive(user *models.User, article *models.Article) error {
	if f.opts.DryRun {
		return nil
	}
	archive := &models.Archive{
		UserID:    user.ID,
		ArticleID: article.ID,
	}
	return f.db.Create(archive).Error
}

// CreateFollow persists the edge follower -> followee.
func (f *Factory) CreateFollow(follower, followee *models.User) error {
	if f.opts.DryRun {
		return nil
	}
	follow := &models.Follow{
		FollowerID: follower.ID,
		FolloweeID: followee.ID,
	}
	return f.db.Create(follow).Error
}
