package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"sphere/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumArticles int
	ShouldClean bool
}

// Seed populates the database with demo data: a mesh of users who write,
// like, respond to, archive and follow each other.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d articles...", opts.NumUsers, opts.NumArticles)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db, SeedOptions{})

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	articles, err := createArticles(factory, users, opts.NumArticles)
	if err != nil {
		return fmt.Errorf("failed to create articles: %w", err)
	}
	log.Printf("✓ %d articles created", len(articles))

	if err := createSocialMesh(factory, users, articles); err != nil {
		return fmt.Errorf("failed to create social mesh: %w", err)
	}
	log.Println("✓ likes, responses, archives and follows created")

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE likes, responses, archives, follows, articles, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(factory *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include a few well-known accounts for manual testing.
	if count >= 3 {
		for _, handle := range []string{"jane", "writer", "test"} {
			handle := handle
			user, err := factory.CreateUser(func(u *models.User) {
				u.Username = "@" + handle
				u.Email = fmt.Sprintf("%s@example.com", handle)
				u.Bio = "One of the originals."
			})
			if err == nil {
				users = append(users, user)
			}
		}
	}

	for i := len(users); i < count; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user %d: %v", i, err)
			continue
		}
		users = append(users, user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

func createArticles(factory *Factory, users []*models.User, count int) ([]*models.Article, error) {
	if len(users) == 0 {
		return nil, nil
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	articles := make([]*models.Article, 0, count)
	for i := 0; i < count; i++ {
		author := users[r.Intn(len(users))]
		article, err := factory.CreateArticle(author)
		if err != nil {
			log.Printf("Failed to create article %d: %v", i, err)
			continue
		}
		articles = append(articles, article)
	}
	return articles, nil
}

// createSocialMesh wires users and articles together. The unique indexes
// on likes, archives and follows absorb any duplicate pick.
func createSocialMesh(factory *Factory, users []*models.User, articles []*models.Article) error {
	if len(users) < 2 || len(articles) == 0 {
		return nil
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, article := range articles {
		for i := 0; i < r.Intn(5); i++ {
			_ = factory.CreateLike(users[r.Intn(len(users))], article)
		}
		for i := 0; i < r.Intn(3); i++ {
			if _, err := factory.CreateResponse(users[r.Intn(len(users))], article); err != nil {
				return err
			}
		}
		if r.Intn(4) == 0 {
			_ = factory.CreateArchive(users[r.Intn(len(users))], article)
		}
	}

	for _, follower := range users {
		for i := 0; i < r.Intn(4); i++ {
			followee := users[r.Intn(len(users))]
			if followee.ID == follower.ID {
				continue
			}
			_ = factory.CreateFollow(follower, followee)
		}
	}

	return nil
}
