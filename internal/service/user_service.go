package service

import (
	"context"

	"sphere/internal/cache"
	"sphere/internal/models"
	"sphere/internal/repository"
	"sphere/internal/validation"
)

// UserService owns profile reads and profile updates.
type UserService struct {
	userRepo    repository.UserRepository
	articleRepo repository.ArticleRepository
	followRepo  repository.FollowRepository
}

type UpdateProfileInput struct {
	UserID   uint
	Username string
	Fullname string
	Bio      string
	About    string
}

func NewUserService(
	userRepo repository.UserRepository,
	articleRepo repository.ArticleRepository,
	followRepo repository.FollowRepository,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		articleRepo: articleRepo,
		followRepo:  followRepo,
	}
}

// GetUser returns the account with its follower and following edges,
// as shown on the signed-in user's own view.
func (s *UserService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Followers, err = s.followRepo.Followers(ctx, userID); err != nil {
		return nil, err
	}
	if user.Following, err = s.followRepo.Following(ctx, userID); err != nil {
		return nil, err
	}

	user.Sanitize()
	return user, nil
}

// GetProfile resolves a public profile by handle: the user plus their
// articles (newest first), archived articles, followers and following.
// The assembled view is viewer-independent, so it is cached whole under
// the profile key.
func (s *UserService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	username = validation.NormalizeUsername(username)

	cached := &models.User{}
	if found, _ := cache.GetJSON(ctx, cache.ProfileKey(username), cached); found {
		return cached, nil
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}

	articles, err := s.articleRepo.GetByAuthorID(ctx, user.ID, 100, 0, 0)
	if err != nil {
		return nil, err
	}
	user.Articles = make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if a.Author != nil {
			a.Author.Sanitize()
		}
		user.Articles = append(user.Articles, *a)
	}

	if user.Archives, err = s.userRepo.ArchivedArticles(ctx, user.ID); err != nil {
		return nil, err
	}
	for i := range user.Archives {
		if user.Archives[i].Author != nil {
			user.Archives[i].Author.Sanitize()
		}
	}

	if user.Followers, err = s.followRepo.Followers(ctx, user.ID); err != nil {
		return nil, err
	}
	if user.Following, err = s.followRepo.Following(ctx, user.ID); err != nil {
		return nil, err
	}

	user.Sanitize()
	_ = cache.SetJSON(ctx, cache.ProfileKey(username), user, cache.ProfileTTL)
	return user, nil
}

// UpdateProfile applies the editable profile fields. Username changes are
// normalized to the "@" handle form, checked for special characters and
// for collisions with other accounts. Bio and about may be cleared;
// username and fullname are only replaced when a new value is given.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	oldUsername := user.Username

	if in.Username != "" {
		username := validation.NormalizeUsername(in.Username)
		if err := validation.ValidateUsername(username); err != nil {
			return nil, models.NewValidationError("Username cannot contain special characters!")
		}
		if username != user.Username {
			existing, err := s.userRepo.GetByUsername(ctx, username)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != user.ID {
				return nil, models.NewValidationError("Username already taken.")
			}
		}
		user.Username = username
	}

	if in.Fullname != "" {
		user.Fullname = in.Fullname
	}
	user.Bio = in.Bio
	user.About = in.About

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	// The repository invalidates the current handle's profile; a renamed
	// account must also drop the view cached under the old handle.
	if user.Username != oldUsername {
		cache.InvalidateProfile(ctx, oldUsername)
	}

	updated, err := s.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	updated.Sanitize()
	return updated, nil
}
