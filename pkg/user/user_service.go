package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Temni23/foodgram-backend/domain"
	"github.com/Temni23/foodgram-backend/entities"
	"github.com/Temni23/foodgram-backend/pkg/jwt"
	"github.com/Temni23/foodgram-backend/pkg/recipe"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		GetUser(ctx context.Context, id, viewerID string) (domain.UserResponse, error)
		GetUsers(ctx context.Context, viewerID string, page, limit int) ([]domain.UserResponse, int64, error)

		Subscribe(ctx context.Context, userID, targetID string) error
		Unsubscribe(ctx context.Context, userID, targetID string) error
		GetSubscriptions(ctx context.Context, userID string, page, limit, recipesLimit int) ([]domain.SubscriptionResponse, int64, error)
	}

	userService struct {
		userRepository   UserRepository
		recipeRepository recipe.RecipeRepository
		jwtService       jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, recipeRepository recipe.RecipeRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository:   userRepository,
		recipeRepository: recipeRepository,
		jwtService:       jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	taken, err := s.userRepository.EmailExists(ctx, req.Email)
	if err != nil {
		return domain.UserResponse{}, err
	}
	if taken {
		return domain.UserResponse{}, domain.ErrEmailTaken
	}

	taken, err = s.userRepository.UsernameExists(ctx, req.Username)
	if err != nil {
		return domain.UserResponse{}, err
	}
	if taken {
		return domain.UserResponse{}, domain.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserResponse{}, err
	}

	user := &entities.User{
		ID:        uuid.New(),
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hash),
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}

	return toUserResponse(user, false), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String())
	return domain.LoginResponse{
		Token: token,
		User:  toUserResponse(user, false),
	}, nil
}

func (s *userService) GetUser(ctx context.Context, id, viewerID string) (domain.UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.UserResponse{}, domain.ErrParseUUID
	}

	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	isSubscribed := false
	if viewerID != "" && viewerID != id {
		isSubscribed, err = s.userRepository.IsFollowing(ctx, viewerID, id)
		if err != nil {
			return domain.UserResponse{}, err
		}
	}
	return toUserResponse(user, isSubscribed), nil
}

func (s *userService) GetUsers(ctx context.Context, viewerID string, page, limit int) ([]domain.UserResponse, int64, error) {
	users, count, err := s.userRepository.GetUsers(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.UserResponse, 0, len(users))
	for _, user := range users {
		isSubscribed := false
		if viewerID != "" && viewerID != user.ID.String() {
			isSubscribed, err = s.userRepository.IsFollowing(ctx, viewerID, user.ID.String())
			if err != nil {
				return nil, 0, err
			}
		}
		res = append(res, toUserResponse(user, isSubscribed))
	}
	return res, count, nil
}

func (s *userService) Subscribe(ctx context.Context, userID, targetID string) error {
	userUUID, targetUUID, err := s.followPair(ctx, userID, targetID)
	if err != nil {
		return err
	}

	following, err := s.userRepository.IsFollowing(ctx, userID, targetID)
	if err != nil {
		return err
	}
	if following {
		return domain.ErrAlreadyFollowing
	}

	if err := s.userRepository.AddFollow(ctx, userUUID, targetUUID); err != nil {
		// The unique edge index resolves concurrent subscribe races.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyFollowing
		}
		return err
	}
	return nil
}

func (s *userService) Unsubscribe(ctx context.Context, userID, targetID string) error {
	if _, _, err := s.followPair(ctx, userID, targetID); err != nil {
		return err
	}

	rows, err := s.userRepository.RemoveFollow(ctx, userID, targetID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrFollowNotFound
	}
	return nil
}

func (s *userService) GetSubscriptions(ctx context.Context, userID string, page, limit, recipesLimit int) ([]domain.SubscriptionResponse, int64, error) {
	following, count, err := s.userRepository.GetFollowing(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.SubscriptionResponse, 0, len(following))
	for _, author := range following {
		followedBack, err := s.userRepository.IsFollowing(ctx, author.ID.String(), userID)
		if err != nil {
			return nil, 0, err
		}

		recipes, recipesCount, err := s.recipeRepository.GetRecipesByAuthor(ctx, author.ID.String(), recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		previews := make([]domain.RecipeSummary, 0, len(recipes))
		for _, r := range recipes {
			previews = append(previews, domain.RecipeSummary{
				ID:          r.ID.String(),
				Name:        r.Name,
				Image:       r.Image,
				CookingTime: r.CookingTime,
			})
		}

		res = append(res, domain.SubscriptionResponse{
			UserResponse:   toUserResponse(author, true),
			IsFollowedBack: followedBack,
			RecipesCount:   recipesCount,
			Recipes:        previews,
		})
	}
	return res, count, nil
}

// followPair validates a follow edge: both ends must parse, the target must
// exist and self-edges are rejected on add and remove alike.
func (s *userService) followPair(ctx context.Context, userID, targetID string) (uuid.UUID, uuid.UUID, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrParseUUID
	}
	targetUUID, err := uuid.Parse(targetID)
	if err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrParseUUID
	}
	if userUUID == targetUUID {
		return uuid.Nil, uuid.Nil, domain.ErrSelfFollow
	}

	if _, err := s.userRepository.GetUserByID(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, uuid.Nil, domain.ErrUserNotFound
		}
		return uuid.Nil, uuid.Nil, err
	}
	return userUUID, targetUUID, nil
}

func toUserResponse(user *entities.User, isSubscribed bool) domain.UserResponse {
	return domain.UserResponse{
		ID:           user.ID.String(),
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}
