package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/store-service/pkg/kafka"
	"github.com/Astemirdum/store-service/store/internal/errs"
	"github.com/Astemirdum/store-service/store/internal/model"
	storeRepo "github.com/Astemirdum/store-service/store/internal/repository"
)

const (
	bcryptCost = 14

	likeCountParallelism = 8
)

type Service struct {
	log  *zap.Logger
	repo storeRepo.Repository
	enq  Enqueuer
}

// NewService wires the business rules over the repository. enq may be nil;
// activity events are then skipped.
func NewService(repo storeRepo.Repository, enq Enqueuer, log *zap.Logger) *Service {
	return &Service{
		log:  log,
		repo: repo,
		enq:  enq,
	}
}

func (s *Service) Register(ctx context.Context, req model.UserCreateRequest) (model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return model.User{}, errors.Wrap(err, "hash password")
	}
	return s.repo.CreateUser(ctx, req.Username, string(hash))
}

func (s *Service) Authorize(ctx context.Context, req model.AuthRequest) (model.User, error) {
	user, err := s.repo.GetUser(ctx, req.Username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.User{}, errs.ErrInvalidCredentials
		}
		return model.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return model.User{}, errs.ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) ListBooks(ctx context.Context, q model.ListBooksQuery) ([]model.BookStats, error) {
	books, err := s.repo.ListBooks(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := s.fillLikeCounts(ctx, books); err != nil {
		return nil, err
	}
	return books, nil
}

func (s *Service) GetBook(ctx context.Context, id int64) (model.BookStats, error) {
	book, err := s.repo.GetBook(ctx, id)
	if err != nil {
		return model.BookStats{}, err
	}
	count, err := s.repo.LikeCount(ctx, book.ID)
	if err != nil {
		return model.BookStats{}, err
	}
	book.LikeCount = count
	return book, nil
}

func (s *Service) CreateBook(ctx context.Context, userName string, req model.BookCreateRequest) (model.BookStats, error) {
	user, err := s.requester(ctx, userName)
	if err != nil {
		return model.BookStats{}, err
	}
	if err := validateBookFields(&req.Name, &req.Price, &req.AuthorName); err != nil {
		return model.BookStats{}, err
	}

	book := model.Book{
		Name:       req.Name,
		Price:      req.Price,
		AuthorName: req.AuthorName,
	}
	// owner is always the requester, whatever the client sent.
	book.OwnerID.Int64, book.OwnerID.Valid = user.ID, true

	created, err := s.repo.CreateBook(ctx, book)
	if err != nil {
		return model.BookStats{}, err
	}
	s.publish(model.EventBookCreated, created.ID, user.Username)
	return created, nil
}

func (s *Service) UpdateBook(ctx context.Context, userName string, id int64, upd model.BookUpdateRequest) (model.BookStats, error) {
	user, err := s.requester(ctx, userName)
	if err != nil {
		return model.BookStats{}, err
	}
	book, err := s.repo.GetBook(ctx, id)
	if err != nil {
		return model.BookStats{}, err
	}
	if !canModify(user, book.Book) {
		return model.BookStats{}, errs.ErrPermissionDenied
	}
	if err := validateBookFields(upd.Name, upd.Price, upd.AuthorName); err != nil {
		return model.BookStats{}, err
	}

	updated, err := s.repo.UpdateBook(ctx, id, upd)
	if err != nil {
		return model.BookStats{}, err
	}
	count, err := s.repo.LikeCount(ctx, updated.ID)
	if err != nil {
		return model.BookStats{}, err
	}
	updated.LikeCount = count

	s.publish(model.EventBookUpdated, id, user.Username)
	return updated, nil
}

func (s *Service) DeleteBook(ctx context.Context, userName string, id int64) error {
	user, err := s.requester(ctx, userName)
	if err != nil {
		return err
	}
	book, err := s.repo.GetBook(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(user, book.Book) {
		return errs.ErrPermissionDenied
	}
	if err := s.repo.DeleteBook(ctx, id); err != nil {
		return err
	}
	s.publish(model.EventBookDeleted, id, user.Username)
	return nil
}

func (s *Service) PatchRelation(ctx context.Context, userName string, bookID int64, req model.RelationPatchRequest) (model.UserBookRelation, error) {
	user, err := s.requester(ctx, userName)
	if err != nil {
		return model.UserBookRelation{}, err
	}
	if req.Rate != nil && (*req.Rate < 1 || *req.Rate > 5) {
		return model.UserBookRelation{}, errs.NewValidationError("rate",
			fmt.Sprintf("\"%d\" is not a valid choice.", *req.Rate))
	}

	rel, err := s.repo.PatchRelation(ctx, user.ID, bookID, req)
	if err != nil {
		return model.UserBookRelation{}, err
	}
	s.publish(model.EventRelationChanged, bookID, user.Username)
	return rel, nil
}

func (s *Service) RecordActivity(ctx context.Context, ev model.ActivityEvent) error {
	return s.repo.RecordActivity(ctx, ev)
}

// requester resolves the authenticated username to a stored user. A missing
// name or a token for a user that no longer exists counts as anonymous.
func (s *Service) requester(ctx context.Context, userName string) (model.User, error) {
	if userName == "" {
		return model.User{}, errs.ErrNotAuthenticated
	}
	user, err := s.repo.GetUser(ctx, userName)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.User{}, errs.ErrNotAuthenticated
		}
		return model.User{}, err
	}
	return user, nil
}

// canModify is the owner-or-staff write predicate.
func canModify(user model.User, book model.Book) bool {
	return user.IsStaff || (book.OwnerID.Valid && book.OwnerID.Int64 == user.ID)
}

func validateBookFields(name *string, price *float64, authorName *string) error {
	if name != nil {
		if err := model.ValidName("name", *name); err != nil {
			return err
		}
	}
	if authorName != nil {
		if err := model.ValidName("author_name", *authorName); err != nil {
			return err
		}
	}
	if price != nil {
		if err := model.ValidPrice("price", *price); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) fillLikeCounts(ctx context.Context, books []model.BookStats) error {
	gg, ctx := errgroup.WithContext(ctx)
	gg.SetLimit(likeCountParallelism)
	for i := range books {
		i := i
		gg.Go(func() error {
			count, err := s.repo.LikeCount(ctx, books[i].ID)
			if err != nil {
				return err
			}
			books[i].LikeCount = count
			return nil
		})
	}
	return gg.Wait()
}

func (s *Service) publish(eventType string, bookID int64, username string) {
	if s.enq == nil {
		return
	}
	ev := model.ActivityEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		BookID:     bookID,
		Username:   username,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.enq.Enqueue(kafka.ActivityTopic, ev); err != nil {
		s.log.Warn("enqueue activity", zap.String("type", eventType), zap.Error(err))
	}
}
