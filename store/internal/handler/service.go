package handler

import (
	"context"

	storeModel "github.com/Astemirdum/store-service/store/internal/model"

	"github.com/Astemirdum/store-service/store/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type StoreService interface {
	Register(ctx context.Context, req storeModel.UserCreateRequest) (storeModel.User, error)
	Authorize(ctx context.Context, req storeModel.AuthRequest) (storeModel.User, error)

	ListBooks(ctx context.Context, q storeModel.ListBooksQuery) ([]storeModel.BookStats, error)
	GetBook(ctx context.Context, id int64) (storeModel.BookStats, error)
	CreateBook(ctx context.Context, userName string, req storeModel.BookCreateRequest) (storeModel.BookStats, error)
	UpdateBook(ctx context.Context, userName string, id int64, upd storeModel.BookUpdateRequest) (storeModel.BookStats, error)
	DeleteBook(ctx context.Context, userName string, id int64) error

	PatchRelation(ctx context.Context, userName string, bookID int64, req storeModel.RelationPatchRequest) (storeModel.UserBookRelation, error)

	RecordActivity(ctx context.Context, ev storeModel.ActivityEvent) error
}

var _ StoreService = (*service.Service)(nil)
