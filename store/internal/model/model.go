package model

import (
	"database/sql"
	"fmt"
	"time"
)

type User struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
	IsStaff      bool   `json:"is_staff" db:"is_staff"`
}

type Book struct {
	ID         int64         `db:"id"`
	Name       string        `db:"name"`
	Price      float64       `db:"price"`
	AuthorName string        `db:"author_name"`
	OwnerID    sql.NullInt64 `db:"owner_id"`
}

// BookStats is a book row with its relation aggregates. AnnotatedLike comes
// from the grouped aggregate in the list/get query; LikeCount is recounted
// independently per record and must always match it.
type BookStats struct {
	Book
	AnnotatedLike int             `db:"annotated_like"`
	MidRate       sql.NullFloat64 `db:"mid_rate"`
	LikeCount     int             `db:"-"`
}

type UserBookRelation struct {
	ID          int64         `db:"id"`
	UserID      int64         `db:"user_id"`
	BookID      int64         `db:"book_id"`
	IsLiked     bool          `db:"is_liked"`
	InBookmarks bool          `db:"in_bookmarks"`
	Rate        sql.NullInt16 `db:"rate"`
}

type UserCreateRequest struct {
	Username string `json:"username" validate:"required,min=2,max=150"`
	Password string `json:"password" validate:"required,min=8"`
}

type AuthRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	ExpiresIn   int    `json:"expires_in"`
	AccessToken string `json:"access_token"`
}

type BookCreateRequest struct {
	Name       string  `json:"name" validate:"required"`
	Price      float64 `json:"price" validate:"required"`
	AuthorName string  `json:"author_name" validate:"required"`
}

// BookUpdateRequest carries a partial update; nil fields stay untouched.
type BookUpdateRequest struct {
	Name       *string  `json:"name"`
	Price      *float64 `json:"price"`
	AuthorName *string  `json:"author_name"`
}

type RelationPatchRequest struct {
	Like        *bool `json:"like"`
	InBookmarks *bool `json:"in_bookmarks"`
	Rate        *int  `json:"rate"`
}

type RelationResponse struct {
	Book        int64 `json:"book"`
	Like        bool  `json:"like"`
	InBookmarks bool  `json:"in_bookmarks"`
	Rate        *int  `json:"rate"`
}

func NewRelationResponse(rel UserBookRelation) RelationResponse {
	resp := RelationResponse{
		Book:        rel.BookID,
		Like:        rel.IsLiked,
		InBookmarks: rel.InBookmarks,
	}
	if rel.Rate.Valid {
		rate := int(rel.Rate.Int16)
		resp.Rate = &rate
	}
	return resp
}

// BookResponse renders price and mid_rate as fixed two-decimal strings;
// mid_rate is null until the book has at least one rated relation.
type BookResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Price         string  `json:"price"`
	AuthorName    string  `json:"author_name"`
	LikeCount     int     `json:"like_count"`
	AnnotatedLike int     `json:"annotated_like"`
	MidRate       *string `json:"mid_rate"`
}

func NewBookResponse(b BookStats) BookResponse {
	resp := BookResponse{
		ID:            b.ID,
		Name:          b.Name,
		Price:         fmt.Sprintf("%.2f", b.Price),
		AuthorName:    b.AuthorName,
		LikeCount:     b.LikeCount,
		AnnotatedLike: b.AnnotatedLike,
	}
	if b.MidRate.Valid {
		mid := fmt.Sprintf("%.2f", b.MidRate.Float64)
		resp.MidRate = &mid
	}
	return resp
}

func NewBookResponses(books []BookStats) []BookResponse {
	resp := make([]BookResponse, len(books))
	for i := range books {
		resp[i] = NewBookResponse(books[i])
	}
	return resp
}

// ListBooksQuery mirrors the list endpoint query params: search matches
// name/author_name substrings, price filters on equality, ordering is one of
// the whitelisted fields with an optional leading '-'.
type ListBooksQuery struct {
	Search   string
	Price    *float64
	Ordering string
}

const (
	EventBookCreated     = "book.created"
	EventBookUpdated     = "book.updated"
	EventBookDeleted     = "book.deleted"
	EventRelationChanged = "relation.changed"
)

type ActivityEvent struct {
	EventID    string    `json:"event_id" db:"event_id"`
	EventType  string    `json:"event_type" db:"event_type"`
	BookID     int64     `json:"book_id" db:"book_id"`
	Username   string    `json:"username" db:"username"`
	OccurredAt time.Time `json:"occurred_at" db:"occurred_at"`
}
