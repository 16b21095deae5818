package repository

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/store-service/store/internal/errs"
	"github.com/Astemirdum/store-service/store/internal/model"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

type Repository interface {
	CreateUser(ctx context.Context, username, passwordHash string) (model.User, error)
	GetUser(ctx context.Context, username string) (model.User, error)

	ListBooks(ctx context.Context, q model.ListBooksQuery) ([]model.BookStats, error)
	GetBook(ctx context.Context, id int64) (model.BookStats, error)
	LikeCount(ctx context.Context, bookID int64) (int, error)
	CreateBook(ctx context.Context, book model.Book) (model.BookStats, error)
	UpdateBook(ctx context.Context, id int64, upd model.BookUpdateRequest) (model.BookStats, error)
	DeleteBook(ctx context.Context, id int64) error

	PatchRelation(ctx context.Context, userID, bookID int64, patch model.RelationPatchRequest) (model.UserBookRelation, error)

	RecordActivity(ctx context.Context, ev model.ActivityEvent) error
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	usersTableName     = `users`
	booksTableName     = `books`
	relationsTableName = `user_book_relations`
	activityTableName  = `activity_log`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// aggregated book columns shared by ListBooks and GetBook. annotated_like is
// the set-based like count; mid_rate averages the non-null rates.
var bookStatsColumns = []string{
	"b.id", "b.name", "b.price", "b.author_name", "b.owner_id",
	"count(r.id) filter (where r.is_liked) as annotated_like",
	"avg(r.rate) as mid_rate",
}

var bookOrderings = map[string]string{
	"price":        "b.price",
	"-price":       "b.price DESC",
	"author_name":  "b.author_name",
	"-author_name": "b.author_name DESC",
}

func (r *repository) CreateUser(ctx context.Context, username, passwordHash string) (model.User, error) {
	query, args, err := qb.Insert(usersTableName).
		Columns("username", "password_hash").
		Values(username, passwordHash).
		Suffix("returning id, username, password_hash, is_staff").
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		if pgErrCode(err) == pgerrcode.UniqueViolation {
			return model.User{}, errs.ErrUserExists
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *repository) GetUser(ctx context.Context, username string) (model.User, error) {
	query, args, err := qb.Select("id", "username", "password_hash", "is_staff").
		From(usersTableName).
		Where(sq.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.ErrNotFound
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *repository) ListBooks(ctx context.Context, listQ model.ListBooksQuery) ([]model.BookStats, error) {
	q := qb.Select(bookStatsColumns...).
		From(booksTableName + " b").
		LeftJoin(relationsTableName + " r on r.book_id = b.id").
		GroupBy("b.id")

	if listQ.Search != "" {
		pattern := "%" + listQ.Search + "%"
		q = q.Where(sq.Or{
			sq.ILike{"b.name": pattern},
			sq.ILike{"b.author_name": pattern},
		})
	}
	if listQ.Price != nil {
		q = q.Where(sq.Eq{"b.price": *listQ.Price})
	}
	if clause, ok := bookOrderings[listQ.Ordering]; ok {
		q = q.OrderBy(clause, "b.id")
	} else {
		q = q.OrderBy("b.id")
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	r.log.Debug("ListBooks", zap.String("query", query), zap.Any("args", args))

	books := make([]model.BookStats, 0)
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *repository) GetBook(ctx context.Context, id int64) (model.BookStats, error) {
	query, args, err := qb.Select(bookStatsColumns...).
		From(booksTableName + " b").
		LeftJoin(relationsTableName + " r on r.book_id = b.id").
		Where(sq.Eq{"b.id": id}).
		GroupBy("b.id").
		ToSql()
	if err != nil {
		return model.BookStats{}, err
	}

	var book model.BookStats
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BookStats{}, errs.ErrNotFound
		}
		return model.BookStats{}, err
	}
	return book, nil
}

// LikeCount recounts likes for a single book. The list and get paths expose
// this next to the aggregate count on purpose: the two must agree.
func (r *repository) LikeCount(ctx context.Context, bookID int64) (int, error) {
	query, args, err := qb.Select("count(*)").
		From(relationsTableName).
		Where(sq.Eq{"book_id": bookID, "is_liked": true}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) CreateBook(ctx context.Context, book model.Book) (model.BookStats, error) {
	query, args, err := qb.Insert(booksTableName).
		Columns("name", "price", "author_name", "owner_id").
		Values(book.Name, book.Price, book.AuthorName, book.OwnerID).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return model.BookStats{}, err
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.log.Error("CreateBook", zap.String("q", query), zap.Any("args", args))
		return model.BookStats{}, err
	}
	return r.GetBook(ctx, id)
}

func (r *repository) UpdateBook(ctx context.Context, id int64, upd model.BookUpdateRequest) (model.BookStats, error) {
	set := map[string]interface{}{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.AuthorName != nil {
		set["author_name"] = *upd.AuthorName
	}
	if len(set) == 0 {
		return r.GetBook(ctx, id)
	}

	query, args, err := qb.Update(booksTableName).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.BookStats{}, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return model.BookStats{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return model.BookStats{}, errs.ErrNotFound
	}
	return r.GetBook(ctx, id)
}

func (r *repository) DeleteBook(ctx context.Context, id int64) error {
	query, args, err := qb.Delete(booksTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// PatchRelation finds or inserts the (user, book) relation row and applies
// the provided fields in one transaction. The ON CONFLICT guard keeps a
// concurrent first patch from failing on the unique (user_id, book_id) key.
func (r *repository) PatchRelation(ctx context.Context, userID, bookID int64, patch model.RelationPatchRequest) (model.UserBookRelation, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.UserBookRelation{}, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	insQuery, insArgs, err := qb.Insert(relationsTableName).
		Columns("user_id", "book_id").
		Values(userID, bookID).
		Suffix("on conflict (user_id, book_id) do nothing").
		ToSql()
	if err != nil {
		return model.UserBookRelation{}, err
	}
	if _, err := tx.ExecContext(ctx, insQuery, insArgs...); err != nil {
		if pgErrCode(err) == pgerrcode.ForeignKeyViolation {
			return model.UserBookRelation{}, errs.ErrNotFound
		}
		return model.UserBookRelation{}, err
	}

	set := map[string]interface{}{}
	if patch.Like != nil {
		set["is_liked"] = *patch.Like
	}
	if patch.InBookmarks != nil {
		set["in_bookmarks"] = *patch.InBookmarks
	}
	if patch.Rate != nil {
		set["rate"] = *patch.Rate
	}

	var rel model.UserBookRelation
	if len(set) == 0 {
		query, args, err := qb.Select("id", "user_id", "book_id", "is_liked", "in_bookmarks", "rate").
			From(relationsTableName).
			Where(sq.Eq{"user_id": userID, "book_id": bookID}).
			ToSql()
		if err != nil {
			return model.UserBookRelation{}, err
		}
		if err := tx.GetContext(ctx, &rel, query, args...); err != nil {
			return model.UserBookRelation{}, err
		}
	} else {
		query, args, err := qb.Update(relationsTableName).
			SetMap(set).
			Where(sq.Eq{"user_id": userID, "book_id": bookID}).
			Suffix("returning id, user_id, book_id, is_liked, in_bookmarks, rate").
			ToSql()
		if err != nil {
			return model.UserBookRelation{}, err
		}
		if err := tx.GetContext(ctx, &rel, query, args...); err != nil {
			r.log.Error("PatchRelation", zap.String("q", query), zap.Any("args", args))
			return model.UserBookRelation{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return model.UserBookRelation{}, errors.Wrap(err, "commit tx")
	}
	return rel, nil
}

func (r *repository) RecordActivity(ctx context.Context, ev model.ActivityEvent) error {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	query, args, err := qb.Insert(activityTableName).
		Columns("event_id", "event_type", "book_id", "username", "occurred_at").
		Values(ev.EventID, ev.EventType, ev.BookID, ev.Username, ev.OccurredAt).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
