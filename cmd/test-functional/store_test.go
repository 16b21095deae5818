package test_functional

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookResp struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Price         string  `json:"price"`
	AuthorName    string  `json:"author_name"`
	LikeCount     int     `json:"like_count"`
	AnnotatedLike int     `json:"annotated_like"`
	MidRate       *string `json:"mid_rate"`
}

type authResp struct {
	ExpiresIn   int    `json:"expires_in"`
	AccessToken string `json:"access_token"`
}

func apiURL(path string) string {
	u := AppBaseURL
	u.Path = "/api/v1" + path
	return u.String()
}

func registerAndLogin(t *testing.T, ctx context.Context, username string) string {
	t.Helper()
	cl := resty.New()
	body := fmt.Sprintf(`{"username":%q,"password":"functional-pass"}`, username)

	resp, err := cl.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(apiURL("/register"))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode())

	var auth authResp
	resp, err = cl.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&auth).
		Post(apiURL("/authorize"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.NotEmpty(t, auth.AccessToken)

	return auth.AccessToken
}

func TestBookLifecycle(t *testing.T) {
	defer FlushDB()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	cl := resty.New()
	owner := registerAndLogin(t, ctx, "owner")
	reader := registerAndLogin(t, ctx, "reader")
	critic := registerAndLogin(t, ctx, "critic")

	// anonymous write is rejected with the fixed message
	resp, err := cl.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(`{"name":"Clean Code","price":33.99,"author_name":"Robert Martin"}`).
		Post(apiURL("/book"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode())
	assert.JSONEq(t, `{"message":"Authentication credentials were not provided."}`, resp.String())

	var created bookResp
	resp, err = cl.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(owner).
		SetBody(`{"name":"Clean Code","price":33.99,"author_name":"Robert Martin"}`).
		SetResult(&created).
		Post(apiURL("/book"))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode())
	assert.Equal(t, "33.99", created.Price)
	assert.Equal(t, 0, created.LikeCount)
	assert.Nil(t, created.MidRate)

	bookPath := fmt.Sprintf("/book/%d", created.ID)
	relationPath := fmt.Sprintf("/book/relation/%d", created.ID)

	// reader likes and rates 5, critic rates 2
	resp, err = cl.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(reader).
		SetBody(`{"like":true,"rate":5}`).
		Patch(apiURL(relationPath))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	resp, err = cl.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(critic).
		SetBody(`{"rate":2}`).
		Patch(apiURL(relationPath))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	var got bookResp
	resp, err = cl.R().
		SetContext(ctx).
		SetResult(&got).
		Get(apiURL(bookPath))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, 1, got.LikeCount)
	assert.Equal(t, got.AnnotatedLike, got.LikeCount)
	require.NotNil(t, got.MidRate)
	assert.Equal(t, "3.50", *got.MidRate)

	// a non-owner cannot modify the book
	resp, err = cl.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(reader).
		SetBody(`{"name":"Hijacked","price":1.00,"author_name":"Reader"}`).
		Put(apiURL(bookPath))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode())
	assert.JSONEq(t, `{"message":"You do not have permission to perform this action."}`, resp.String())

	// the owner can
	var updated bookResp
	resp, err = cl.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(owner).
		SetBody(`{"price":42.00}`).
		SetResult(&updated).
		Patch(apiURL(bookPath))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "42.00", updated.Price)

	resp, err = cl.R().
		SetContext(ctx).
		SetAuthToken(owner).
		Delete(apiURL(bookPath))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode())

	resp, err = cl.R().
		SetContext(ctx).
		Get(apiURL(bookPath))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}

func TestRelationRateValidation(t *testing.T) {
	defer FlushDB()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	cl := resty.New()
	owner := registerAndLogin(t, ctx, "owner")

	var created bookResp
	resp, err := cl.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(owner).
		SetBody(`{"name":"SICP","price":25.00,"author_name":"Abelson"}`).
		SetResult(&created).
		Post(apiURL("/book"))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode())

	resp, err = cl.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(owner).
		SetBody(`{"rate":6}`).
		Patch(apiURL(fmt.Sprintf("/book/relation/%d", created.ID)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
	assert.JSONEq(t, `{"message":{"rate":["\"6\" is not a valid choice."]}}`, resp.String())

	// the rejected rate must not leave any relation row behind
	var n int
	err = DBConn.QueryRowContext(ctx,
		"select count(*) from user_book_relations where book_id = $1 and rate is not null", created.ID).Scan(&n)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSearchAndOrdering(t *testing.T) {
	defer FlushDB()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	cl := resty.New()
	owner := registerAndLogin(t, ctx, "owner")

	for _, body := range []string{
		`{"name":"Clean Code","price":33.99,"author_name":"Robert Martin"}`,
		`{"name":"Clean Architecture","price":39.99,"author_name":"Robert Martin"}`,
		`{"name":"SICP","price":25.00,"author_name":"Abelson"}`,
	} {
		resp, err := cl.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetAuthToken(owner).
			SetBody(body).
			Post(apiURL("/book"))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode())
	}

	var books []bookResp
	resp, err := cl.R().
		SetContext(ctx).
		SetResult(&books).
		SetQueryParams(map[string]string{"search": "clean", "ordering": "-price"}).
		Get(apiURL("/book"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.Len(t, books, 2)
	assert.Equal(t, "Clean Architecture", books[0].Name)
	assert.Equal(t, "Clean Code", books[1].Name)

	// an unknown ordering field is ignored, not an error
	books = nil
	resp, err = cl.R().
		SetContext(ctx).
		SetResult(&books).
		SetQueryParam("ordering", "no_such_field").
		Get(apiURL("/book"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Len(t, books, 3)
}
