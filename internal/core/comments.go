package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mdobak/go-xerrors"
	"github.com/rbeckert/forum/internal/httperr"
	"github.com/rbeckert/forum/internal/paginate"
	"github.com/rbeckert/forum/internal/utils/databaseutils"
	"github.com/rbeckert/forum/internal/validator"
	"github.com/rbeckert/forum/models"
)

var commentListSpec = validator.Spec{
	"sort_by": validator.OneOf("created_at", "votes", "author", "body"),
	"order":   validator.OneOf("asc", "desc"),
	"author":  validator.Any(),
	"limit":   validator.PositiveNumeric(),
	"page":    validator.PositiveNumeric(),
}

var commentSortColumns = map[string]string{
	"created_at": "comments.created_at",
	"votes":      "comments.votes",
	"author":     "comments.author",
	"body":       "comments.body",
}

var commentCreateSpec = validator.Spec{
	"username": validator.NotBlankString(),
	"body":     validator.NotBlankString(),
}

// GetCommentsByArticle lists an article's comments; the article must exist.
// Supports the same sort/filter/pagination pipeline as the article list.
func (c *Core) GetCommentsByArticle(ctx context.Context, articleID string, query map[string]any) ([]*models.Comment, int64, *paginate.Metadata, error) {
	if err := validator.CheckID(articleID, "article"); err != nil {
		return nil, 0, nil, err
	}
	id, _ := strconv.ParseInt(articleID, 10, 64)

	query = validator.RenameKeys(query, queryAliases...)
	if err := validator.CheckProperties(query, commentListSpec, "query"); err != nil {
		return nil, 0, nil, err
	}
	limit, page, err := readPagination(query)
	if err != nil {
		return nil, 0, nil, err
	}

	if err := c.CheckArticleExists(ctx, id); err != nil {
		return nil, 0, nil, err
	}

	conditions := []string{"comments.article_id = $1"}
	args := []any{id}
	if author, ok := stringValue(query, "author"); ok {
		if err := c.CheckUserExists(ctx, author); err != nil {
			return nil, 0, nil, err
		}
		args = append(args, author)
		conditions = append(conditions, fmt.Sprintf("comments.author = $%d", len(args)))
	}

	return c.listComments(ctx, strings.Join(conditions, " AND "), args, query, limit, page)
}

// GetCommentsByUser lists every comment a user has written, newest first by
// default. The user must exist.
func (c *Core) GetCommentsByUser(ctx context.Context, username string, query map[string]any) ([]*models.Comment, int64, *paginate.Metadata, error) {
	query = validator.RenameKeys(query, queryAliases...)
	if err := validator.CheckProperties(query, commentListSpec, "query"); err != nil {
		return nil, 0, nil, err
	}
	limit, page, err := readPagination(query)
	if err != nil {
		return nil, 0, nil, err
	}

	if err := c.CheckUserExists(ctx, username); err != nil {
		return nil, 0, nil, err
	}

	return c.listComments(ctx, "comments.author = $1", []any{username}, query, limit, page)
}

func (c *Core) listComments(ctx context.Context, whereClause string, args []any, query map[string]any, limit, page int64) ([]*models.Comment, int64, *paginate.Metadata, error) {
	selectSQL := fmt.Sprintf(`
		SELECT comments.comment_id, comments.author, comments.article_id, comments.votes, comments.body, comments.created_at
		FROM comments
		WHERE %s
		ORDER BY %s
	`, whereClause, orderBy(query, commentSortColumns, "created_at", "desc", "comments.comment_id"))

	comments, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, selectSQL, scanComment, args...)
	if err != nil {
		return nil, 0, nil, wrapDataError(err)
	}

	total := int64(len(comments))
	if limit > 0 {
		pageItems, metadata, err := paginate.Paginate(comments, limit, page)
		if err != nil {
			return nil, 0, nil, err
		}
		return pageItems, total, &metadata, nil
	}

	return comments, total, nil, nil
}

// CreateComment validates the payload before any store round-trip, then
// confirms the article exists and inserts within one transaction. The
// username key becomes the author column.
func (c *Core) CreateComment(ctx context.Context, articleID string, payload map[string]any) (*models.Comment, error) {
	if err := validator.CheckID(articleID, "article"); err != nil {
		return nil, err
	}
	if err := validator.CheckExactKeys(payload, commentCreateSpec, "body", "username"); err != nil {
		return nil, err
	}

	payload = validator.RenameKeys(payload, validator.AliasPair{From: "username", To: "author"})
	author, _ := stringValue(payload, "author")
	body, _ := stringValue(payload, "body")
	id, _ := strconv.ParseInt(articleID, 10, 64)

	return databaseutils.DoTransactionally(ctx, c.session, func(txCtx context.Context) (*models.Comment, error) {
		if err := c.CheckArticleExists(txCtx, id); err != nil {
			return nil, err
		}

		const insertSQL = `
			INSERT INTO comments (author, article_id, body)
			VALUES ($1, $2, $3)
			RETURNING comment_id, author, article_id, votes, body, created_at
		`

		comment, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, txCtx, insertSQL, scanComment, author, id, body)
		if err != nil {
			return nil, wrapDataError(err)
		}

		c.log.Info("comment created", "comment_id", comment.CommentID, "article_id", comment.ArticleID, "author", comment.Author)
		return comment, nil
	})
}

// UpdateCommentVotes is the comment twin of UpdateArticleVotes: one atomic
// relative increment, 404 when no row was touched.
func (c *Core) UpdateCommentVotes(ctx context.Context, commentID string, payload map[string]any) (*models.Comment, error) {
	if err := validator.CheckID(commentID, "comment"); err != nil {
		return nil, err
	}
	if err := validator.CheckProperties(payload, validator.Spec{"inc_votes": validator.Numeric()}, "JSON passed in request"); err != nil {
		return nil, err
	}
	incVotes, err := requireNumeric(payload, "inc_votes")
	if err != nil {
		return nil, err
	}
	id, _ := strconv.ParseInt(commentID, 10, 64)

	const updateSQL = `
		UPDATE comments
		SET votes = votes + $1
		WHERE comment_id = $2
		RETURNING comment_id, author, article_id, votes, body, created_at
	`

	comment, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, updateSQL, scanComment, incVotes, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperr.NotFoundf("Not found. Could not find a comment with comment_id of %q", commentID)
		}
		return nil, wrapDataError(err)
	}

	return comment, nil
}

func (c *Core) DeleteComment(ctx context.Context, commentID string) error {
	if err := validator.CheckID(commentID, "comment"); err != nil {
		return err
	}
	id, _ := strconv.ParseInt(commentID, 10, 64)

	const deleteSQL = `
		DELETE FROM comments
		WHERE comment_id = $1
	`

	affected, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, deleteSQL, id)
	if err != nil {
		return wrapDataError(err)
	}
	if affected == 0 {
		return httperr.NotFoundf("Not found. Could not find a comment with comment_id of %q", commentID)
	}

	return nil
}

func scanComment(rows *sql.Rows) (*models.Comment, error) {
	var comment models.Comment
	if err := rows.Scan(&comment.CommentID, &comment.Author, &comment.ArticleID, &comment.Votes, &comment.Body, &comment.CreatedAt); err != nil {
		return nil, xerrors.New(err)
	}
	return &comment, nil
}
