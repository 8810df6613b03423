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

var articleListSpec = validator.Spec{
	"sort_by": validator.OneOf("created_at", "votes", "comment_count", "title", "topic", "author", "article_id"),
	"order":   validator.OneOf("asc", "desc"),
	"author":  validator.Any(),
	"topic":   validator.Any(),
	"limit":   validator.PositiveNumeric(),
	"page":    validator.PositiveNumeric(),
}

// Maps allow-listed sort keys to the columns the query may order by.
// comment_count is the aggregate's output alias, everything else is a real
// column.
var articleSortColumns = map[string]string{
	"created_at":    "articles.created_at",
	"votes":         "articles.votes",
	"comment_count": "comment_count",
	"title":         "articles.title",
	"topic":         "articles.topic",
	"author":        "articles.author",
	"article_id":    "articles.article_id",
}

var articleCreateSpec = validator.Spec{
	"title":    validator.NotBlankString(),
	"body":     validator.NotBlankString(),
	"topic":    validator.NotBlankString(),
	"username": validator.NotBlankString(),
}

// GetArticles lists articles with their derived comment counts, filtered by
// author and/or topic, sorted by an allow-listed column, and paginated when
// a limit is supplied. A filter value naming a nonexistent entity is a 404;
// an existing filter value matching zero rows is an empty 200.
func (c *Core) GetArticles(ctx context.Context, query map[string]any) ([]*models.Article, int64, *paginate.Metadata, error) {
	query = validator.RenameKeys(query, queryAliases...)

	if err := validator.CheckProperties(query, articleListSpec, "query"); err != nil {
		return nil, 0, nil, err
	}
	limit, page, err := readPagination(query)
	if err != nil {
		return nil, 0, nil, err
	}

	conditions := make([]string, 0, 2)
	args := make([]any, 0, 2)
	if author, ok := stringValue(query, "author"); ok {
		if err := c.CheckUserExists(ctx, author); err != nil {
			return nil, 0, nil, err
		}
		args = append(args, author)
		conditions = append(conditions, fmt.Sprintf("articles.author = $%d", len(args)))
	}
	if topic, ok := stringValue(query, "topic"); ok {
		if err := c.CheckTopicExists(ctx, topic); err != nil {
			return nil, 0, nil, err
		}
		args = append(args, topic)
		conditions = append(conditions, fmt.Sprintf("articles.topic = $%d", len(args)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	selectSQL := fmt.Sprintf(`
		SELECT articles.article_id, articles.title, articles.topic, articles.author, articles.votes, articles.created_at,
		       COUNT(comments.comment_id)::int AS comment_count
		FROM articles
		LEFT JOIN comments ON comments.article_id = articles.article_id
		%s
		GROUP BY articles.article_id
		ORDER BY %s
	`, whereClause, orderBy(query, articleSortColumns, "created_at", "desc", "articles.article_id"))

	articles, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, selectSQL, scanArticleWithCount, args...)
	if err != nil {
		return nil, 0, nil, wrapDataError(err)
	}

	total := int64(len(articles))
	if limit > 0 {
		pageItems, metadata, err := paginate.Paginate(articles, limit, page)
		if err != nil {
			return nil, 0, nil, err
		}
		return pageItems, total, &metadata, nil
	}

	return articles, total, nil, nil
}

// GetArticleByID returns one article plus its comment count. The id is
// checked syntactically before the store is asked.
func (c *Core) GetArticleByID(ctx context.Context, articleID string) (*models.Article, error) {
	if err := validator.CheckID(articleID, "article"); err != nil {
		return nil, err
	}
	id, _ := strconv.ParseInt(articleID, 10, 64)

	const selectSQL = `
		SELECT articles.article_id, articles.title, articles.body, articles.topic, articles.author, articles.votes, articles.created_at,
		       COUNT(comments.comment_id)::int AS comment_count
		FROM articles
		LEFT JOIN comments ON comments.article_id = articles.article_id
		WHERE articles.article_id = $1
		GROUP BY articles.article_id
	`

	article, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, selectSQL, scanArticleRowWithCount, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperr.NotFoundf("Could not find an article with the article ID %q.", articleID)
		}
		return nil, wrapDataError(err)
	}

	return article, nil
}

// UpdateArticleVotes applies a relative vote increment as a single atomic
// statement, never a read-then-write, so concurrent increments on the same
// article cannot lose updates.
func (c *Core) UpdateArticleVotes(ctx context.Context, articleID string, payload map[string]any) (*models.Article, error) {
	if err := validator.CheckID(articleID, "article"); err != nil {
		return nil, err
	}
	if err := validator.CheckProperties(payload, validator.Spec{"inc_votes": validator.Numeric()}, "JSON passed in request"); err != nil {
		return nil, err
	}
	incVotes, err := requireNumeric(payload, "inc_votes")
	if err != nil {
		return nil, err
	}
	id, _ := strconv.ParseInt(articleID, 10, 64)

	const updateSQL = `
		UPDATE articles
		SET votes = votes + $1
		WHERE article_id = $2
		RETURNING article_id, title, body, topic, author, votes, created_at
	`

	article, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, updateSQL, scanArticle, incVotes, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperr.NotFoundf("Could not find an article with the article ID %q.", articleID)
		}
		return nil, wrapDataError(err)
	}

	return article, nil
}

// CreateArticle validates the payload, confirms the topic exists and
// inserts inside one transaction. The client-facing username key is renamed
// to the author column before storing.
func (c *Core) CreateArticle(ctx context.Context, payload map[string]any) (*models.Article, error) {
	if err := validator.CheckExactKeys(payload, articleCreateSpec, "title", "body", "topic", "username"); err != nil {
		return nil, err
	}

	payload = validator.RenameKeys(payload, validator.AliasPair{From: "username", To: "author"})
	title, _ := stringValue(payload, "title")
	body, _ := stringValue(payload, "body")
	topic, _ := stringValue(payload, "topic")
	author, _ := stringValue(payload, "author")

	return databaseutils.DoTransactionally(ctx, c.session, func(txCtx context.Context) (*models.Article, error) {
		found, err := c.topicExists(txCtx, topic)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, httperr.NotFoundf("Topic '%s' does not exist.", topic)
		}

		const insertSQL = `
			INSERT INTO articles (title, body, topic, author)
			VALUES ($1, $2, $3, $4)
			RETURNING article_id, title, body, topic, author, votes, created_at
		`

		article, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, txCtx, insertSQL, scanArticle, title, body, topic, author)
		if err != nil {
			return nil, wrapDataError(err)
		}

		c.log.Info("article created", "article_id", article.ArticleID, "author", article.Author)
		return article, nil
	})
}

// DeleteArticle removes an article by id. Deleting its comments is the
// store's job through the ON DELETE CASCADE foreign key.
func (c *Core) DeleteArticle(ctx context.Context, articleID string) error {
	if err := validator.CheckID(articleID, "article"); err != nil {
		return err
	}
	id, _ := strconv.ParseInt(articleID, 10, 64)

	return c.session.DoTransactionally(ctx, func(txCtx context.Context) error {
		if err := c.CheckArticleExists(txCtx, id); err != nil {
			return err
		}

		const deleteSQL = `
			DELETE FROM articles
			WHERE article_id = $1
		`

		affected, err := databaseutils.ExecuteUpdate(c.sqlTemplate, txCtx, deleteSQL, id)
		if err != nil {
			return wrapDataError(err)
		}
		if affected == 0 {
			return httperr.NotFoundf("Could not find an article with the article ID %q.", articleID)
		}

		return nil
	})
}

func scanArticleWithCount(rows *sql.Rows) (*models.Article, error) {
	var article models.Article
	var commentCount int64
	if err := rows.Scan(&article.ArticleID, &article.Title, &article.Topic, &article.Author, &article.Votes, &article.CreatedAt, &commentCount); err != nil {
		return nil, xerrors.New(err)
	}
	article.CommentCount = &commentCount
	return &article, nil
}

func scanArticleRowWithCount(rows *sql.Rows) (*models.Article, error) {
	var article models.Article
	var commentCount int64
	if err := rows.Scan(&article.ArticleID, &article.Title, &article.Body, &article.Topic, &article.Author, &article.Votes, &article.CreatedAt, &commentCount); err != nil {
		return nil, xerrors.New(err)
	}
	article.CommentCount = &commentCount
	return &article, nil
}

func scanArticle(rows *sql.Rows) (*models.Article, error) {
	var article models.Article
	if err := rows.Scan(&article.ArticleID, &article.Title, &article.Body, &article.Topic, &article.Author, &article.Votes, &article.CreatedAt); err != nil {
		return nil, xerrors.New(err)
	}
	return &article, nil
}
