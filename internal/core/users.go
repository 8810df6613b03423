package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mdobak/go-xerrors"
	"github.com/rbeckert/forum/internal/httperr"
	"github.com/rbeckert/forum/internal/paginate"
	"github.com/rbeckert/forum/internal/utils/databaseutils"
	"github.com/rbeckert/forum/internal/validator"
	"github.com/rbeckert/forum/models"
)

var userListSpec = validator.Spec{
	"sort_by": validator.OneOf("username", "comment_count", "article_count", "comment_votes", "article_votes", "total_votes"),
	"order":   validator.OneOf("asc", "desc"),
	"limit":   validator.PositiveNumeric(),
	"page":    validator.PositiveNumeric(),
}

var userSortColumns = map[string]string{
	"username":      "username",
	"comment_count": "comment_count",
	"article_count": "article_count",
	"comment_votes": "comment_votes",
	"article_votes": "article_votes",
	"total_votes":   "total_votes",
}

// GetUsers lists every user with their activity aggregates. Sorting by
// username defaults ascending; every aggregate sort defaults descending.
// The counts and sums come out of subselects so the two joins cannot
// multiply each other's rows, and they are cast to int in SQL since the
// store would otherwise hand sums back as strings.
func (c *Core) GetUsers(ctx context.Context, query map[string]any) ([]*models.UserStats, int64, *paginate.Metadata, error) {
	query = validator.RenameKeys(query, queryAliases...)

	if err := validator.CheckProperties(query, userListSpec, "query"); err != nil {
		return nil, 0, nil, err
	}
	limit, page, err := readPagination(query)
	if err != nil {
		return nil, 0, nil, err
	}

	sortBy, _ := stringValue(query, "sort_by")
	defaultOrder := "desc"
	if sortBy == "" || sortBy == "username" {
		defaultOrder = "asc"
	}

	selectSQL := fmt.Sprintf(`
		SELECT username, avatar_url, name, comment_count, article_count, comment_votes, article_votes,
		       comment_votes + article_votes AS total_votes
		FROM (
			SELECT users.username, users.avatar_url, users.name,
			       (SELECT COUNT(*)::int FROM comments WHERE comments.author = users.username) AS comment_count,
			       (SELECT COUNT(*)::int FROM articles WHERE articles.author = users.username) AS article_count,
			       (SELECT COALESCE(SUM(comments.votes), 0)::int FROM comments WHERE comments.author = users.username) AS comment_votes,
			       (SELECT COALESCE(SUM(articles.votes), 0)::int FROM articles WHERE articles.author = users.username) AS article_votes
			FROM users
		) AS user_stats
		ORDER BY %s
	`, orderBy(query, userSortColumns, "username", defaultOrder, "username"))

	users, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, selectSQL, scanUserStats)
	if err != nil {
		return nil, 0, nil, wrapDataError(err)
	}

	total := int64(len(users))
	if limit > 0 {
		pageItems, metadata, err := paginate.Paginate(users, limit, page)
		if err != nil {
			return nil, 0, nil, err
		}
		return pageItems, total, &metadata, nil
	}

	return users, total, nil, nil
}

func (c *Core) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const selectSQL = `
		SELECT username, avatar_url, name
		FROM users
		WHERE username = $1
	`

	user, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, selectSQL, func(rows *sql.Rows) (*models.User, error) {
		var user models.User
		if err := rows.Scan(&user.Username, &user.AvatarURL, &user.Name); err != nil {
			return nil, xerrors.New(err)
		}
		return &user, nil
	}, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperr.NotFoundf("Could not find a user with the username '%s'", username)
		}
		return nil, wrapDataError(err)
	}

	return user, nil
}

func scanUserStats(rows *sql.Rows) (*models.UserStats, error) {
	var stats models.UserStats
	if err := rows.Scan(&stats.Username, &stats.AvatarURL, &stats.Name,
		&stats.CommentCount, &stats.ArticleCount, &stats.CommentVotes, &stats.ArticleVotes, &stats.TotalVotes); err != nil {
		return nil, xerrors.New(err)
	}
	return &stats, nil
}
