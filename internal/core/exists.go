package core

import (
	"context"
	"database/sql"

	"github.com/mdobak/go-xerrors"
	"github.com/rbeckert/forum/internal/httperr"
	"github.com/rbeckert/forum/internal/utils/databaseutils"
)

func (c *Core) exists(ctx context.Context, query string, arg any) (bool, error) {
	found, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (bool, error) {
		var found bool
		if err := rows.Scan(&found); err != nil {
			return false, xerrors.New(err)
		}
		return found, nil
	}, arg)
	if err != nil {
		return false, wrapDataError(err)
	}

	return found, nil
}

func (c *Core) userExists(ctx context.Context, username string) (bool, error) {
	const selectSQL = `
		SELECT EXISTS (
			SELECT 1 FROM users WHERE username = $1
		)
	`
	return c.exists(ctx, selectSQL, username)
}

func (c *Core) topicExists(ctx context.Context, slug string) (bool, error) {
	const selectSQL = `
		SELECT EXISTS (
			SELECT 1 FROM topics WHERE slug = $1
		)
	`
	return c.exists(ctx, selectSQL, slug)
}

func (c *Core) articleExists(ctx context.Context, articleID int64) (bool, error) {
	const selectSQL = `
		SELECT EXISTS (
			SELECT 1 FROM articles WHERE article_id = $1
		)
	`
	return c.exists(ctx, selectSQL, articleID)
}

// CheckUserExists fails with a 404 naming the username when it does not
// exist. Used both for the author filter on list endpoints and for the
// /users/:username lookups.
func (c *Core) CheckUserExists(ctx context.Context, username string) error {
	found, err := c.userExists(ctx, username)
	if err != nil {
		return err
	}
	if !found {
		return httperr.NotFoundf("Could not find a user with the username '%s'", username)
	}
	return nil
}

func (c *Core) CheckTopicExists(ctx context.Context, slug string) error {
	found, err := c.topicExists(ctx, slug)
	if err != nil {
		return err
	}
	if !found {
		return httperr.NotFoundf("Could not find a topic with the slug '%s'", slug)
	}
	return nil
}

func (c *Core) CheckArticleExists(ctx context.Context, articleID int64) error {
	found, err := c.articleExists(ctx, articleID)
	if err != nil {
		return err
	}
	if !found {
		return httperr.NotFoundf("Could not find an article with the article ID %q.", formatID(articleID))
	}
	return nil
}

// UserValidity reports absence as a plain false rather than a 404. The
// /users/:username/validate endpoint exists for client-side pre-validation,
// so a missing user is a successful answer there, not an error.
func (c *Core) UserValidity(ctx context.Context, username string) (bool, error) {
	return c.userExists(ctx, username)
}
