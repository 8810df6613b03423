package core

import (
	"context"
	"database/sql"

	"github.com/mdobak/go-xerrors"
	"github.com/rbeckert/forum/internal/utils/databaseutils"
	"github.com/rbeckert/forum/models"
)

func (c *Core) GetTopics(ctx context.Context) ([]*models.Topic, error) {
	const selectSQL = `
		SELECT slug, description
		FROM topics
		ORDER BY slug ASC
	`

	topics, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, selectSQL, func(rows *sql.Rows) (*models.Topic, error) {
		var topic models.Topic
		if err := rows.Scan(&topic.Slug, &topic.Description); err != nil {
			return nil, xerrors.New(err)
		}
		return &topic, nil
	})
	if err != nil {
		return nil, wrapDataError(err)
	}

	return topics, nil
}
