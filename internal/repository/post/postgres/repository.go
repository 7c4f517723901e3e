package post_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"gallery-service/internal/custom_errors"
	"gallery-service/internal/logger"
	"gallery-service/internal/metrics"
	"gallery-service/internal/model"
	"gallery-service/internal/repository/postgres/db"
)

type PostRepository struct {
	db      db.PgDB
	log     *logger.Logger
	metrics metrics.Provider
}

func NewPostRepository(db db.PgDB, log *logger.Logger, metricsProvider metrics.Provider) *PostRepository {
	return &PostRepository{db: db, log: log, metrics: metricsProvider}
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}

	args := pgx.NamedArgs{
		"description": post.Description,
		"images":      post.Images,
		"created_at":  now,
	}

	query := `
		INSERT INTO posts (description, images, created_at)
		VALUES (@description, @images, @created_at)
		RETURNING id, description, images, created_at`

	var createdPost model.Post
	start := time.Now()
	err := p.db.QueryRow(ctx, query, args).Scan(
		&createdPost.ID,
		&createdPost.Description,
		&createdPost.Images,
		&createdPost.CreatedAt,
	)
	p.metrics.RecordDatabaseQueryDuration("post_create", time.Since(start))

	if err != nil {
		p.metrics.IncrementDatabaseQueries("post_create", false)
		p.log.Error("Error creating post", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.metrics.IncrementDatabaseQueries("post_create", true)
	return &createdPost, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	args := pgx.NamedArgs{"id": id}
	query := `SELECT id, description, images, created_at
				FROM posts WHERE id = @id`

	post := &model.Post{}
	start := time.Now()
	err := p.db.QueryRow(ctx, query, args).Scan(
		&post.ID,
		&post.Description,
		&post.Images,
		&post.CreatedAt,
	)
	p.metrics.RecordDatabaseQueryDuration("post_get_by_id", time.Since(start))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			p.metrics.IncrementDatabaseQueries("post_get_by_id", true)
			p.log.Debug("Post not found by id", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		p.metrics.IncrementDatabaseQueries("post_get_by_id", false)
		p.log.Error("Error getting post by id", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.metrics.IncrementDatabaseQueries("post_get_by_id", true)
	return post, nil
}

func (p *PostRepository) List(ctx context.Context) ([]*model.Post, error) {
	query := `SELECT id, description, images, created_at
				FROM posts ORDER BY id DESC`

	start := time.Now()
	rows, err := p.db.Query(ctx, query)
	if err != nil {
		p.metrics.IncrementDatabaseQueries("post_list", false)
		p.log.Error("Error listing posts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		var post model.Post
		err := rows.Scan(
			&post.ID,
			&post.Description,
			&post.Images,
			&post.CreatedAt,
		)
		if err != nil {
			p.metrics.IncrementDatabaseQueries("post_list", false)
			p.log.Error("Error scanning post during List", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		posts = append(posts, &post)
	}

	if err = rows.Err(); err != nil {
		p.metrics.IncrementDatabaseQueries("post_list", false)
		p.log.Error("Error iterating rows during List", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.metrics.RecordDatabaseQueryDuration("post_list", time.Since(start))
	p.metrics.IncrementDatabaseQueries("post_list", true)
	return posts, nil
}

func (p *PostRepository) Delete(ctx context.Context, id int64) error {
	args := pgx.NamedArgs{"id": id}
	query := `DELETE FROM posts WHERE id = @id`

	start := time.Now()
	tag, err := p.db.Exec(ctx, query, args)
	p.metrics.RecordDatabaseQueryDuration("post_delete", time.Since(start))

	if err != nil {
		p.metrics.IncrementDatabaseQueries("post_delete", false)
		p.log.Error("Error deleting post", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	if tag.RowsAffected() == 0 {
		p.metrics.IncrementDatabaseQueries("post_delete", true)
		p.log.Debug("Post not found for deletion", slog.Int64("id", id))
		return custom_errors.ErrPostNotFound
	}

	p.metrics.IncrementDatabaseQueries("post_delete", true)
	return nil
}
