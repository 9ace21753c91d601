package index

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/advisor-labs/readiness/internal/models"
	"github.com/advisor-labs/readiness/internal/types"
)

// Config configures the pgvector-backed retrieval index.
type Config struct {
	ConnString string
	TableName  string
	VectorDim  int
	BatchSize  int
}

// Index is a session-scoped nearest-neighbour chunk store on Postgres with
// the pgvector extension. Chunk ids are deterministic, so re-indexing a
// session upserts rather than duplicating.
type Index struct {
	config   Config
	pool     *pgxpool.Pool
	embedder types.Embedder
}

var _ types.Index = (*Index)(nil)

func New(config Config, embedder types.Embedder) (*Index, error) {
	if config.TableName == "" {
		config.TableName = "chunks"
	}
	if config.VectorDim == 0 {
		config.VectorDim = 768
	}
	if config.BatchSize == 0 {
		config.BatchSize = 100
	}

	pool, err := pgxpool.New(context.Background(), config.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	idx := &Index{
		config:   config,
		pool:     pool,
		embedder: embedder,
	}

	if err := idx.initialize(); err != nil {
		pool.Close()
		return nil, err
	}

	return idx, nil
}

func (idx *Index) initialize() error {
	ctx := context.Background()

	_, err := idx.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector")
	if err != nil {
		return fmt.Errorf("failed to create vector extension: %v", err)
	}

	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			source TEXT NOT NULL,
			file_type TEXT,
			chunk_index INTEGER,
			content TEXT,
			embedding vector(%d)
		)`, idx.config.TableName, idx.config.VectorDim)

	_, err = idx.pool.Exec(ctx, createTable)
	if err != nil {
		return fmt.Errorf("failed to create table: %v", err)
	}

	createSessionIndex := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s_session_idx
		ON %s (session_id)`,
		idx.config.TableName, idx.config.TableName)

	_, err = idx.pool.Exec(ctx, createSessionIndex)
	if err != nil {
		return fmt.Errorf("failed to create session index: %v", err)
	}

	createVectorIndex := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s_embedding_idx
		ON %s
		USING ivfflat (embedding vector_cosine_ops)
		WITH (lists = 100)`,
		idx.config.TableName, idx.config.TableName)

	_, err = idx.pool.Exec(ctx, createVectorIndex)
	if err != nil {
		return fmt.Errorf("failed to create vector index: %v", err)
	}

	return nil
}

// Upsert stores chunks with their embeddings, idempotent by chunk id.
func (idx *Index) Upsert(ctx context.Context, chunks []models.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	stmt := fmt.Sprintf(`
		INSERT INTO %s (id, session_id, source, file_type, chunk_index, content, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			content = EXCLUDED.content,
			embedding = EXCLUDED.embedding`,
		idx.config.TableName)

	for start := 0; start < len(chunks); start += idx.config.BatchSize {
		end := start + idx.config.BatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Content
		}

		embeddings, err := idx.embedder.CreateEmbedding(ctx, texts)
		if err != nil {
			return fmt.Errorf("failed to create embeddings: %v", err)
		}
		if len(embeddings) != len(batch) {
			return fmt.Errorf("embedding count mismatch: got %d for %d chunks", len(embeddings), len(batch))
		}

		tx, err := idx.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %v", err)
		}

		for i, chunk := range batch {
			_, err = tx.Exec(ctx, stmt,
				chunk.ID,
				chunk.SessionID,
				chunk.Source,
				chunk.FileType,
				chunk.ChunkIndex,
				chunk.Content,
				pgvector.NewVector(embeddings[i]),
			)
			if err != nil {
				tx.Rollback(ctx)
				return fmt.Errorf("failed to insert chunk: %v", err)
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("failed to commit transaction: %v", err)
		}
	}

	return nil
}

// Query returns the k nearest chunks for the query text within one session,
// most similar first. k is capped at the number of stored chunks; an empty
// session yields an empty result, never an error.
func (idx *Index) Query(ctx context.Context, sessionID, query string, k int) ([]models.SearchResult, error) {
	stored, err := idx.Count(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	k = CapLimit(k, stored)
	if k == 0 {
		return nil, nil
	}

	embeddings, err := idx.embedder.CreateEmbedding(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %v", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("embedder returned no vector for query")
	}

	sql := fmt.Sprintf(`
		SELECT content, source, embedding <=> $1 AS distance
		FROM %s
		WHERE session_id = $2
		ORDER BY embedding <=> $1
		LIMIT $3`,
		idx.config.TableName)

	rows, err := idx.pool.Query(ctx, sql, pgvector.NewVector(embeddings[0]), sessionID, k)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %v", err)
	}
	defer rows.Close()

	var results []models.SearchResult
	for rows.Next() {
		var r models.SearchResult
		if err := rows.Scan(&r.Content, &r.Source, &r.Distance); err != nil {
			return nil, fmt.Errorf("failed to scan row: %v", err)
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

// Count reports how many chunks a session has stored.
func (idx *Index) Count(ctx context.Context, sessionID string) (int, error) {
	sql := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE session_id = $1", idx.config.TableName)

	var count int
	if err := idx.pool.QueryRow(ctx, sql, sessionID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count chunks: %v", err)
	}
	return count, nil
}

// DeleteSession reclaims all chunks belonging to an abandoned or finished
// session.
func (idx *Index) DeleteSession(ctx context.Context, sessionID string) error {
	sql := fmt.Sprintf("DELETE FROM %s WHERE session_id = $1", idx.config.TableName)

	if _, err := idx.pool.Exec(ctx, sql, sessionID); err != nil {
		return fmt.Errorf("failed to delete session chunks: %v", err)
	}
	return nil
}

func (idx *Index) Close() {
	if idx.pool != nil {
		idx.pool.Close()
	}
}

// ChunkID derives the stable chunk id for (session, filename, ordinal).
// Identical inputs always map to the same id, so re-indexing upserts.
func ChunkID(sessionID, filename string, ordinal int) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s:%s:%d", sessionID, filename, ordinal)))
	return hex.EncodeToString(sum[:])
}

// CapLimit bounds a neighbour request at the number of stored chunks.
func CapLimit(k, stored int) int {
	if k < 0 {
		k = 0
	}
	if k > stored {
		return stored
	}
	return k
}
