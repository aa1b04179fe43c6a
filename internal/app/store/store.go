/*
Package store implements the Postgres-backed user directory and message
store consumed by the realtime gateway and the REST handlers.
*/
package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sehra/internal/app/message"
	"sehra/internal/app/user"
)

// Store runs all queries over a shared pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps the given pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const userColumns = `id, name, email, role, package`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Package)
	return u, err
}

// FindUserByEmail looks up a directory entry by its login email.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (user.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// FindUserByID looks up a directory entry by its numeric id.
func (s *Store) FindUserByID(ctx context.Context, id int64) (user.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// UserCredentials returns the directory entry and password hash for a login
// attempt. Callers must compare the hash themselves.
func (s *Store) UserCredentials(ctx context.Context, email string) (user.User, string, error) {
	var u user.User
	var hash string
	err := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+`, password_hash FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Package, &hash)
	return u, hash, err
}

const messageColumns = `id, sender_id, recipient_id, body, type, read, created_at`

func scanMessage(row pgx.Row) (message.Message, error) {
	var m message.Message
	err := row.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Body, &m.Type, &m.Read, &m.CreatedAt)
	return m, err
}

// InsertMessage persists a new unread message and returns the stored record
// with its assigned id and timestamp.
func (s *Store) InsertMessage(ctx context.Context, senderID, recipientID int64, body string, msgType message.Type) (message.Message, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO messages (sender_id, recipient_id, body, type)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+messageColumns,
		senderID, recipientID, body, msgType)
	return scanMessage(row)
}

// MarkMessagesRead flips every unread message from senderID to recipientID to
// read and returns how many rows changed. Running it again is a no-op.
func (s *Store) MarkMessagesRead(ctx context.Context, senderID, recipientID int64) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE messages SET read = TRUE
		 WHERE sender_id = $1 AND recipient_id = $2 AND NOT read`,
		senderID, recipientID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// CountUnread returns the number of unread messages addressed to userID.
func (s *Store) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM messages WHERE recipient_id = $1 AND NOT read`,
		userID).Scan(&count)
	return count, err
}

// ListConversation returns up to limit messages exchanged between the two
// users, newest first, older than before.
func (s *Store) ListConversation(ctx context.Context, userA, userB int64, before time.Time, limit int32) ([]message.Message, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+messageColumns+` FROM messages
		 WHERE ((sender_id = $1 AND recipient_id = $2) OR (sender_id = $2 AND recipient_id = $1))
		   AND created_at < $3
		 ORDER BY created_at DESC
		 LIMIT $4`,
		userA, userB, before, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []message.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
