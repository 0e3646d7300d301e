package dao

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// These run against a throwaway postgres database:
//
//	RELAY_TEST_DATABASE_URL=postgres://... go test ./...
//
// and are skipped otherwise. The message DAO speaks pgx directly, so
// sqlite is not an option here.

func setupMessagePool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("RELAY_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("RELAY_TEST_DATABASE_URL not set")
	}
	pool, err := pgxpool.New(context.Background(), url)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	t.Cleanup(pool.Close)

	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username VARCHAR(255) NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS chat_rooms (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id BIGSERIAL PRIMARY KEY,
			room_id INTEGER NOT NULL REFERENCES chat_rooms(id),
			user_id INTEGER NOT NULL REFERENCES users(id),
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range schema {
		if _, err := pool.Exec(context.Background(), stmt); err != nil {
			t.Fatalf("schema setup failed: %v", err)
		}
	}
	return pool
}

func seedRoomAndUser(t *testing.T, pool *pgxpool.Pool) (roomID, userID int) {
	t.Helper()
	suffix := time.Now().UnixNano()
	err := pool.QueryRow(context.Background(),
		"INSERT INTO chat_rooms (name) VALUES ($1) RETURNING id",
		fmt.Sprintf("room-%d", suffix)).Scan(&roomID)
	if err != nil {
		t.Fatalf("seed room: %v", err)
	}
	err = pool.QueryRow(context.Background(),
		"INSERT INTO users (username) VALUES ($1) RETURNING id",
		fmt.Sprintf("user-%d", suffix)).Scan(&userID)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return roomID, userID
}

func TestAppendAndGetByIDRoundtrip(t *testing.T) {
	pool := setupMessagePool(t)
	dao := NewMessageDAO(pool)
	roomID, userID := seedRoomAndUser(t, pool)
	ctx := context.Background()

	msg, err := dao.Append(ctx, roomID, userID, "hi")
	if err != nil {
		t.Fatalf("Append err: %v", err)
	}
	if msg.ID == 0 || msg.CreatedAt.IsZero() {
		t.Fatalf("store-assigned fields missing: %+v", msg)
	}
	if msg.RoomID != roomID || msg.UserID != userID || msg.Content != "hi" {
		t.Errorf("persisted row differs from input: %+v", msg)
	}

	view, err := dao.GetMessageByID(ctx, msg.ID)
	if err != nil {
		t.Fatalf("GetMessageByID err: %v", err)
	}
	if view.ID != msg.ID || view.UserID != userID || view.Content != "hi" {
		t.Errorf("re-read row differs: %+v", view)
	}
	if view.Username == "" {
		t.Error("username not joined in")
	}
}

func TestAppendValidation(t *testing.T) {
	pool := setupMessagePool(t)
	dao := NewMessageDAO(pool)
	roomID, userID := seedRoomAndUser(t, pool)
	ctx := context.Background()

	cases := []struct {
		roomID, userID int
		content        string
	}{
		{0, userID, "hi"},
		{roomID, 0, "hi"},
		{roomID, userID, ""},
		{roomID, userID, "   "},
	}
	for _, tc := range cases {
		if _, err := dao.Append(ctx, tc.roomID, tc.userID, tc.content); !errors.Is(err, ErrValidation) {
			t.Errorf("Append(%d,%d,%q) = %v, want ErrValidation", tc.roomID, tc.userID, tc.content, err)
		}
	}
}

func TestAppendUnknownReferences(t *testing.T) {
	pool := setupMessagePool(t)
	dao := NewMessageDAO(pool)
	roomID, userID := seedRoomAndUser(t, pool)
	ctx := context.Background()

	if _, err := dao.Append(ctx, 999999999, userID, "hi"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown room: got %v, want ErrNotFound", err)
	}
	if _, err := dao.Append(ctx, roomID, 999999999, "hi"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown user: got %v, want ErrNotFound", err)
	}
}

func TestGetMessageByIDNotFound(t *testing.T) {
	pool := setupMessagePool(t)
	dao := NewMessageDAO(pool)

	if _, err := dao.GetMessageByID(context.Background(), 999999999); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestRecentHistoryAscendingAndBounded(t *testing.T) {
	pool := setupMessagePool(t)
	dao := NewMessageDAO(pool)
	roomID, userID := seedRoomAndUser(t, pool)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		if _, err := dao.Append(ctx, roomID, userID, fmt.Sprintf("msg-%d", i)); err != nil {
			t.Fatalf("Append err: %v", err)
		}
	}

	history, err := dao.RecentHistory(ctx, roomID, 20)
	if err != nil {
		t.Fatalf("RecentHistory err: %v", err)
	}
	if len(history) != 20 {
		t.Fatalf("history has %d messages, want 20", len(history))
	}
	if history[0].Content != "msg-5" || history[19].Content != "msg-24" {
		t.Errorf("unexpected window: first=%q last=%q", history[0].Content, history[19].Content)
	}
	for i := 1; i < len(history); i++ {
		prev, cur := history[i-1], history[i]
		if cur.CreatedAt.Before(prev.CreatedAt) ||
			(cur.CreatedAt.Equal(prev.CreatedAt) && cur.ID < prev.ID) {
			t.Fatalf("history not ascending at %d: %+v then %+v", i, prev, cur)
		}
	}
}

func TestListRecentDescendingAndEmptyRoom(t *testing.T) {
	pool := setupMessagePool(t)
	dao := NewMessageDAO(pool)
	roomID, userID := seedRoomAndUser(t, pool)
	ctx := context.Background()

	empty, err := dao.ListRecent(ctx, roomID, 50)
	if err != nil {
		t.Fatalf("ListRecent err: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("empty room returned %d messages", len(empty))
	}

	for i := 0; i < 3; i++ {
		if _, err := dao.Append(ctx, roomID, userID, fmt.Sprintf("msg-%d", i)); err != nil {
			t.Fatalf("Append err: %v", err)
		}
	}

	msgs, err := dao.ListRecent(ctx, roomID, 50)
	if err != nil {
		t.Fatalf("ListRecent err: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(msgs))
	}
	if msgs[0].Content != "msg-2" || msgs[2].Content != "msg-0" {
		t.Errorf("not newest-first: %+v", msgs)
	}
}
