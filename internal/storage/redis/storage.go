package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/myatmin/twodlive/internal/model"
	"github.com/myatmin/twodlive/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Users are stored as hashes so the balance field can be credited with
// HINCRBYFLOAT, Redis's native atomic increment.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User hash field names
const (
	fieldID           = "id"
	fieldUsername     = "username"
	fieldPasswordHash = "password_hash"
	fieldBalance      = "balance"
	fieldIsAdmin      = "is_admin"
	fieldCreatedAt    = "created_at"
)

func userFields(user *model.User) map[string]any {
	isAdmin := "0"
	if user.IsAdmin {
		isAdmin = "1"
	}
	return map[string]any{
		fieldID:           string(user.ID),
		fieldUsername:     user.Username,
		fieldPasswordHash: user.PasswordHash,
		fieldBalance:      strconv.FormatFloat(user.Balance, 'f', -1, 64),
		fieldIsAdmin:      isAdmin,
		fieldCreatedAt:    user.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func userFromFields(fields map[string]string) (*model.User, error) {
	balance, err := strconv.ParseFloat(fields[fieldBalance], 64)
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339Nano, fields[fieldCreatedAt])
	if err != nil {
		return nil, err
	}
	return &model.User{
		ID:           model.UserID(fields[fieldID]),
		Username:     fields[fieldUsername],
		PasswordHash: fields[fieldPasswordHash],
		Balance:      balance,
		IsAdmin:      fields[fieldIsAdmin] == "1",
		CreatedAt:    createdAt,
	}, nil
}

// createUserScript reserves the username index, bumps the user counter
// and writes the user hash in a single atomic step, so neither a racing
// registration nor a crash mid-create can leave an index entry pointing
// at a missing record. Returns -1 when the username is taken, otherwise
// the new user count (the first registration becomes the admin).
//
// KEYS: username index, user counter, user hash.
// ARGV: id, username, password hash, balance, admin flag, created at.
var createUserScript = redis.NewScript(`
if redis.call("SETNX", KEYS[1], ARGV[1]) == 0 then
	return -1
end
local count = redis.call("INCR", KEYS[2])
local admin = ARGV[5]
if count == 1 then
	admin = "1"
end
redis.call("HSET", KEYS[3],
	"id", ARGV[1],
	"username", ARGV[2],
	"password_hash", ARGV[3],
	"balance", ARGV[4],
	"is_admin", admin,
	"created_at", ARGV[6])
return count
`)

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	fields := userFields(user)
	keys := []string{usernameIndexKey(user.Username), userCountKey(), userKey(user.ID)}
	count, err := createUserScript.Run(ctx, s.client, keys,
		string(user.ID),
		user.Username,
		user.PasswordHash,
		fields[fieldBalance],
		fields[fieldIsAdmin],
		fields[fieldCreatedAt],
	).Int64()
	if err != nil {
		return err
	}
	if count == -1 {
		return model.ErrUsernameExists
	}
	if count == 1 {
		user.IsAdmin = true
	}
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	fields, err := s.client.HGetAll(ctx, userKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, model.ErrUserNotFound
	}
	return userFromFields(fields)
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	idStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return s.GetUser(ctx, model.UserID(idStr))
}

func (s *Storage) CountUsers(ctx context.Context) (int64, error) {
	count, err := s.client.Get(ctx, userCountKey()).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

func (s *Storage) CreditBalance(ctx context.Context, id model.UserID, amount float64) (float64, error) {
	// Users are never deleted, so an existence check followed by the
	// atomic increment cannot race with a removal.
	exists, err := s.client.Exists(ctx, userKey(id)).Result()
	if err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, model.ErrUserNotFound
	}

	return s.client.HIncrByFloat(ctx, userKey(id), fieldBalance, amount).Result()
}

func (s *Storage) SaveLatestResult(ctx context.Context, event *model.ResultEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, latestResultKey(), data, 0).Err()
}

func (s *Storage) GetLatestResult(ctx context.Context) (*model.ResultEvent, error) {
	data, err := s.client.Get(ctx, latestResultKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrResultNotFound
		}
		return nil, err
	}

	var event model.ResultEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
