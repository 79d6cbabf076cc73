package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// redisLastMissedSet は所有者ごとの ZSET (score = 追加時刻の unix 秒) で集合を持ちます。
// 所有者の一覧は prefix:owners に入れておき、期限切れの掃除に使う。
type redisLastMissedSet struct {
	rdb    goredis.UniversalClient
	prefix string
}

// NewRedisClient は接続確認まで行ったクライアントを返します
func NewRedisClient(ctx context.Context, addr string) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func NewRedisLastMissedSet(rdb goredis.UniversalClient, prefix string) LastMissedSet {
	return &redisLastMissedSet{rdb: rdb, prefix: prefix}
}

func (s *redisLastMissedSet) key(ownerID uuid.UUID) string {
	return s.prefix + ":" + ownerID.String()
}

func (s *redisLastMissedSet) ownersKey() string {
	return s.prefix + ":owners"
}

func (s *redisLastMissedSet) Add(ctx context.Context, ownerID, cardID uuid.UUID) error {
	_, err := s.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.ZAdd(ctx, s.key(ownerID), goredis.Z{Score: float64(time.Now().Unix()), Member: cardID.String()})
		p.SAdd(ctx, s.ownersKey(), ownerID.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("redisLastMissedSet.Add: %w", err)
	}
	return nil
}

func (s *redisLastMissedSet) Remove(ctx context.Context, ownerID, cardID uuid.UUID) error {
	if err := s.rdb.ZRem(ctx, s.key(ownerID), cardID.String()).Err(); err != nil {
		return fmt.Errorf("redisLastMissedSet.Remove: %w", err)
	}
	return nil
}

func (s *redisLastMissedSet) Members(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	raw, err := s.rdb.ZRevRange(ctx, s.key(ownerID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redisLastMissedSet.Members: %w", err)
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for _, m := range raw {
		id, err := uuid.Parse(m)
		if err != nil {
			continue // 壊れたメンバーは無視
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *redisLastMissedSet) Clear(ctx context.Context, ownerID uuid.UUID) error {
	_, err := s.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.Del(ctx, s.key(ownerID))
		p.SRem(ctx, s.ownersKey(), ownerID.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("redisLastMissedSet.Clear: %w", err)
	}
	return nil
}

func (s *redisLastMissedSet) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	owners, err := s.rdb.SMembers(ctx, s.ownersKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("redisLastMissedSet.PruneOlderThan: %w", err)
	}
	// score < cutoff を削除 ("(" は開区間)
	max := "(" + strconv.FormatInt(cutoff.Unix(), 10)
	var total int64
	for _, owner := range owners {
		n, err := s.rdb.ZRemRangeByScore(ctx, s.prefix+":"+owner, "-inf", max).Result()
		if err != nil {
			return total, fmt.Errorf("redisLastMissedSet.PruneOlderThan: %w", err)
		}
		total += n
	}
	return total, nil
}
