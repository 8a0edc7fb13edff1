package repository

import (
	"encoding/json"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/base/log"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
	"github.com/yr12345678/piers-rugyard-auctions/domain/keys"
	"github.com/yr12345678/piers-rugyard-auctions/domain/locker"
	"github.com/yr12345678/piers-rugyard-auctions/service/redis"
)

type redisRepo struct {
	redis redis.Service
}

// NewRedis keeps each recipient's parcels in a redis list of json documents.
func NewRedis(redis redis.Service) locker.Repository {
	return &redisRepo{redis: redis}
}

func (r *redisRepo) Append(c ctx.Ctx, recipient domain.Address, parcel locker.Parcel) error {
	val, err := json.Marshal(parcel)
	if err != nil {
		c.WithField("err", err).Error("json.Marshal failed")
		return err
	}
	key := keys.LockerKey(recipient)
	if _, err := r.redis.RPush(c, key, val); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"key": key,
		}).Error("redis.RPush failed")
		return err
	}
	return nil
}

func (r *redisRepo) List(c ctx.Ctx, recipient domain.Address) ([]locker.Parcel, error) {
	key := keys.LockerKey(recipient)
	vals, err := r.redis.LRange(c, key, 0, 0)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"key": key,
		}).Error("redis.LRange failed")
		return nil, err
	}
	return decodeParcels(c, vals)
}

func (r *redisRepo) Take(c ctx.Ctx, recipient domain.Address) ([]locker.Parcel, error) {
	key := keys.LockerKey(recipient)
	vals, err := r.redis.LTake(c, key)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"key": key,
		}).Error("redis.LTake failed")
		return nil, err
	}
	return decodeParcels(c, vals)
}

func decodeParcels(c ctx.Ctx, vals [][]byte) ([]locker.Parcel, error) {
	res := make([]locker.Parcel, 0, len(vals))
	for _, val := range vals {
		p := locker.Parcel{}
		if err := json.Unmarshal(val, &p); err != nil {
			c.WithFields(log.Fields{
				"err": err,
				"val": string(val),
			}).Error("json.Unmarshal failed")
			return nil, err
		}
		res = append(res, p)
	}
	return res, nil
}
