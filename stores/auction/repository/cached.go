package repository

import (
	"strconv"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/domain/auction"
	"github.com/yr12345678/piers-rugyard-auctions/service/cache"
)

type cachedArchive struct {
	repo  auction.ArchiveRepo
	cache cache.Service
}

// NewCachedArchive reads archived auctions through cache. Archived auctions
// never change, so entries are not invalidated.
func NewCachedArchive(repo auction.ArchiveRepo, cache cache.Service) auction.ArchiveRepo {
	return &cachedArchive{repo: repo, cache: cache}
}

func (r *cachedArchive) Insert(c ctx.Ctx, a *auction.Auction) error {
	if err := r.repo.Insert(c, a); err != nil {
		return err
	}
	if err := r.cache.Set(c, cacheKey(a.Id), a); err != nil {
		c.WithField("err", err).Warn("cache.Set failed")
	}
	return nil
}

func (r *cachedArchive) FindOne(c ctx.Ctx, id uint64) (*auction.Auction, error) {
	res := &auction.Auction{}
	if err := r.cache.GetByFunc(c, cacheKey(id), res, func() (interface{}, error) {
		return r.repo.FindOne(c, id)
	}); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *cachedArchive) Count(c ctx.Ctx) (int, error) {
	return r.repo.Count(c)
}

func cacheKey(id uint64) string {
	return strconv.FormatUint(id, 10)
}
