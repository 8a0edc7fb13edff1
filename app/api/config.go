package main

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"

	"github.com/yr12345678/piers-rugyard-auctions/domain"
	"github.com/yr12345678/piers-rugyard-auctions/domain/auction"
	"github.com/yr12345678/piers-rugyard-auctions/service/swappool"
)

// loadConfig reads the yaml file named by --config. Flags and RUGYARD_*
// environment variables override file values.
func loadConfig(args []string) (*viper.Viper, error) {
	fs := pflag.NewFlagSet("api", pflag.ContinueOnError)
	path := fs.String("config", "infra/configs/config.yaml", "path of the yaml config file")
	fs.String("http.addr", ":8080", "address the http server listens on")
	fs.String("log.level", "info", "log level")
	fs.Bool("log.development", false, "human readable log output")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(*path)
	v.SetEnvPrefix("rugyard")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("nats.subject", "rugyard.events")
	v.SetDefault("keeper.interval", time.Minute)
	v.SetDefault("cache.sizeMB", 16)
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return v, nil
}

func decimalOr(v *viper.Viper, key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	raw := v.GetString(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, xerrors.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func auctionParams(v *viper.Viper) (auction.Params, error) {
	p := auction.DefaultParams()
	a := v.Sub("auction")
	if a == nil {
		return p, xerrors.New("missing auction section")
	}

	if a.IsSet("durationMinutes") {
		p.DurationMinutes = a.GetInt64("durationMinutes")
	}
	if a.IsSet("bufferMinutes") {
		p.BufferMinutes = a.GetInt64("bufferMinutes")
	}
	if a.IsSet("divisibility") {
		p.Divisibility = a.GetInt32("divisibility")
	}
	if a.IsSet("enabled") {
		p.Enabled = a.GetBool("enabled")
	}

	var err error
	if p.MinimumBidIncrease, err = decimalOr(a, "minimumBidIncrease", p.MinimumBidIncrease); err != nil {
		return p, err
	}
	if p.RewardRate, err = decimalOr(a, "rewardRate", p.RewardRate); err != nil {
		return p, err
	}

	p.BidResource = domain.ResourceAddress(a.GetString("bidResource"))
	p.ProceedsResource = domain.ResourceAddress(a.GetString("proceedsResource"))
	p.ItemResource = domain.ResourceAddress(a.GetString("itemResource"))
	p.SideResource = domain.ResourceAddress(a.GetString("sideResource"))
	p.Pool = domain.Address(a.GetString("pool"))
	return p, p.Validate()
}

// poolConfigs reads pools.<name>. Every pool swaps the bid resource into the
// proceeds resource.
func poolConfigs(v *viper.Viper, p auction.Params) ([]swappool.PoolCfg, error) {
	pools := v.Sub("pools")
	if pools == nil {
		return nil, nil
	}
	cfgs := []swappool.PoolCfg{}
	for name := range pools.AllSettings() {
		rate, err := decimalOr(pools, name+".rate", decimal.Zero)
		if err != nil {
			return nil, err
		}
		cfg := swappool.PoolCfg{
			Address:      domain.Address(pools.GetString(name + ".address")),
			Input:        p.BidResource,
			Output:       p.ProceedsResource,
			Rate:         rate,
			Divisibility: p.Divisibility,
		}
		if pools.IsSet(name + ".reserve") {
			reserve, err := decimalOr(pools, name+".reserve", decimal.Zero)
			if err != nil {
				return nil, err
			}
			cfg.Reserve = &reserve
		}
		cfgs = append(cfgs, cfg)
	}
	return cfgs, nil
}

func ownerAddresses(v *viper.Viper) []domain.Address {
	res := []domain.Address{}
	for _, o := range v.GetStringSlice("owners") {
		res = append(res, domain.Address(o).ToLower())
	}
	return res
}
