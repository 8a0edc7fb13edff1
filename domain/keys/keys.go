package keys

import (
	"strings"

	"github.com/yr12345678/piers-rugyard-auctions/domain"
)

const (
	// PfxLocker prefixes the parcel list of one recipient
	PfxLocker = "locker"
	// PfxEvents prefixes the pub/sub channel of engine events
	PfxEvents = "events"
	// PfxArchive prefixes archived auctions in the local cache
	PfxArchive = "archive"
	// PfxHealthCheck prefixes the probe key written by the health check
	PfxHealthCheck = "healthcheck"

	delimiter = ":"
)

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(delimiter, components...)
}

// GetPrefix returns the first component of key, used as a metric tag
func GetPrefix(key string) string {
	if i := strings.Index(key, delimiter); i >= 0 {
		return key[:i]
	}
	return key
}

func LockerKey(recipient domain.Address) string {
	return RedisKey(PfxLocker, recipient.ToLowerStr())
}

func EventsChannel(app string) string {
	return RedisKey(PfxEvents, app)
}
