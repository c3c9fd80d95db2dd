package apricot

import (
	"strconv"
)

const (
	UserInfoSeed        = "UserInfo"
	UserPagesStatsSeed  = "UserPagesStats"
	UsersPageSeedPrefix = "UsersPage_"

	PoolListSeed       = "PoolList"
	PoolSummariesSeed  = "PoolSummaries"
	PriceSummariesSeed = "PriceSummaries"

	poolSeedTemplate = "POOL____"
)

// PoolSeed formats a pool id into its 8 byte seed. The last two bytes
// spell the id in base 16 using the letters 'a' through 'p', so every pool
// id maps to a distinct seed.
func PoolSeed(poolId uint8) string {
	seed := []byte(poolSeedTemplate)
	seed[6] = 'a' + poolId/16
	seed[7] = 'a' + poolId%16
	return string(seed)
}

// UsersPageSeed formats a users page id into its seed.
func UsersPageSeed(pageId uint16) string {
	return UsersPageSeedPrefix + strconv.FormatUint(uint64(pageId), 10)
}
