package apricot

import (
	"github.com/pkg/errors"
)

// UserPagesStats holds the number of free user slots on each users page,
// indexed by page id.
type UserPagesStats struct {
	NumFreeSlots []uint16
}

func (obj *UserPagesStats) Unmarshal(data []byte) error {
	if len(data)%2 != 0 {
		return errors.Wrapf(ErrInvalidAccountData, "invalid user pages stats size: %d", len(data))
	}

	var offset int

	obj.NumFreeSlots = make([]uint16, len(data)/2)
	for i := range obj.NumFreeSlots {
		getUint16(data, &obj.NumFreeSlots[i], &offset)
	}

	return nil
}

// PageWithMostFreeSlots returns the page a new user should be added to. Ties
// go to the lowest page id.
func (obj *UserPagesStats) PageWithMostFreeSlots() (uint16, error) {
	if len(obj.NumFreeSlots) == 0 || len(obj.NumFreeSlots) > int(InvalidPageId) {
		return InvalidPageId, errors.Wrapf(ErrInvalidAccountData, "invalid page count: %d", len(obj.NumFreeSlots))
	}

	var best int
	for i, free := range obj.NumFreeSlots {
		if free > obj.NumFreeSlots[best] {
			best = i
		}
	}

	if obj.NumFreeSlots[best] == 0 {
		return InvalidPageId, errors.New("no free user slots")
	}
	return uint16(best), nil
}
