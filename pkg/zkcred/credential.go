package zkcred

import (
	"bytes"
	"time"

	"github.com/credo-id/zkcred/pkg/proof"
)

// maxProvableAge is the upper bound of every age range statement.
const maxProvableAge = 150

// ProveAgeAtLeast proves that the holder of a birth year is at least
// minimumAge years old, without revealing the birth year. The age itself is
// the range witness, proven within [minimumAge, 150].
func (s *Suite) ProveAgeAtLeast(birthYear, minimumAge int) (*proof.Proof, error) {
	age := time.Now().Year() - birthYear
	if age < minimumAge {
		return nil, ErrAgeRequirementNotMet
	}
	return s.ProveRange(int64(age), int64(minimumAge), maxProvableAge)
}

// ProveCredentialMembership proves that a credential identifier belongs to
// an ordered candidate list, revealing neither the identifier nor the other
// members beyond the list commitment.
func (s *Suite) ProveCredentialMembership(value []byte, candidates [][]byte) (*proof.Proof, error) {
	index := -1
	for i, c := range candidates {
		if bytes.Equal(c, value) {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, ErrValueNotFound
	}
	return s.ProveMembership(value, candidates, index)
}
