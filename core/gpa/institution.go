package gpa

import (
	"errors"

	"github.com/sgunigpa/gpacalc/core"
)

// Institution is one of the closed set of supported universities.
type Institution string

const (
	NUS Institution = "NUS"
	NTU Institution = "NTU"
	SMU Institution = "SMU"
)

var ErrUnknownInstitution = errors.New("unknown institution")

// Institutions returns the supported institutions in display order.
func Institutions() []Institution {
	return []Institution{NUS, NTU, SMU}
}

// ParseInstitution maps user input ("nus", " NTU ") onto an Institution.
func ParseInstitution(s string) (Institution, error) {
	inst := Institution(core.CleanToken(s))
	if !inst.Valid() {
		return "", ErrUnknownInstitution
	}
	return inst, nil
}

func (inst Institution) Valid() bool {
	switch inst {
	case NUS, NTU, SMU:
		return true
	}
	return false
}

func (inst Institution) String() string { return string(inst) }
