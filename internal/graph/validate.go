package graph

import (
	"regexp"

	"rit.dev/rit/internal/riterrors"
	"rit.dev/rit/internal/store"
)

var branchNameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidateBranchName requires a non-empty name matching [A-Za-z0-9_]+
// that is never the HEAD sentinel.
func ValidateBranchName(name string) error {
	if name == store.HeadRefName {
		return riterrors.NewInvalidBranchNameError(name, "cannot use the head sentinel as a branch name")
	}
	if !branchNameRe.MatchString(name) {
		return riterrors.NewInvalidBranchNameError(name, "must match [A-Za-z0-9_]+")
	}
	return nil
}
