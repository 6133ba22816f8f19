package service

import (
	"fmt"
	"strings"

	"github.com/communityhub/backend/internal/domain"
	"github.com/communityhub/backend/pkg/email"
	"github.com/communityhub/backend/pkg/validator"
)

// validateCandidate re-checks participant details in the service layer.
// Binding validation already ran at the HTTP boundary; this guards the
// non-HTTP callers (reconciler, legacy import) and the item-specific age
// bounds binding tags cannot express.
func validateCandidate(c domain.Candidate, ageMin, ageMax int) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCandidate)
	}

	if !email.IsEmailValid(c.Email) {
		return fmt.Errorf("%w: invalid email", ErrInvalidCandidate)
	}

	if !validator.IsValidPhone(c.Phone) {
		return fmt.Errorf("%w: phone must be a 10-digit mobile number", ErrInvalidCandidate)
	}

	if c.Age < ageMin || c.Age > ageMax {
		return fmt.Errorf("%w: age must be between %d and %d", ErrInvalidCandidate, ageMin, ageMax)
	}

	if !c.Gender.Valid() {
		return fmt.Errorf("%w: gender must be male or female", ErrInvalidCandidate)
	}

	return nil
}

// candidateNotes flattens the extra participant details into the key=value
// blob carried on the gateway order, matching the wire shape the old
// client sent.
func candidateNotes(c domain.Candidate) string {
	return fmt.Sprintf("age=%d; gender=%s; education=%s; communityOptIn=%t",
		c.Age, c.Gender, c.Education, c.CommunityOptIn)
}
