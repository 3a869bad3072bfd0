package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/haniscreator/mediclue/internal/repository"
)

// ProfileRepoMinimal is the subset of repository.ProfileRepo used by ProfileService.
type ProfileRepoMinimal interface {
	GetByUserID(ctx context.Context, userID string) (*repository.Profile, error)
	Upsert(ctx context.Context, p *repository.Profile) error
}

var (
	ErrProfileIncomplete = errors.New("profile incomplete")
	ErrInvalidProfile    = errors.New("invalid profile value")
)

// ProfileGenders lists the genders a profile may record. "prefer-not-to-say"
// is not offered on the assessment confirmation step.
var ProfileGenders = []string{"male", "female", "other", "prefer-not-to-say"}

// BloodTypes lists the accepted blood types.
var BloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// IncompleteError names the wizard step that blocks completion and its
// missing fields.
type IncompleteError struct {
	Step    int
	Missing []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("profile step %d incomplete: missing %s", e.Step, strings.Join(e.Missing, ", "))
}

func (e *IncompleteError) Is(target error) bool { return target == ErrProfileIncomplete }

// ProfileUpdate carries the fields to change. Nil leaves a field as is, an
// empty string clears it.
type ProfileUpdate struct {
	DateOfBirth       *string  `json:"date_of_birth"`
	Gender            *string  `json:"gender"`
	HeightCm          *float64 `json:"height_cm"`
	WeightKg          *float64 `json:"weight_kg"`
	BloodType         *string  `json:"blood_type"`
	PhoneNumber       *string  `json:"phone_number"`
	EmergencyContact  *string  `json:"emergency_contact"`
	EmergencyPhone    *string  `json:"emergency_phone"`
	Address           *string  `json:"address"`
	City              *string  `json:"city"`
	State             *string  `json:"state"`
	ZipCode           *string  `json:"zip_code"`
	MedicalConditions *string  `json:"medical_conditions"`
	Allergies         *string  `json:"allergies"`
	Medications       *string  `json:"medications"`
}

// ProfileService manages the three-step health profile.
type ProfileService interface {
	// Get returns the profile of userID; an empty one if none was saved.
	Get(ctx context.Context, userID string) (*repository.Profile, error)
	// Update validates and applies u.
	Update(ctx context.Context, userID string, u ProfileUpdate) (*repository.Profile, error)
	// Complete checks steps 1 and 2 and marks the profile completed.
	Complete(ctx context.Context, userID string) (*repository.Profile, error)
	// IsCompleted reports whether the user finished the profile wizard.
	IsCompleted(ctx context.Context, userID string) (bool, error)
}

type profileServiceImpl struct {
	repo ProfileRepoMinimal
	now  func() time.Time
}

func NewProfileService(repo ProfileRepoMinimal) ProfileService {
	return &profileServiceImpl{repo: repo, now: time.Now}
}

func (s *profileServiceImpl) Get(ctx context.Context, userID string) (*repository.Profile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("repo get profile: %w", err)
	}
	if p == nil {
		p = &repository.Profile{UserID: userID}
	}
	return p, nil
}

func (s *profileServiceImpl) Update(ctx context.Context, userID string, u ProfileUpdate) (*repository.Profile, error) {
	if err := validateUpdate(u, s.now()); err != nil {
		return nil, err
	}
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if u.BloodType != nil {
		bt := strings.ToUpper(*u.BloodType)
		u.BloodType = &bt
	}
	setString(&p.DateOfBirth, u.DateOfBirth)
	setString(&p.Gender, u.Gender)
	setFloat(&p.HeightCm, u.HeightCm)
	setFloat(&p.WeightKg, u.WeightKg)
	setString(&p.BloodType, u.BloodType)
	setString(&p.PhoneNumber, u.PhoneNumber)
	setString(&p.EmergencyContact, u.EmergencyContact)
	setString(&p.EmergencyPhone, u.EmergencyPhone)
	setString(&p.Address, u.Address)
	setString(&p.City, u.City)
	setString(&p.State, u.State)
	setString(&p.ZipCode, u.ZipCode)
	setString(&p.MedicalConditions, u.MedicalConditions)
	setString(&p.Allergies, u.Allergies)
	setString(&p.Medications, u.Medications)

	// an edit that empties a required field withdraws completion
	if p.Completed && missingStep(p) != nil {
		p.Completed = false
		p.CompletedAt = nil
	}

	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("repo upsert profile: %w", err)
	}
	return p, nil
}

func (s *profileServiceImpl) Complete(ctx context.Context, userID string) (*repository.Profile, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := missingStep(p); err != nil {
		return nil, err
	}
	if p.Completed {
		return p, nil
	}
	now := s.now().UTC()
	p.Completed = true
	p.CompletedAt = &now
	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("repo upsert profile: %w", err)
	}
	return p, nil
}

func (s *profileServiceImpl) IsCompleted(ctx context.Context, userID string) (bool, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("repo get profile: %w", err)
	}
	return p != nil && p.Completed, nil
}

// missingStep returns an *IncompleteError for the first step with blank
// required fields. Step 3 (medical history) is optional.
func missingStep(p *repository.Profile) error {
	var missing []string
	if blank(p.DateOfBirth) {
		missing = append(missing, "date_of_birth")
	}
	if blank(p.Gender) {
		missing = append(missing, "gender")
	}
	if p.HeightCm == nil {
		missing = append(missing, "height_cm")
	}
	if p.WeightKg == nil {
		missing = append(missing, "weight_kg")
	}
	if len(missing) > 0 {
		return &IncompleteError{Step: 1, Missing: missing}
	}

	if blank(p.PhoneNumber) {
		missing = append(missing, "phone_number")
	}
	if blank(p.Address) {
		missing = append(missing, "address")
	}
	if blank(p.City) {
		missing = append(missing, "city")
	}
	if len(missing) > 0 {
		return &IncompleteError{Step: 2, Missing: missing}
	}
	return nil
}

func validateUpdate(u ProfileUpdate, now time.Time) error {
	if v := trimmed(u.DateOfBirth); v != "" {
		dob, err := time.Parse("2006-01-02", v)
		if err != nil {
			return fmt.Errorf("%w: date_of_birth must be yyyy-mm-dd", ErrInvalidProfile)
		}
		if dob.After(now) {
			return fmt.Errorf("%w: date_of_birth is in the future", ErrInvalidProfile)
		}
	}
	if v := trimmed(u.Gender); v != "" && !contains(ProfileGenders, v) {
		return fmt.Errorf("%w: gender must be one of %s", ErrInvalidProfile, strings.Join(ProfileGenders, ", "))
	}
	if v := trimmed(u.BloodType); v != "" && !contains(BloodTypes, strings.ToUpper(v)) {
		return fmt.Errorf("%w: unknown blood type %q", ErrInvalidProfile, v)
	}
	if u.HeightCm != nil && (*u.HeightCm <= 0 || *u.HeightCm > 300) {
		return fmt.Errorf("%w: height_cm out of range", ErrInvalidProfile)
	}
	if u.WeightKg != nil && (*u.WeightKg <= 0 || *u.WeightKg > 700) {
		return fmt.Errorf("%w: weight_kg out of range", ErrInvalidProfile)
	}
	return nil
}

func setString(dst **string, v *string) {
	if v == nil {
		return
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		*dst = nil
		return
	}
	*dst = &s
}

func setFloat(dst **float64, v *float64) {
	if v == nil {
		return
	}
	f := *v
	*dst = &f
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func blank(s *string) bool { return trimmed(s) == "" }

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
