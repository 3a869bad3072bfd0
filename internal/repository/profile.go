package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

// Profile is a user's health profile. Every field the user may leave blank
// is a pointer; nil means "not provided".
type Profile struct {
	UserID            string
	DateOfBirth       *string // yyyy-mm-dd string; nil if absent
	Gender            *string
	HeightCm          *float64
	WeightKg          *float64
	BloodType         *string
	PhoneNumber       *string
	EmergencyContact  *string
	EmergencyPhone    *string
	Address           *string
	City              *string
	State             *string
	ZipCode           *string
	MedicalConditions *string
	Allergies         *string
	Medications       *string
	Completed         bool
	CompletedAt       *time.Time
	UpdatedAt         time.Time
}

// ProfileRepo handles profile persistence
type ProfileRepo struct {
	pool DBPool
}

func NewProfileRepo(pool DBPool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

// GetByUserID fetches the profile of userID.
// Returns (nil, nil) if the user has not saved one yet.
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID string) (*Profile, error) {
	row := r.pool.QueryRow(ctx, `
    SELECT user_id, date_of_birth, gender, height_cm, weight_kg, blood_type,
           phone_number, emergency_contact, emergency_phone,
           address, city, state, zip_code,
           medical_conditions, allergies, medications,
           profile_completed, profile_completed_at, updated_at
    FROM profiles WHERE user_id = $1`, userID)

	var p Profile
	var dob, completedAt sql.NullTime
	var height, weight sql.NullFloat64
	var gender, blood, phone, ecName, ecPhone, addr, city, state, zip, cond, allergies, meds sql.NullString

	err := row.Scan(
		&p.UserID,
		&dob,
		&gender,
		&height,
		&weight,
		&blood,
		&phone,
		&ecName,
		&ecPhone,
		&addr,
		&city,
		&state,
		&zip,
		&cond,
		&allergies,
		&meds,
		&p.Completed,
		&completedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if dob.Valid {
		str := dob.Time.Format("2006-01-02")
		p.DateOfBirth = &str
	}
	if completedAt.Valid {
		t := completedAt.Time
		p.CompletedAt = &t
	}
	p.HeightCm = floatPtr(height)
	p.WeightKg = floatPtr(weight)
	p.Gender = strPtr(gender)
	p.BloodType = strPtr(blood)
	p.PhoneNumber = strPtr(phone)
	p.EmergencyContact = strPtr(ecName)
	p.EmergencyPhone = strPtr(ecPhone)
	p.Address = strPtr(addr)
	p.City = strPtr(city)
	p.State = strPtr(state)
	p.ZipCode = strPtr(zip)
	p.MedicalConditions = strPtr(cond)
	p.Allergies = strPtr(allergies)
	p.Medications = strPtr(meds)
	return &p, nil
}

// Upsert inserts the profile or replaces every field of the existing one.
func (r *ProfileRepo) Upsert(ctx context.Context, p *Profile) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO profiles (
			user_id, date_of_birth, gender, height_cm, weight_kg, blood_type,
			phone_number, emergency_contact, emergency_phone,
			address, city, state, zip_code,
			medical_conditions, allergies, medications,
			profile_completed, profile_completed_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		ON CONFLICT (user_id) DO UPDATE SET
			date_of_birth = EXCLUDED.date_of_birth,
			gender = EXCLUDED.gender,
			height_cm = EXCLUDED.height_cm,
			weight_kg = EXCLUDED.weight_kg,
			blood_type = EXCLUDED.blood_type,
			phone_number = EXCLUDED.phone_number,
			emergency_contact = EXCLUDED.emergency_contact,
			emergency_phone = EXCLUDED.emergency_phone,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			zip_code = EXCLUDED.zip_code,
			medical_conditions = EXCLUDED.medical_conditions,
			allergies = EXCLUDED.allergies,
			medications = EXCLUDED.medications,
			profile_completed = EXCLUDED.profile_completed,
			profile_completed_at = EXCLUDED.profile_completed_at,
			updated_at = now()`,
		p.UserID, p.DateOfBirth, p.Gender, p.HeightCm, p.WeightKg, p.BloodType,
		p.PhoneNumber, p.EmergencyContact, p.EmergencyPhone,
		p.Address, p.City, p.State, p.ZipCode,
		p.MedicalConditions, p.Allergies, p.Medications,
		p.Completed, p.CompletedAt,
	)
	return err
}

func strPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func floatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}
