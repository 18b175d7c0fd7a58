// internal/models/driver.go
package models

import (
	"fmt"
	"net/mail"
	"time"

	"gorm.io/gorm"
)

type Driver struct {
	gorm.Model
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email" gorm:"unique;not null"`
	Phone       string    `json:"phone"`
	DateOfBirth time.Time `json:"date_of_birth"`

	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
	SSN    string `json:"ssn,omitempty"`

	LicenseNumber     string     `json:"license_number"`
	LicenseState      string     `json:"license_state"`
	LicenseClass      string     `json:"license_class"`
	LicenseExpiry     time.Time  `json:"license_expiry"`
	MedicalCardExpiry time.Time  `json:"medical_card_expiry"`
	TwicExpiry        *time.Time `json:"twic_expiry,omitempty"`

	HireDate         time.Time         `json:"hire_date"`
	DriverType       DriverType        `json:"driver_type" gorm:"type:varchar(20)"`
	EmploymentStatus EmploymentStatus  `json:"employment_status" gorm:"type:varchar(20)"`
	Status           OperationalStatus `json:"status" gorm:"type:varchar(20)"`

	VehicleID     *uint   `json:"vehicle_id" gorm:"index"`
	CurrentLoadID *string `json:"current_load_id,omitempty"`
	Notes         string  `json:"notes"`
	AvatarURL     string  `json:"avatar_url"`

	EmergencyContacts []EmergencyContact `json:"emergency_contacts" gorm:"foreignKey:DriverID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Endorsements      []Endorsement      `json:"endorsements" gorm:"foreignKey:DriverID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Documents         []Document         `json:"documents" gorm:"foreignKey:DriverID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	HOS               *HOSCounter        `json:"hos,omitempty" gorm:"foreignKey:DriverID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// CreateDriverInput is the full field set accepted when registering a driver.
type CreateDriverInput struct {
	FirstName   string    `json:"first_name" binding:"required"`
	LastName    string    `json:"last_name" binding:"required"`
	Email       string    `json:"email" binding:"required"`
	Phone       string    `json:"phone" binding:"required"`
	DateOfBirth time.Time `json:"date_of_birth" binding:"required"`

	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
	SSN    string `json:"ssn"`

	LicenseNumber     string     `json:"license_number" binding:"required"`
	LicenseState      string     `json:"license_state" binding:"required"`
	LicenseClass      string     `json:"license_class" binding:"required"`
	LicenseExpiry     time.Time  `json:"license_expiry" binding:"required"`
	MedicalCardExpiry time.Time  `json:"medical_card_expiry" binding:"required"`
	TwicExpiry        *time.Time `json:"twic_expiry"`

	HireDate         time.Time         `json:"hire_date"`
	DriverType       DriverType        `json:"driver_type" binding:"required"`
	EmploymentStatus EmploymentStatus  `json:"employment_status"`
	Status           OperationalStatus `json:"status"`

	VehicleID *uint  `json:"vehicle_id"`
	Notes     string `json:"notes"`
	AvatarURL string `json:"avatar_url"`
}

// UpdateDriverInput carries a partial update; nil means "leave unchanged".
type UpdateDriverInput struct {
	FirstName   *string    `json:"first_name"`
	LastName    *string    `json:"last_name"`
	Email       *string    `json:"email"`
	Phone       *string    `json:"phone"`
	DateOfBirth *time.Time `json:"date_of_birth"`

	Street *string `json:"street"`
	City   *string `json:"city"`
	State  *string `json:"state"`
	Zip    *string `json:"zip"`
	SSN    *string `json:"ssn"`

	LicenseNumber     *string    `json:"license_number"`
	LicenseState      *string    `json:"license_state"`
	LicenseClass      *string    `json:"license_class"`
	LicenseExpiry     *time.Time `json:"license_expiry"`
	MedicalCardExpiry *time.Time `json:"medical_card_expiry"`
	TwicExpiry        *time.Time `json:"twic_expiry"`

	HireDate   *time.Time  `json:"hire_date"`
	DriverType *DriverType `json:"driver_type"`

	VehicleID *uint   `json:"vehicle_id"`
	Notes     *string `json:"notes"`
	AvatarURL *string `json:"avatar_url"`
}

// NewDriver validates the input and builds a driver record with a fresh
// hours-of-service counter. Status defaults to available and employment
// status to active when not supplied.
func NewDriver(in CreateDriverInput) (*Driver, error) {
	if in.Status == "" {
		in.Status = StatusAvailable
	}
	if in.EmploymentStatus == "" {
		in.EmploymentStatus = EmploymentActive
	}
	if in.HireDate.IsZero() {
		in.HireDate = time.Now()
	}

	d := &Driver{
		FirstName:         in.FirstName,
		LastName:          in.LastName,
		Email:             in.Email,
		Phone:             in.Phone,
		DateOfBirth:       in.DateOfBirth,
		Street:            in.Street,
		City:              in.City,
		State:             in.State,
		Zip:               in.Zip,
		SSN:               in.SSN,
		LicenseNumber:     in.LicenseNumber,
		LicenseState:      in.LicenseState,
		LicenseClass:      in.LicenseClass,
		LicenseExpiry:     in.LicenseExpiry,
		MedicalCardExpiry: in.MedicalCardExpiry,
		TwicExpiry:        in.TwicExpiry,
		HireDate:          in.HireDate,
		DriverType:        in.DriverType,
		EmploymentStatus:  in.EmploymentStatus,
		Status:            in.Status,
		VehicleID:         in.VehicleID,
		Notes:             in.Notes,
		AvatarURL:         in.AvatarURL,
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	d.HOS = NewHOSCounter()
	return d, nil
}

func (d *Driver) FullName() string {
	return d.FirstName + " " + d.LastName
}

// validate checks every record-level invariant. Called on the full candidate
// state, never on individual fields.
func (d *Driver) validate() error {
	switch {
	case d.FirstName == "":
		return &InvalidDataError{Reason: "first name is required"}
	case d.LastName == "":
		return &InvalidDataError{Reason: "last name is required"}
	case d.Email == "":
		return &InvalidDataError{Reason: "email is required"}
	case d.Phone == "":
		return &InvalidDataError{Reason: "phone is required"}
	case d.DateOfBirth.IsZero():
		return &InvalidDataError{Reason: "date of birth is required"}
	case d.LicenseNumber == "":
		return &InvalidDataError{Reason: "license number is required"}
	case d.LicenseState == "":
		return &InvalidDataError{Reason: "license state is required"}
	case d.LicenseClass == "":
		return &InvalidDataError{Reason: "license class is required"}
	case d.LicenseExpiry.IsZero():
		return &InvalidDataError{Reason: "license expiry is required"}
	case d.MedicalCardExpiry.IsZero():
		return &InvalidDataError{Reason: "medical card expiry is required"}
	}

	if _, err := mail.ParseAddress(d.Email); err != nil {
		return &InvalidDataError{Reason: "email format is invalid"}
	}
	if !d.DriverType.Valid() {
		return &InvalidDataError{Reason: fmt.Sprintf("unknown driver type %q", d.DriverType)}
	}
	if !d.EmploymentStatus.Valid() {
		return &InvalidDataError{Reason: fmt.Sprintf("unknown employment status %q", d.EmploymentStatus)}
	}
	if !d.Status.Valid() {
		return &InvalidDataError{Reason: fmt.Sprintf("unknown operational status %q", d.Status)}
	}

	now := time.Now()
	age := yearsBetween(d.DateOfBirth, now)
	if age < MinDriverAge || age > MaxDriverAge {
		return &InvalidDataError{Reason: fmt.Sprintf("driver age must be between %d and %d, got %d", MinDriverAge, MaxDriverAge, age)}
	}
	if d.LicenseExpiry.Before(now) {
		return &InvalidDataError{Reason: "license is already expired"}
	}
	if d.MedicalCardExpiry.Before(now) {
		return &InvalidDataError{Reason: "medical card is already expired"}
	}
	return nil
}

// ApplyUpdate merges a partial update onto a copy of the record, re-validates
// the merged result and only then replaces the stored state. A patch that
// would leave the record invalid is rejected wholesale.
func (d *Driver) ApplyUpdate(in UpdateDriverInput) error {
	candidate := *d

	if in.FirstName != nil {
		candidate.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		candidate.LastName = *in.LastName
	}
	if in.Email != nil {
		candidate.Email = *in.Email
	}
	if in.Phone != nil {
		candidate.Phone = *in.Phone
	}
	if in.DateOfBirth != nil {
		candidate.DateOfBirth = *in.DateOfBirth
	}
	if in.Street != nil {
		candidate.Street = *in.Street
	}
	if in.City != nil {
		candidate.City = *in.City
	}
	if in.State != nil {
		candidate.State = *in.State
	}
	if in.Zip != nil {
		candidate.Zip = *in.Zip
	}
	if in.SSN != nil {
		candidate.SSN = *in.SSN
	}
	if in.LicenseNumber != nil {
		candidate.LicenseNumber = *in.LicenseNumber
	}
	if in.LicenseState != nil {
		candidate.LicenseState = *in.LicenseState
	}
	if in.LicenseClass != nil {
		candidate.LicenseClass = *in.LicenseClass
	}
	if in.LicenseExpiry != nil {
		candidate.LicenseExpiry = *in.LicenseExpiry
	}
	if in.MedicalCardExpiry != nil {
		candidate.MedicalCardExpiry = *in.MedicalCardExpiry
	}
	if in.TwicExpiry != nil {
		candidate.TwicExpiry = in.TwicExpiry
	}
	if in.HireDate != nil {
		candidate.HireDate = *in.HireDate
	}
	if in.DriverType != nil {
		candidate.DriverType = *in.DriverType
	}
	if in.VehicleID != nil {
		candidate.VehicleID = in.VehicleID
	}
	if in.Notes != nil {
		candidate.Notes = *in.Notes
	}
	if in.AvatarURL != nil {
		candidate.AvatarURL = *in.AvatarURL
	}

	if err := candidate.validate(); err != nil {
		return err
	}
	*d = candidate
	d.UpdatedAt = time.Now()
	return nil
}

// SetStatus is the unchecked status escape hatch: any enumerated status can
// follow any other. The load/termination/leave operations below enforce
// their own stricter transitions.
func (d *Driver) SetStatus(s OperationalStatus) error {
	if !s.Valid() {
		return &InvalidDataError{Reason: fmt.Sprintf("unknown operational status %q", s)}
	}
	d.Status = s
	d.UpdatedAt = time.Now()
	return nil
}

func (d *Driver) AssignLoad(loadID string) error {
	if loadID == "" {
		return &InvalidDataError{Reason: "load id is required"}
	}
	if d.Status != StatusAvailable {
		return ErrDriverNotAvailable
	}
	d.CurrentLoadID = &loadID
	d.Status = StatusDriving
	d.UpdatedAt = time.Now()
	return nil
}

func (d *Driver) CompleteLoad() error {
	if d.CurrentLoadID == nil {
		return ErrNoActiveLoad
	}
	d.CurrentLoadID = nil
	d.Status = StatusAvailable
	d.UpdatedAt = time.Now()
	return nil
}

func (d *Driver) Terminate(notes string) {
	d.EmploymentStatus = EmploymentTerminated
	d.Status = StatusOffDuty
	if notes != "" {
		d.appendNote("Termination: " + notes)
	}
	d.UpdatedAt = time.Now()
}

func (d *Driver) PutOnLeave(notes string) {
	d.EmploymentStatus = EmploymentLeave
	d.Status = StatusAway
	if notes != "" {
		d.appendNote("Leave: " + notes)
	}
	d.UpdatedAt = time.Now()
}

func (d *Driver) ReturnFromLeave() error {
	if d.EmploymentStatus != EmploymentLeave {
		return ErrNotOnLeave
	}
	d.EmploymentStatus = EmploymentActive
	d.Status = StatusAvailable
	d.UpdatedAt = time.Now()
	return nil
}

// Notes accumulate newline-separated, earlier entries are never overwritten.
func (d *Driver) appendNote(note string) {
	if d.Notes == "" {
		d.Notes = note
		return
	}
	d.Notes += "\n" + note
}

type CredentialStatus struct {
	LicenseExpired          bool `json:"license_expired"`
	LicenseExpiringSoon     bool `json:"license_expiring_soon"`
	MedicalCardExpired      bool `json:"medical_card_expired"`
	MedicalCardExpiringSoon bool `json:"medical_card_expiring_soon"`
	TwicExpired             bool `json:"twic_expired"`
	TwicExpiringSoon        bool `json:"twic_expiring_soon"`
}

// CheckCredentials reports expired / expiring-soon flags for the license,
// medical card and TWIC. "Expiring soon" means now <= expiry <= now+threshold
// (inclusive both ends); "expired" means strictly past. TWIC flags stay false
// when no TWIC expiry is on file.
func (d *Driver) CheckCredentials(thresholdDays int) CredentialStatus {
	now := time.Now()
	cutoff := now.AddDate(0, 0, thresholdDays)

	var cs CredentialStatus
	cs.LicenseExpired, cs.LicenseExpiringSoon = expiryFlags(d.LicenseExpiry, now, cutoff)
	cs.MedicalCardExpired, cs.MedicalCardExpiringSoon = expiryFlags(d.MedicalCardExpiry, now, cutoff)
	if d.TwicExpiry != nil {
		cs.TwicExpired, cs.TwicExpiringSoon = expiryFlags(*d.TwicExpiry, now, cutoff)
	}
	return cs
}

func expiryFlags(expiry, now, cutoff time.Time) (expired, soon bool) {
	if now.After(expiry) {
		return true, false
	}
	return false, !expiry.After(cutoff)
}

func (d *Driver) AddEmergencyContact(c EmergencyContact) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.DriverID = d.ID
	d.EmergencyContacts = append(d.EmergencyContacts, c)
	d.UpdatedAt = time.Now()
	return nil
}

// RemoveEmergencyContact filters the contact out by id. The timestamp is
// bumped only when the collection actually shrank.
func (d *Driver) RemoveEmergencyContact(id uint) bool {
	kept := d.EmergencyContacts[:0]
	for _, c := range d.EmergencyContacts {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	removed := len(kept) != len(d.EmergencyContacts)
	d.EmergencyContacts = kept
	if removed {
		d.UpdatedAt = time.Now()
	}
	return removed
}

func (d *Driver) AddEndorsement(e Endorsement) error {
	if err := e.Normalize(); err != nil {
		return err
	}
	e.DriverID = d.ID
	d.Endorsements = append(d.Endorsements, e)
	d.UpdatedAt = time.Now()
	return nil
}

func (d *Driver) RemoveEndorsement(id uint) bool {
	kept := d.Endorsements[:0]
	for _, e := range d.Endorsements {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	removed := len(kept) != len(d.Endorsements)
	d.Endorsements = kept
	if removed {
		d.UpdatedAt = time.Now()
	}
	return removed
}

func (d *Driver) AddDocument(doc Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	doc.DriverID = d.ID
	d.Documents = append(d.Documents, doc)
	d.UpdatedAt = time.Now()
	return nil
}

func (d *Driver) RemoveDocument(id uint) bool {
	kept := d.Documents[:0]
	for _, doc := range d.Documents {
		if doc.ID != id {
			kept = append(kept, doc)
		}
	}
	removed := len(kept) != len(d.Documents)
	d.Documents = kept
	if removed {
		d.UpdatedAt = time.Now()
	}
	return removed
}

// yearsBetween returns full years elapsed from a birth date to now.
func yearsBetween(from, to time.Time) int {
	years := to.Year() - from.Year()
	anniversary := from.AddDate(years, 0, 0)
	if anniversary.After(to) {
		years--
	}
	return years
}
