package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateInput() CreateDriverInput {
	return CreateDriverInput{
		FirstName:         "Ray",
		LastName:          "Mercer",
		Email:             "ray.mercer@example.com",
		Phone:             "555-010-2233",
		DateOfBirth:       time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC),
		LicenseNumber:     "D1234567",
		LicenseState:      "TX",
		LicenseClass:      "A",
		LicenseExpiry:     time.Now().AddDate(2, 0, 0),
		MedicalCardExpiry: time.Now().AddDate(1, 0, 0),
		DriverType:        DriverTypeCompany,
	}
}

func TestNewDriverDefaults(t *testing.T) {
	d, err := NewDriver(validCreateInput())
	require.NoError(t, err)

	assert.Equal(t, "Ray Mercer", d.FullName())
	assert.Equal(t, StatusAvailable, d.Status)
	assert.Equal(t, EmploymentActive, d.EmploymentStatus)
	require.NotNil(t, d.HOS)
	assert.Equal(t, RequiredBreakHours, d.HOS.TimeUntilBreak)
	assert.False(t, d.HireDate.IsZero())
}

func TestNewDriverExplicitStatusKept(t *testing.T) {
	in := validCreateInput()
	in.Status = StatusOffDuty
	d, err := NewDriver(in)
	require.NoError(t, err)
	assert.Equal(t, StatusOffDuty, d.Status)
}

func TestNewDriverValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateDriverInput)
	}{
		{"missing first name", func(in *CreateDriverInput) { in.FirstName = "" }},
		{"missing license number", func(in *CreateDriverInput) { in.LicenseNumber = "" }},
		{"bad email", func(in *CreateDriverInput) { in.Email = "not-an-email" }},
		{"too young", func(in *CreateDriverInput) { in.DateOfBirth = time.Now().AddDate(-18, 0, 0) }},
		{"too old", func(in *CreateDriverInput) { in.DateOfBirth = time.Now().AddDate(-85, 0, 0) }},
		{"expired license", func(in *CreateDriverInput) { in.LicenseExpiry = time.Now().AddDate(0, 0, -1) }},
		{"expired medical card", func(in *CreateDriverInput) { in.MedicalCardExpiry = time.Now().AddDate(0, 0, -1) }},
		{"unknown driver type", func(in *CreateDriverInput) { in.DriverType = "gig" }},
		{"unknown status", func(in *CreateDriverInput) { in.Status = "sleeping" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCreateInput()
			tt.mutate(&in)
			_, err := NewDriver(in)
			var invalid *InvalidDataError
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestApplyUpdateRejectsWholesale(t *testing.T) {
	d, err := NewDriver(validCreateInput())
	require.NoError(t, err)

	newPhone := "555-999-0000"
	pastExpiry := time.Now().AddDate(0, 0, -10)
	err = d.ApplyUpdate(UpdateDriverInput{
		Phone:         &newPhone,
		LicenseExpiry: &pastExpiry,
	})

	var invalid *InvalidDataError
	require.ErrorAs(t, err, &invalid)
	// Nothing from the rejected patch may stick, not even the valid part.
	assert.Equal(t, "555-010-2233", d.Phone)
	assert.True(t, d.LicenseExpiry.After(time.Now()))
}

func TestApplyUpdateMerges(t *testing.T) {
	d, err := NewDriver(validCreateInput())
	require.NoError(t, err)

	city := "Amarillo"
	ownerOp := DriverTypeOwnerOperator
	require.NoError(t, d.ApplyUpdate(UpdateDriverInput{City: &city, DriverType: &ownerOp}))
	assert.Equal(t, "Amarillo", d.City)
	assert.Equal(t, DriverTypeOwnerOperator, d.DriverType)
	assert.Equal(t, "Ray Mercer", d.FullName())
}

func TestAssignAndCompleteLoad(t *testing.T) {
	d, err := NewDriver(validCreateInput())
	require.NoError(t, err)

	require.NoError(t, d.AssignLoad("LOAD-77"))
	assert.Equal(t, StatusDriving, d.Status)
	require.NotNil(t, d.CurrentLoadID)
	assert.Equal(t, "LOAD-77", *d.CurrentLoadID)

	require.NoError(t, d.CompleteLoad())
	assert.Equal(t, StatusAvailable, d.Status)
	assert.Nil(t, d.CurrentLoadID)
}

func TestAssignLoadWhenNotAvailable(t *testing.T) {
	d, err := NewDriver(validCreateInput())
	require.NoError(t, err)
	require.NoError(t, d.SetStatus(StatusMaintenance))

	err = d.AssignLoad("LOAD-78")
	assert.ErrorIs(t, err, ErrDriverNotAvailable)
	assert.Equal(t, StatusMaintenance, d.Status)
	assert.Nil(t, d.CurrentLoadID)
}

func TestCompleteLoadWithoutLoad(t *testing.T) {
	d, err := NewDriver(validCreateInput())
	require.NoError(t, err)
	assert.ErrorIs(t, d.CompleteLoad(), ErrNoActiveLoad)
}

func TestTerminate(t *testing.T) {
	d, err := NewDriver(validCreateInput())
	require.NoError(t, err)
	d.Notes = "hired via referral"

	d.Terminate("policy violation")
	assert.Equal(t, EmploymentTerminated, d.EmploymentStatus)
	assert.Equal(t, StatusOffDuty, d.Status)
	assert.Contains(t, d.Notes, "Termination: policy violation")
	// Existing notes are appended to, never overwritten.
	assert.True(t, strings.HasPrefix(d.Notes, "hired via referral\n"))
}

func TestLeaveAndReturn(t *testing.T) {
	d, err := NewDriver(validCreateInput())
	require.NoError(t, err)

	d.PutOnLeave("medical")
	assert.Equal(t, EmploymentLeave, d.EmploymentStatus)
	assert.Equal(t, StatusAway, d.Status)
	assert.Contains(t, d.Notes, "Leave: medical")

	require.NoError(t, d.ReturnFromLeave())
	assert.Equal(t, EmploymentActive, d.EmploymentStatus)
	assert.Equal(t, StatusAvailable, d.Status)
}

func TestReturnFromLeaveWhenActive(t *testing.T) {
	d, err := NewDriver(validCreateInput())
	require.NoError(t, err)
	assert.ErrorIs(t, d.ReturnFromLeave(), ErrNotOnLeave)
}

func TestSetStatusRejectsUnknown(t *testing.T) {
	d, err := NewDriver(validCreateInput())
	require.NoError(t, err)
	var invalid *InvalidDataError
	assert.ErrorAs(t, d.SetStatus("napping"), &invalid)
}

func TestCheckCredentials(t *testing.T) {
	in := validCreateInput()
	in.LicenseExpiry = time.Now().AddDate(0, 0, 10)
	d, err := NewDriver(in)
	require.NoError(t, err)

	cs := d.CheckCredentials(30)
	assert.False(t, cs.LicenseExpired)
	assert.True(t, cs.LicenseExpiringSoon)
	assert.False(t, cs.MedicalCardExpired)
	assert.False(t, cs.MedicalCardExpiringSoon)
	// No TWIC on file: both flags stay false.
	assert.False(t, cs.TwicExpired)
	assert.False(t, cs.TwicExpiringSoon)
}

func TestCheckCredentialsExpired(t *testing.T) {
	d, err := NewDriver(validCreateInput())
	require.NoError(t, err)
	// Validation forbids creating an expired license, so age the record
	// in place the way time passing would.
	d.LicenseExpiry = time.Now().AddDate(0, 0, -1)

	cs := d.CheckCredentials(30)
	assert.True(t, cs.LicenseExpired)
	assert.False(t, cs.LicenseExpiringSoon)
}

func TestCheckCredentialsTwic(t *testing.T) {
	in := validCreateInput()
	twic := time.Now().AddDate(0, 0, 5)
	in.TwicExpiry = &twic
	d, err := NewDriver(in)
	require.NoError(t, err)

	cs := d.CheckCredentials(30)
	assert.False(t, cs.TwicExpired)
	assert.True(t, cs.TwicExpiringSoon)
}

func TestEmergencyContactMutators(t *testing.T) {
	d, err := NewDriver(validCreateInput())
	require.NoError(t, err)

	err = d.AddEmergencyContact(EmergencyContact{Name: "Dana", Relationship: "spouse", Phone: "555"})
	var invalid *InvalidDataError
	require.ErrorAs(t, err, &invalid)
	assert.Empty(t, d.EmergencyContacts)

	require.NoError(t, d.AddEmergencyContact(EmergencyContact{Name: "Dana", Relationship: "spouse", Phone: "(555) 010-9988"}))
	require.Len(t, d.EmergencyContacts, 1)

	before := d.UpdatedAt
	assert.False(t, d.RemoveEmergencyContact(999))
	assert.Equal(t, before, d.UpdatedAt)

	d.EmergencyContacts[0].ID = 4
	assert.True(t, d.RemoveEmergencyContact(4))
	assert.Empty(t, d.EmergencyContacts)
}

func TestEndorsementMutators(t *testing.T) {
	d, err := NewDriver(validCreateInput())
	require.NoError(t, err)

	require.NoError(t, d.AddEndorsement(Endorsement{Code: "h"}))
	require.Len(t, d.Endorsements, 1)
	assert.Equal(t, "H", d.Endorsements[0].Code)

	err = d.AddEndorsement(Endorsement{Code: "Z"})
	var badCode *InvalidEndorsementTypeError
	require.ErrorAs(t, err, &badCode)
	assert.Len(t, d.Endorsements, 1)
}

func TestDocumentMutators(t *testing.T) {
	d, err := NewDriver(validCreateInput())
	require.NoError(t, err)

	err = d.AddDocument(Document{FileName: "scan.pdf", FilePath: "/tmp/scan.pdf", FileType: "selfie"})
	var badType *InvalidDocumentTypeError
	require.ErrorAs(t, err, &badType)

	require.NoError(t, d.AddDocument(Document{FileName: "scan.pdf", FilePath: "/tmp/scan.pdf", FileType: DocumentLicense}))
	require.Len(t, d.Documents, 1)

	d.Documents[0].ID = 9
	assert.True(t, d.RemoveDocument(9))
	assert.False(t, d.RemoveDocument(9))
}
