package models

// Shared domain constants. Validation everywhere checks against these,
// nothing else defines its own copies.

type DriverType string

const (
	DriverTypeCompany       DriverType = "company"
	DriverTypeOwnerOperator DriverType = "owner_operator"
	DriverTypeLeasePurchase DriverType = "lease_purchase"
)

func (t DriverType) Valid() bool {
	switch t {
	case DriverTypeCompany, DriverTypeOwnerOperator, DriverTypeLeasePurchase:
		return true
	}
	return false
}

type EmploymentStatus string

const (
	EmploymentActive     EmploymentStatus = "active"
	EmploymentLeave      EmploymentStatus = "leave"
	EmploymentTerminated EmploymentStatus = "terminated"
)

func (s EmploymentStatus) Valid() bool {
	switch s {
	case EmploymentActive, EmploymentLeave, EmploymentTerminated:
		return true
	}
	return false
}

// OperationalStatus is what the driver is doing right now.
// Only StatusAvailable permits a new load assignment.
type OperationalStatus string

const (
	StatusAvailable   OperationalStatus = "available"
	StatusDriving     OperationalStatus = "driving"
	StatusOnBreak     OperationalStatus = "on_break"
	StatusLoading     OperationalStatus = "loading"
	StatusUnloading   OperationalStatus = "unloading"
	StatusMaintenance OperationalStatus = "maintenance"
	StatusAway        OperationalStatus = "away"
	StatusOffDuty     OperationalStatus = "off_duty"
)

func (s OperationalStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusDriving, StatusOnBreak, StatusLoading,
		StatusUnloading, StatusMaintenance, StatusAway, StatusOffDuty:
		return true
	}
	return false
}

type DocumentType string

const (
	DocumentLicense                DocumentType = "license"
	DocumentMedicalCertificate     DocumentType = "medical_certificate"
	DocumentTwicCard               DocumentType = "twic_card"
	DocumentTrainingCertificate    DocumentType = "training_certificate"
	DocumentEmploymentVerification DocumentType = "employment_verification"
	DocumentBackgroundCheck        DocumentType = "background_check"
	DocumentDrugTest               DocumentType = "drug_test"
	DocumentOther                  DocumentType = "other"
)

func (t DocumentType) Valid() bool {
	switch t {
	case DocumentLicense, DocumentMedicalCertificate, DocumentTwicCard,
		DocumentTrainingCertificate, DocumentEmploymentVerification,
		DocumentBackgroundCheck, DocumentDrugTest, DocumentOther:
		return true
	}
	return false
}

// CDL endorsement codes (H hazmat, N tanker, P passenger, S school bus,
// T doubles/triples, X tanker+hazmat).
var endorsementCodes = map[string]bool{
	"H": true, "N": true, "P": true, "S": true, "T": true, "X": true,
}

// FMCSA daily hours-of-service limits.
const (
	MaxDrivingHoursPerDay = 11.0
	MaxOnDutyHoursPerDay  = 14.0
	RequiredBreakHours    = 0.5
)

// Hiring age window, checked at validation time.
const (
	MinDriverAge = 21
	MaxDriverAge = 80
)
