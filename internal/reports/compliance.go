package reports

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"truckops/internal/models"
)

// WriteCompliance renders a one-page compliance summary for a driver:
// identity, licensing, credential alerts, endorsements and today's
// hours-of-service totals.
func WriteCompliance(d *models.Driver, now time.Time, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Driver Compliance Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Driver: %s (#%d)", d.FullName(), d.ID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", d.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Type: %s   Employment: %s   Status: %s", d.DriverType, d.EmploymentStatus, d.Status))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", now.Format("2006-01-02 15:04")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Licensing")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("CDL %s (%s, class %s), expires %s",
		d.LicenseNumber, d.LicenseState, d.LicenseClass, d.LicenseExpiry.Format("2006-01-02")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Medical card expires %s", d.MedicalCardExpiry.Format("2006-01-02")))
	pdf.Ln(7)
	if d.TwicExpiry != nil {
		pdf.Cell(0, 8, fmt.Sprintf("TWIC expires %s", d.TwicExpiry.Format("2006-01-02")))
		pdf.Ln(7)
	}
	pdf.Ln(3)

	cs := d.CheckCredentials(30)
	alerts := credentialAlerts(cs)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Credential alerts (30 days)")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	if len(alerts) == 0 {
		pdf.Cell(0, 8, "None")
		pdf.Ln(7)
	}
	for _, a := range alerts {
		pdf.Cell(0, 8, "- "+a)
		pdf.Ln(7)
	}
	pdf.Ln(3)

	if len(d.Endorsements) > 0 {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, "Endorsements")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 12)
		for _, e := range d.Endorsements {
			line := e.Code
			if e.Expiry != nil {
				line += ", expires " + e.Expiry.Format("2006-01-02")
			}
			pdf.Cell(0, 8, "- "+line)
			pdf.Ln(7)
		}
		pdf.Ln(3)
	}

	if d.HOS != nil {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, "Hours of service (today)")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 12)
		pdf.Cell(0, 8, fmt.Sprintf("Driving: %.1f / %.0f h   On duty: %.1f / %.0f h",
			d.HOS.DrivingHoursToday, models.MaxDrivingHoursPerDay,
			d.HOS.OnDutyHoursToday, models.MaxOnDutyHoursPerDay))
		pdf.Ln(7)
		if d.HOS.NeedsBreak() {
			pdf.Cell(0, 8, "Break required now")
			pdf.Ln(7)
		}
	}

	return pdf.Output(w)
}

func credentialAlerts(cs models.CredentialStatus) []string {
	var alerts []string
	if cs.LicenseExpired {
		alerts = append(alerts, "CDL expired")
	} else if cs.LicenseExpiringSoon {
		alerts = append(alerts, "CDL expiring soon")
	}
	if cs.MedicalCardExpired {
		alerts = append(alerts, "Medical card expired")
	} else if cs.MedicalCardExpiringSoon {
		alerts = append(alerts, "Medical card expiring soon")
	}
	if cs.TwicExpired {
		alerts = append(alerts, "TWIC expired")
	} else if cs.TwicExpiringSoon {
		alerts = append(alerts, "TWIC expiring soon")
	}
	return alerts
}
