package moderation

import (
	"fmt"
	"strings"

	"github.com/ezeqja22/sciencepioneers-cli/internal/models"
)

// EmailTemplate builds the editable draft of the follow-up email sent
// to a reporter once their report is resolved. The moderator can change
// every line before sending; the server stores whatever was sent.
func EmailTemplate(r *models.Report, moderator string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hello %s,\n\n", r.Reporter.Username)
	fmt.Fprintf(&b, "Thank you for reporting the %s you flagged on Science Pioneers. ", r.ReportType)
	b.WriteString("We have finished reviewing your report.\n\n")

	if r.Resolution != "" {
		fmt.Fprintf(&b, "Resolution: %s\n\n", r.Resolution)
	}

	b.WriteString("Reports like yours help keep the community safe. ")
	b.WriteString("If you notice anything else, please do not hesitate to reach out.\n\n")
	fmt.Fprintf(&b, "Best regards,\n%s\nScience Pioneers Moderation Team\n", moderator)

	return b.String()
}
