package moderation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezeqja22/sciencepioneers-cli/internal/models"
)

func TestEmailTemplateAddressesReporter(t *testing.T) {
	r := testReport(models.StatusResolved, "mod")
	r.Resolution = "The account was banned for 7 days."

	draft := EmailTemplate(r, "mod")

	assert.True(t, strings.HasPrefix(draft, "Hello reporter,"), "draft: %q", draft)
	assert.Contains(t, draft, "Resolution: The account was banned for 7 days.")
	assert.Contains(t, draft, "Best regards,\nmod\n")
}

func TestEmailTemplateWithoutResolution(t *testing.T) {
	draft := EmailTemplate(testReport(models.StatusResolved, "mod"), "mod")
	assert.NotContains(t, draft, "Resolution:")
}
