package assemble

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzhao/legal-drafter/internal/session"
	"github.com/mzhao/legal-drafter/internal/types"
)

var fixedNow = time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

func complaintTemplate() *types.DocumentTemplate {
	return &types.DocumentTemplate{
		ID:       "civil-complaint",
		Title:    "Civil Complaint",
		Category: "litigation",
		Fields: []types.FormField{
			{ID: "plaintiff", Label: "Plaintiff", Kind: types.KindShortText, Required: true},
			{ID: "claims", Label: "Claims", Kind: types.KindRepeatable, Required: true},
			{ID: "facts", Label: "Facts and Reasons", Kind: types.KindLongText, Required: true},
		},
	}
}

func TestAssemble_EndToEnd(t *testing.T) {
	tmpl := complaintTemplate()

	sess := session.New()
	sess.SelectTemplate(tmpl)
	require.NoError(t, sess.SetFieldValue("plaintiff", "Zhang San"))
	require.NoError(t, sess.AddRepeatableItem("claims"))
	require.NoError(t, sess.UpdateRepeatableItem("claims", 0, "return deposit"))
	require.NoError(t, sess.AddRepeatableItem("claims"))
	require.NoError(t, sess.UpdateRepeatableItem("claims", 1, "pay interest"))
	require.NoError(t, sess.SetFieldValue("facts", "The lease ended in June."))
	require.True(t, sess.IsComplete())

	doc := Assemble(tmpl, sess.Snapshot(), fixedNow)

	assert.True(t, strings.HasPrefix(doc, "Civil Complaint\n"))
	assert.Contains(t, doc, "1. return deposit")
	assert.Contains(t, doc, "2. pay interest")
	assert.Contains(t, doc, "Date: 2026-08-31")

	// Claims come under their heading, in insertion order.
	claimsIdx := strings.Index(doc, "Claims:")
	firstIdx := strings.Index(doc, "1. return deposit")
	secondIdx := strings.Index(doc, "2. pay interest")
	assert.Greater(t, firstIdx, claimsIdx)
	assert.Greater(t, secondIdx, firstIdx)
}

func TestAssemble_EveryLabelExactlyOnce(t *testing.T) {
	tmpl := complaintTemplate()

	sess := session.New()
	sess.SelectTemplate(tmpl)
	doc := Assemble(tmpl, sess.Snapshot(), fixedNow)

	for _, field := range tmpl.Fields {
		assert.Equal(t, 1, strings.Count(doc, field.Label+":"), "label %q", field.Label)
	}
}

func TestAssemble_FieldOrderFollowsDeclaration(t *testing.T) {
	tmpl := complaintTemplate()

	sess := session.New()
	sess.SelectTemplate(tmpl)
	doc := Assemble(tmpl, sess.Snapshot(), fixedNow)

	last := -1
	for _, field := range tmpl.Fields {
		idx := strings.Index(doc, field.Label+":")
		assert.Greater(t, idx, last, "field %q out of order", field.ID)
		last = idx
	}
}

func TestAssemble_BlankItemsAreNotSuppressed(t *testing.T) {
	tmpl := complaintTemplate()

	sess := session.New()
	sess.SelectTemplate(tmpl)
	require.NoError(t, sess.AddRepeatableItem("claims"))
	require.NoError(t, sess.UpdateRepeatableItem("claims", 0, "return deposit"))
	require.NoError(t, sess.AddRepeatableItem("claims")) // left blank
	require.NoError(t, sess.AddRepeatableItem("claims"))
	require.NoError(t, sess.UpdateRepeatableItem("claims", 2, "pay interest"))

	doc := Assemble(tmpl, sess.Snapshot(), fixedNow)

	// The blank item keeps its number so the user sees what they entered.
	assert.Contains(t, doc, "1. return deposit")
	assert.Contains(t, doc, "2. \n")
	assert.Contains(t, doc, "3. pay interest")
}

func TestAssemble_EmptyScalarEmitsEmptyLine(t *testing.T) {
	tmpl := complaintTemplate()

	sess := session.New()
	sess.SelectTemplate(tmpl)
	doc := Assemble(tmpl, sess.Snapshot(), fixedNow)

	assert.Contains(t, doc, "Plaintiff:\n\n")
}
