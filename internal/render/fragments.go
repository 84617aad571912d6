package render

import (
	"fmt"
	"strings"

	"github.com/rp-magrathea/vogsphere/internal/model"
)

// FaceClaim renders the face claim list entry
func FaceClaim(s model.Submission) string {
	return fmt.Sprintf(`<div class="claim-row">
    <span class="detail-alitus"><b>%s</b></span> as
    <span class="detail-alitus no-bg text-color-%s">
        <a href="%s" title="played by %s">%s</a>
    </span>
</div>`,
		Escape(s.FaceClaim),
		Escape(s.MemberGroup),
		Escape(s.ProfileURL),
		Escape(s.WriterAlias),
		Escape(s.CharacterName),
	)
}

// OccupationClaim renders the occupation list entry.
// The aside span is left out entirely when no occupation was given.
func OccupationClaim(s model.Submission) string {
	var b strings.Builder

	b.WriteString(`<div class="list-item level-3">` + "\n")
	fmt.Fprintf(&b, `    <span class="list-taken-by text-color-%s">`+"\n", Escape(s.MemberGroup))
	fmt.Fprintf(&b, `        <a href="%s">%s</a>`+"\n", Escape(s.ProfileURL), Escape(s.CharacterName))
	b.WriteString("    </span>\n")
	if s.Occupation != "" {
		fmt.Fprintf(&b, `    <span class="list-aside">(%s)</span>`+"\n", Escape(s.Occupation))
	}
	b.WriteString("</div>")

	return b.String()
}

// LabClaim renders a new lab entry for the occupation list.
// The occupation claim goes under Lead or under Staff, never both.
func LabClaim(s model.Submission, occupationClaim string) string {
	blocks := []string{
		fmt.Sprintf(`<div class="list-item level-1">
    <span class="heading-dinorwic">%s</span>
</div>`, Escape(s.LabName)),

		fmt.Sprintf(`<div class="textblock-aniak left list-item level-2">
    %s
</div>`, Escape(s.LabDescription)),

		`<div class="list-item level-2">
    <span class="heading-dollfus">Lead</span>
    <span class="pill-gusev">Limit 1</span>
</div>`,
	}

	if s.IsLabLead {
		blocks = append(blocks, occupationClaim)
	}

	blocks = append(blocks, `<div class="list-item level-2">
    <span class="heading-dollfus">Staff</span>
</div>`)

	if !s.IsLabLead {
		blocks = append(blocks, occupationClaim)
	}

	return strings.Join(blocks, "\n\n")
}
