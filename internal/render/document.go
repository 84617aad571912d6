package render

import (
	"fmt"
	"strings"

	"github.com/rp-magrathea/vogsphere/internal/model"
)

// Fragments holds one rendered block per claim type
type Fragments struct {
	Face       string `json:"face"`
	Occupation string `json:"occupation"`
	Lab        string `json:"lab,omitempty"` // Only built for a new lab
}

// Renderer assembles claim posts
type Renderer struct {
	postTag string
}

// NewRenderer creates a renderer that wraps posts in the given tag
func NewRenderer(postTag string) *Renderer {
	return &Renderer{postTag: postTag}
}

// Fragments renders the claim blocks for a submission
func (r *Renderer) Fragments(s model.Submission) Fragments {
	f := Fragments{
		Face:       FaceClaim(s),
		Occupation: OccupationClaim(s),
	}
	if s.IsNewLab {
		f.Lab = LabClaim(s, f.Occupation)
	}
	return f
}

// Document renders the complete claim post
func (r *Renderer) Document(s model.Submission) string {
	return r.Assemble(s, r.Fragments(s))
}

// Assemble builds the claim post from already rendered fragments
func (r *Renderer) Assemble(s model.Submission, f Fragments) string {
	lines := []string{
		OpenTag(r.postTag),
		"Face claim:",
		Wrap("code", f.Face),
		"",
		"Occupation claim:",
	}

	if s.IsScientist() {
		role := "Staff"
		if s.IsLabLead {
			role = "Lead"
		}
		lines = append(lines, fmt.Sprintf("Add to %s as %s", Escape(s.LabName), role))
	}

	if s.IsNewLab {
		lines = append(lines, Wrap("code", f.Lab))
	} else {
		lines = append(lines, Wrap("code", f.Occupation))
	}

	if s.IsRequested {
		lines = append(lines, "", Bold("REQUESTED CHARACTER"))
		if s.Requester != "" {
			lines = append(lines, "Requested by: "+Escape(s.Requester))
		}
		if s.RequestLocation != "" {
			lines = append(lines, "Request location: "+requestLocation(s.RequestLocation))
		}
	}

	lines = append(lines, CloseTag(r.postTag))
	return strings.Join(lines, "\n")
}

// requestLocation links the location when it looks like an address
func requestLocation(location string) string {
	if strings.HasPrefix(location, "http") {
		return URL(location)
	}
	return Escape(location)
}
