package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shulgaalexey/robo-peoples-person/pkg/analysis"
	"github.com/shulgaalexey/robo-peoples-person/pkg/graph"
	"github.com/shulgaalexey/robo-peoples-person/pkg/insight"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).MarginTop(1)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	scoreStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func renderReport(r *insight.Report) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Network Report"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("scope: %s  generated: %s",
		r.Scope, r.GeneratedAt.Format("2006-01-02 15:04:05 MST"))))
	b.WriteString("\n")
	if r.Empty {
		b.WriteString(warnStyle.Render("no people matched this scope"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(sectionStyle.Render("Overview"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  people: %d  edges: %d  density: %.3f  health: %.3f\n",
		r.People, r.Edges, r.Density, r.Health)

	if len(r.Influential) > 0 {
		b.WriteString(sectionStyle.Render("Most Influential"))
		b.WriteString("\n")
		for i, rp := range r.Influential {
			fmt.Fprintf(&b, "  %2d. %s  %s\n", i+1, rp.PersonID,
				scoreStyle.Render(fmt.Sprintf("%.4f", rp.Score)))
		}
	}

	if len(r.Communities) > 0 {
		b.WriteString(sectionStyle.Render(fmt.Sprintf("Communities (modularity %.3f)", r.Modularity)))
		b.WriteString("\n")
		for _, c := range r.Communities {
			fmt.Fprintf(&b, "  #%d (%d): %s\n", c.ID, len(c.Members), strings.Join(c.Members, ", "))
		}
	}

	if len(r.Silos) > 0 {
		b.WriteString(sectionStyle.Render("Silos"))
		b.WriteString("\n")
		for _, s := range r.Silos {
			fmt.Fprintf(&b, "  %s: %d members, %.1f%% external; bridge via %s\n",
				s.Department, len(s.Members), s.ExternalRatio*100,
				strings.Join(s.BridgeCandidates, ", "))
		}
	}

	if len(r.Connectors) > 0 {
		b.WriteString(sectionStyle.Render("Connectors"))
		b.WriteString("\n")
		for _, c := range r.Connectors {
			marker := ""
			if c.ArticulationPoint {
				marker = warnStyle.Render(" [cut point]")
			}
			fmt.Fprintf(&b, "  %s  betweenness %.4f%s\n", c.PersonID, c.Betweenness, marker)
		}
	}

	if len(r.Clusters) > 0 {
		b.WriteString(sectionStyle.Render("Expertise Clusters"))
		b.WriteString("\n")
		for _, cl := range r.Clusters {
			fmt.Fprintf(&b, "  %s (%d): %s\n", cl.Area, len(cl.Members), strings.Join(cl.Members, ", "))
		}
	}

	if r.Interaction != nil && r.Interaction.Total > 0 {
		b.WriteString(sectionStyle.Render(fmt.Sprintf("Interactions (last %d days)", r.Interaction.WindowDays)))
		b.WriteString("\n")
		fmt.Fprintf(&b, "  total: %d\n", r.Interaction.Total)
		for _, p := range r.Interaction.ByDeptPair {
			fmt.Fprintf(&b, "  %s <-> %s: %d\n", p.DeptA, p.DeptB, p.Count)
		}
		for _, a := range r.Interaction.MostActive {
			fmt.Fprintf(&b, "  active: %s (%d)\n", a.PersonID, a.Count)
		}
	}

	for _, w := range r.Warnings {
		b.WriteString(warnStyle.Render("warning: " + string(w)))
		b.WriteString("\n")
	}
	return b.String()
}

func renderRecommendations(g *graph.Graph, personID string, recs []analysis.Recommendation) string {
	var b strings.Builder
	subject := g.Person(personID)
	b.WriteString(titleStyle.Render(fmt.Sprintf("Connection Recommendations for %s", subject.Name)))
	b.WriteString("\n")
	if len(recs) == 0 {
		b.WriteString(dimStyle.Render("no candidates within two hops"))
		b.WriteString("\n")
		return b.String()
	}
	for i, rec := range recs {
		candidate := g.Person(rec.PersonID)
		fmt.Fprintf(&b, "  %d. %s (%s)  %s\n", i+1, candidate.Name, candidate.Department,
			scoreStyle.Render(fmt.Sprintf("%.3f", rec.Score)))
		for _, reason := range rec.Reasons {
			b.WriteString(dimStyle.Render("     - " + reason))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderExperts(area string, experts []analysis.Expert) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Experts in %q", area)))
	b.WriteString("\n")
	if len(experts) == 0 {
		b.WriteString(dimStyle.Render("nobody matched"))
		b.WriteString("\n")
		return b.String()
	}
	for i, e := range experts {
		fmt.Fprintf(&b, "  %d. %s (%s)  degree %.3f\n", i+1, e.Name, e.Department, e.Degree)
	}
	return b.String()
}

func renderPaths(g *graph.Graph, res *analysis.PathResult) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Collaboration Paths"))
	b.WriteString("\n")
	if len(res.Paths) == 0 {
		b.WriteString(dimStyle.Render("no path connects these people"))
		b.WriteString("\n")
		return b.String()
	}
	for _, path := range res.Paths {
		names := make([]string, len(path))
		for i, id := range path {
			names[i] = g.Person(id).Name
		}
		fmt.Fprintf(&b, "  %s  %s\n", strings.Join(names, " -> "),
			dimStyle.Render(fmt.Sprintf("(%d hops)", len(path)-1)))
	}
	return b.String()
}
