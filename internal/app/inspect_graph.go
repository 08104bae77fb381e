package app

import (
	"context"
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"avular-packages/internal/types"
)

// GraphEdgeReport is one rendered Graph edge: the state transition plus
// a one-line summary of each Change it applied.
type GraphEdgeReport struct {
	From    int
	To      int
	Changes []string
	Notes   []string
}

// GraphReport is a flattened, display-ready view of a solve's decision
// Graph (spec.md §5 "resumable iterator" / post-mortem inspection).
type GraphReport struct {
	StateCount int
	Edges      []GraphEdgeReport
}

// InspectGraph resolves req and renders the decision Graph produced
// along the way. The error, if any, is still returned so the caller
// can tell a failed solve from a healthy one, but the report reflects
// whatever Graph Resolve managed to build — including a solver
// failure's backtracking trail, not just a successful solve's.
func (s *Service) InspectGraph(ctx context.Context, req ResolveRequest) (GraphReport, error) {
	result, err := s.Resolve(ctx, req)
	if result.Graph == nil {
		return GraphReport{}, err
	}
	return BuildGraphReport(result.Graph), err
}

// BuildGraphReport flattens a Graph into a GraphReport.
func BuildGraphReport(graph *types.Graph) GraphReport {
	report := GraphReport{StateCount: graph.Len()}
	for _, edge := range graph.Edges {
		er := GraphEdgeReport{From: int(edge.From), To: int(edge.To)}
		for _, ch := range edge.Decision.Changes {
			er.Changes = append(er.Changes, summarizeChange(ch))
		}
		for _, n := range edge.Decision.Notes {
			er.Notes = append(er.Notes, string(n.Category)+": "+n.Message)
		}
		report.Edges = append(report.Edges, er)
	}
	return report
}

// DiffGraphReports renders the structural difference between two
// GraphReports (e.g. a saved report from a previous `spk inspect-graph`
// run versus the current one), for `spk inspect-graph --diff` to
// surface how a repository or request change shifted the decision
// graph. An empty string means the two reports are identical; a nil
// slice and an empty one count as equal, since a report reloaded from
// YAML may hold either.
func DiffGraphReports(previous, current GraphReport) string {
	return cmp.Diff(previous, current, cmpopts.EquateEmpty())
}

func summarizeChange(ch types.Change) string {
	switch ch.Kind {
	case types.ChangeRequestPackage:
		if ch.PkgRequest != nil {
			return "RequestPackage(" + ch.PkgRequest.Name + ")"
		}
	case types.ChangeRequestVar:
		if ch.VarRequest != nil {
			return "RequestVar(" + ch.VarRequest.Name + ")"
		}
	case types.ChangeSetOptions:
		return "SetOptions"
	case types.ChangeResolvePackage:
		if ch.Spec != nil {
			return "ResolvePackage(" + ch.Spec.Pkg.Name + ")"
		}
	case types.ChangeStepBack:
		return fmt.Sprintf("StepBack(%s)", ch.Reason)
	}
	return string(ch.Kind)
}
