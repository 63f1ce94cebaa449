package snapshot

import (
	"sort"
	"strings"

	"github.com/groblegark/bdclient/internal/model"
	"github.com/groblegark/bdclient/internal/rpc"
	"github.com/groblegark/bdclient/internal/transport"
)

// index holds one fully-parsed snapshot: issues keyed by id plus the
// dependency graph in both directions. An index is immutable once built;
// reloads build a fresh one and swap the pointer.
type index struct {
	issues  map[string]*model.Issue
	order   []string // file order, duplicates collapsed onto first position
	forward map[string][]*model.Dependency
	reverse map[string][]*model.Dependency
}

func buildIndex(records []*record) *index {
	byID := make(map[string]*record, len(records))
	var order []string
	for _, rec := range records {
		if _, seen := byID[rec.ID]; !seen {
			order = append(order, rec.ID)
		}
		byID[rec.ID] = rec // last record with a given id wins
	}

	idx := &index{
		issues:  make(map[string]*model.Issue, len(order)),
		order:   order,
		forward: make(map[string][]*model.Dependency),
		reverse: make(map[string][]*model.Dependency),
	}
	for _, id := range order {
		idx.issues[id] = byID[id].issue()
	}
	for _, id := range order {
		for _, edge := range byID[id].Dependencies {
			if edge == nil || edge.DependsOnID == "" {
				continue
			}
			e := *edge
			if e.IssueID == "" {
				e.IssueID = id
			}
			idx.forward[e.IssueID] = append(idx.forward[e.IssueID], &e)
			idx.reverse[e.DependsOnID] = append(idx.reverse[e.DependsOnID], &e)
		}
	}
	return idx
}

// blockersOf returns the ids of unresolved blockers of an issue, in edge
// order. A blocker is unresolved while it exists in the snapshot and its
// status is not closed; dangling edges never block.
func (x *index) blockersOf(id string) []string {
	var out []string
	for _, edge := range x.forward[id] {
		if edge.Type != model.DepBlocks {
			continue
		}
		blocker, ok := x.issues[edge.DependsOnID]
		if !ok || blocker.Status.IsClosed() {
			continue
		}
		out = append(out, blocker.ID)
	}
	return out
}

// counts returns the number of dependency and dependent edges whose other
// endpoint exists in the snapshot.
func (x *index) counts(id string) (deps, dependents int) {
	for _, edge := range x.forward[id] {
		if _, ok := x.issues[edge.DependsOnID]; ok {
			deps++
		}
	}
	for _, edge := range x.reverse[id] {
		if _, ok := x.issues[edge.IssueID]; ok {
			dependents++
		}
	}
	return deps, dependents
}

func (x *index) list(args rpc.ListArgs) []*model.Issue {
	out := []*model.Issue{}
	for _, id := range x.order {
		iss := x.issues[id]
		if !matchesList(iss, args) {
			continue
		}
		c := *iss
		c.DependencyCount, c.DependentCount = x.counts(id)
		out = append(out, &c)
	}
	if args.Limit > 0 && len(out) > args.Limit {
		out = out[:args.Limit]
	}
	return out
}

func matchesList(iss *model.Issue, args rpc.ListArgs) bool {
	if args.Status != "" && iss.Status != model.Status(args.Status) {
		return false
	}
	if args.Priority != nil && iss.Priority != *args.Priority {
		return false
	}
	if args.IssueType != "" && iss.IssueType != model.IssueType(args.IssueType) {
		return false
	}
	if args.Assignee != "" && iss.Assignee != args.Assignee {
		return false
	}
	for _, label := range args.Labels {
		if !iss.HasLabel(label) {
			return false
		}
	}
	if len(args.LabelsAny) > 0 {
		any := false
		for _, label := range args.LabelsAny {
			if iss.HasLabel(label) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	if args.Query != "" && !strings.Contains(strings.ToLower(iss.Title), strings.ToLower(args.Query)) {
		return false
	}
	return true
}

func (x *index) show(id string) (*model.Issue, error) {
	iss, ok := x.issues[id]
	if !ok {
		return nil, &transport.NotFoundError{ID: id}
	}
	c := *iss
	for _, edge := range x.forward[id] {
		target, ok := x.issues[edge.DependsOnID]
		if !ok {
			continue
		}
		c.Dependencies = append(c.Dependencies, linked(target, edge.Type))
	}
	for _, edge := range x.reverse[id] {
		source, ok := x.issues[edge.IssueID]
		if !ok {
			continue
		}
		c.Dependents = append(c.Dependents, linked(source, edge.Type))
	}
	c.DependencyCount = len(c.Dependencies)
	c.DependentCount = len(c.Dependents)
	return &c, nil
}

func linked(iss *model.Issue, depType model.DependencyType) *model.LinkedIssue {
	return &model.LinkedIssue{
		ID:             iss.ID,
		Title:          iss.Title,
		Status:         iss.Status,
		Priority:       iss.Priority,
		IssueType:      iss.IssueType,
		DependencyType: depType,
	}
}

func (x *index) ready(args rpc.ReadyArgs) []*model.Issue {
	out := []*model.Issue{}
	for _, id := range x.order {
		iss := x.issues[id]
		if iss.Status != model.StatusOpen && iss.Status != model.StatusInProgress {
			continue
		}
		if args.Assignee != "" && iss.Assignee != args.Assignee {
			continue
		}
		if args.Unassigned && iss.Assignee != "" {
			continue
		}
		if args.Priority != nil && iss.Priority != *args.Priority {
			continue
		}
		if len(x.blockersOf(id)) > 0 {
			continue
		}
		c := *iss
		c.DependencyCount, c.DependentCount = x.counts(id)
		out = append(out, &c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if args.Limit > 0 && len(out) > args.Limit {
		out = out[:args.Limit]
	}
	return out
}

func (x *index) blocked() []*model.BlockedIssue {
	out := []*model.BlockedIssue{}
	for _, id := range x.order {
		iss := x.issues[id]
		blockers := x.blockersOf(id)
		explicit := iss.Status == model.StatusBlocked
		graphBlocked := (iss.Status == model.StatusOpen || iss.Status == model.StatusInProgress) && len(blockers) > 0
		if !explicit && !graphBlocked {
			continue
		}
		c := *iss
		c.DependencyCount, c.DependentCount = x.counts(id)
		out = append(out, &model.BlockedIssue{
			Issue:          c,
			BlockedBy:      blockers,
			BlockedByCount: len(blockers),
		})
	}
	return out
}

func (x *index) stats() *model.Stats {
	var s model.StatsSummary
	var leadHours float64
	var leadCount int
	for _, id := range x.order {
		iss := x.issues[id]
		s.Total++
		switch iss.Status {
		case model.StatusOpen:
			s.Open++
		case model.StatusInProgress:
			s.InProgress++
		case model.StatusClosed:
			s.Closed++
		case model.StatusDeferred:
			s.Deferred++
		}
		if iss.Status.IsClosed() && iss.ClosedAt != nil && !iss.CreatedAt.IsZero() {
			leadHours += iss.ClosedAt.Sub(iss.CreatedAt).Hours()
			leadCount++
		}
	}
	s.Ready = len(x.ready(rpc.ReadyArgs{}))
	s.Blocked = len(x.blocked())
	if leadCount > 0 {
		s.AverageLeadTimeHours = leadHours / float64(leadCount)
	}
	return &model.Stats{Summary: s}
}
